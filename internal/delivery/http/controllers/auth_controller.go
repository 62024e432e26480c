package controllers

import (
	"log/slog"
	"net/http"

	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/domain"
)

// AuthURLResponse is the data payload for GET /api/auth/url.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// AuthCallbackRequest is the request body for POST /api/auth/callback.
type AuthCallbackRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (r AuthCallbackRequest) Validate() []string {
	if r.Code == "" {
		return []string{"code is required"}
	}
	return nil
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// AuthURL godoc
// @Summary Get the Google OAuth consent URL
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains auth_url"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/url [get]
func (c *AuthController) AuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := c.Service.AuthURL(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to generate auth URL")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AuthURLResponse{AuthURL: url})
}

// AuthCallback godoc
// @Summary Complete the OAuth flow
// @Description Exchanges the authorization code, connects the YouTube channel, and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthCallbackRequest true "Authorization code"
// @Success 200 {object} helpers.APIResponse "data contains access_token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/callback [post]
func (c *AuthController) AuthCallback(w http.ResponseWriter, r *http.Request) {
	var req AuthCallbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.HandleCallback(r.Context(), req.Code)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "authentication failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}
