package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/delivery/http/middleware"
	"ytlivescheduler/internal/domain"
)

// BroadcastItem is one broadcast in a list response. Upcoming is derived from
// the request time, never read from storage.
type BroadcastItem struct {
	*domain.BroadcastRecord
	Upcoming bool `json:"upcoming"`
}

// ListBroadcastsResponse is the data payload for GET /api/broadcasts.
type ListBroadcastsResponse struct {
	Broadcasts []BroadcastItem        `json:"broadcasts"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListBroadcastsSuccessResponse is the success envelope for GET /api/broadcasts (200).
type ListBroadcastsSuccessResponse struct {
	Data  ListBroadcastsResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type BroadcastController struct {
	Logger  *slog.Logger
	Service domain.BroadcastService
}

func NewBroadcastController(logger *slog.Logger, svc domain.BroadcastService) *BroadcastController {
	return &BroadcastController{
		Logger:  logger,
		Service: svc,
	}
}

// ListBroadcasts godoc
// @Summary List scheduled broadcasts
// @Description Returns the user's broadcasts with upcoming ones first, each partition ascending by scheduled time. The upcoming flag is recomputed on every call.
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 100)"
// @Success 200 {object} controllers.ListBroadcastsSuccessResponse "data contains broadcasts and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /broadcasts [get]
func (c *BroadcastController) ListBroadcasts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p := helpers.ParsePagination(r)
	now := time.Now()

	records, total, err := c.Service.List(r.Context(), userID, now, p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to fetch broadcasts")
		return
	}

	items := make([]BroadcastItem, 0, len(records))
	for _, rec := range records {
		items = append(items, BroadcastItem{BroadcastRecord: rec, Upcoming: rec.UpcomingAt(now)})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListBroadcastsResponse{
		Broadcasts: items,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// DeleteBroadcastResponse is the data payload for DELETE /api/broadcasts/{broadcastID}.
type DeleteBroadcastResponse struct {
	Message string `json:"message"`
}

// DeleteBroadcast godoc
// @Summary Delete a scheduled broadcast
// @Description Deletes the broadcast on YouTube (best effort) and removes the record. A missing id returns 404 and leaves the collection untouched.
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param broadcastID path string true "Broadcast record ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /broadcasts/{broadcastID} [delete]
func (c *BroadcastController) DeleteBroadcast(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("broadcastID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing broadcastID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "broadcast not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to delete broadcast")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteBroadcastResponse{Message: "Broadcast deleted successfully"})
}

// TransitionStatusRequest is the request body for POST /api/broadcasts/{broadcastID}/status.
// This is the hook the stream runner uses to report lifecycle progress.
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (r TransitionStatusRequest) Validate() []string {
	if r.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

// TransitionStatus godoc
// @Summary Advance a broadcast's lifecycle status
// @Description Moves the broadcast to the given status if the transition is legal (created -> scheduled -> streaming -> completed; failed from created or streaming).
// @Tags broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param broadcastID path string true "Broadcast record ID"
// @Param request body TransitionStatusRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown status or illegal transition)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /broadcasts/{broadcastID}/status [post]
func (c *BroadcastController) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("broadcastID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing broadcastID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req TransitionStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	rec, err := c.Service.TransitionStatus(r.Context(), userID, id, domain.BroadcastStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "broadcast not found")
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to update status")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}
