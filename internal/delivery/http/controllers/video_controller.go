package controllers

import (
	"log/slog"
	"net/http"

	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/delivery/http/middleware"
	"ytlivescheduler/internal/domain"
)

// ListVideosResponse is the data payload for GET /api/youtube/videos.
type ListVideosResponse struct {
	Videos []*domain.Video `json:"videos"`
}

type VideoController struct {
	Logger  *slog.Logger
	Service domain.VideoService
}

func NewVideoController(logger *slog.Logger, svc domain.VideoService) *VideoController {
	return &VideoController{
		Logger:  logger,
		Service: svc,
	}
}

// ListVideos godoc
// @Summary List the channel's uploaded videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains videos"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /youtube/videos [get]
func (c *VideoController) ListVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	videos, err := c.Service.ListVideos(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to fetch videos")
		return
	}
	if videos == nil {
		videos = []*domain.Video{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListVideosResponse{Videos: videos})
}
