package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ytlivescheduler/internal/delivery/http/controllers"
	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/delivery/http/middleware"
	"ytlivescheduler/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	videoController *controllers.VideoController,
	scheduleController *controllers.ScheduleController,
	broadcastController *controllers.BroadcastController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("GET /api/auth/url", authController.AuthURL)
	mux.HandleFunc("POST /api/auth/callback", authController.AuthCallback)

	// Videos
	mux.HandleFunc("GET /api/youtube/videos", auth(videoController.ListVideos))

	// Scheduling
	mux.HandleFunc("POST /api/schedule/broadcast", auth(scheduleController.ScheduleBroadcast))
	mux.HandleFunc("GET /api/validate-schedule", scheduleController.ValidateSchedule)

	// Broadcasts
	mux.HandleFunc("GET /api/broadcasts", auth(broadcastController.ListBroadcasts))
	mux.HandleFunc("DELETE /api/broadcasts/{broadcastID}", auth(broadcastController.DeleteBroadcast))
	mux.HandleFunc("POST /api/broadcasts/{broadcastID}/status", auth(broadcastController.TransitionStatus))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
