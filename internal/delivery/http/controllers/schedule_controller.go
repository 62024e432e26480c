package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/delivery/http/middleware"
	"ytlivescheduler/internal/domain"
)

// ScheduleBroadcastRequest is the request body for POST /api/schedule/broadcast.
// custom_times absent means the configured default slot set; an explicitly empty
// array means "schedule nothing" and is surfaced as such, not silently accepted.
type ScheduleBroadcastRequest struct {
	VideoID     string   `json:"video_id"`
	VideoTitle  string   `json:"video_title"`
	Date        string   `json:"selected_date"`
	CustomTimes []string `json:"custom_times"`
	Timezone    string   `json:"timezone"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (r ScheduleBroadcastRequest) Validate() []string {
	var errs []string
	if r.VideoID == "" {
		errs = append(errs, "video_id is required")
	}
	if r.VideoTitle == "" {
		errs = append(errs, "video_title is required")
	}
	if r.Date == "" {
		errs = append(errs, "selected_date is required")
	}
	return errs
}

// ScheduleBroadcastResponse is the data payload for POST /api/schedule/broadcast.
type ScheduleBroadcastResponse struct {
	Message      string   `json:"message"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// ScheduleBroadcastSuccessResponse is the success envelope for POST /api/schedule/broadcast (200).
type ScheduleBroadcastSuccessResponse struct {
	Data  ScheduleBroadcastResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type ScheduleController struct {
	Logger   *slog.Logger
	Service  domain.ScheduleService
	Location *time.Location
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService, loc *time.Location) *ScheduleController {
	return &ScheduleController{
		Logger:   logger,
		Service:  svc,
		Location: loc,
	}
}

// parseDate accepts a bare calendar date or an RFC 3339 timestamp (the time part
// is ignored; only the calendar day in the configured zone matters).
func (c *ScheduleController) parseDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation("2006-01-02", s, c.Location); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// ScheduleBroadcast godoc
// @Summary Schedule live broadcasts for a video
// @Description Resolves the requested time slots on the selected date in the configured timezone, validates the lead-time and horizon windows, and submits the batch. All validation issues are returned together; per-slot creation failures do not block sibling slots.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleBroadcastRequest true "Scheduling request"
// @Success 200 {object} controllers.ScheduleBroadcastSuccessResponse "data contains the batch result"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed (error.issues lists every violation)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule/broadcast [post]
func (c *ScheduleController) ScheduleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req ScheduleBroadcastRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if req.Timezone != "" && req.Timezone != c.Location.String() {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			fmt.Sprintf("timezone must be %s", c.Location))
		return
	}

	date, err := c.parseDate(req.Date)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	var slots []domain.TimeSlot
	if req.CustomTimes == nil {
		slots = c.Service.DefaultSlots()
	} else {
		slots, err = domain.ParseTimeSlots(req.CustomTimes)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
	}

	result, err := c.Service.Schedule(r.Context(), userID, &domain.ScheduleRequest{
		VideoRef:   req.VideoID,
		VideoTitle: req.VideoTitle,
		Date:       date,
		Slots:      slots,
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			helpers.WriteJSONValidationError(w, "schedule validation failed", vErr.Issues)
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to schedule broadcasts")
		}
		return
	}

	resp := ScheduleBroadcastResponse{
		SuccessCount: result.SuccessCount,
		ErrorCount:   result.ErrorCount,
		Errors:       result.Errors,
	}
	switch {
	case result.Empty():
		resp.Message = "No broadcasts were scheduled. Please check your settings."
	case result.ErrorCount > 0:
		resp.Message = fmt.Sprintf("Scheduled %d broadcasts, %d failed", result.SuccessCount, result.ErrorCount)
	default:
		resp.Message = fmt.Sprintf("Successfully scheduled %d broadcasts", result.SuccessCount)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ValidateScheduleResponse is the data payload for GET /api/validate-schedule.
type ValidateScheduleResponse struct {
	Valid         bool                     `json:"valid"`
	ScheduledTime *time.Time               `json:"scheduled_time"`
	Issues        []domain.ValidationIssue `json:"issues"`
}

// ValidateScheduleSuccessResponse is the success envelope for GET /api/validate-schedule (200).
type ValidateScheduleSuccessResponse struct {
	Data  ValidateScheduleResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ValidateSchedule godoc
// @Summary Preview validation for one date and time slot
// @Description Resolves the slot on the given date in the configured timezone and reports every window violation without submitting anything.
// @Tags schedule
// @Produce json
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Param time query string true "Time slot (HH:MM)"
// @Success 200 {object} controllers.ValidateScheduleSuccessResponse "data contains the verdict and resolved instant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /validate-schedule [get]
func (c *ScheduleController) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	date, err := c.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	slot, err := domain.ParseTimeSlot(r.URL.Query().Get("time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	resolved, issues := c.Service.ValidateSlot(r.Context(), date, slot, time.Time{})
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ValidateScheduleResponse{
		Valid:         len(issues) == 0,
		ScheduledTime: &resolved,
		Issues:        issues,
	})
}
