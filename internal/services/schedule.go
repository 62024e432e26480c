package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"ytlivescheduler/internal/domain"
)

// ResolveSlots binds each time-of-day slot to a concrete instant on the given
// calendar day in loc. When the day is "today" in loc and the instant has already
// passed, the slot rolls forward one calendar day (re-resolved on the next date,
// so DST gaps are handled by time.Date) and is marked RolledToNextDay.
// Pure function of its inputs; now is always injected.
func ResolveSlots(date time.Time, slots []domain.TimeSlot, loc *time.Location, now time.Time) []domain.ResolvedInstant {
	y, m, d := date.In(loc).Date()
	ty, tm, td := now.In(loc).Date()
	isToday := y == ty && m == tm && d == td

	out := make([]domain.ResolvedInstant, 0, len(slots))
	for _, slot := range slots {
		ts := time.Date(y, m, d, slot.Hour, slot.Minute, 0, 0, loc)
		rolled := false
		if isToday && !ts.After(now) {
			ts = time.Date(y, m, d+1, slot.Hour, slot.Minute, 0, 0, loc)
			rolled = true
		}
		out = append(out, domain.ResolvedInstant{Slot: slot, Timestamp: ts, RolledToNextDay: rolled})
	}
	return out
}

// ValidateSchedule applies the policy window to a resolved schedule. A date
// strictly before today (in the policy zone) yields a single PAST_DATE issue and
// skips the per-slot checks. Otherwise every resolved instant is checked
// independently and all violations are accumulated. An empty result means the
// whole request may be submitted.
func ValidateSchedule(policy domain.SchedulePolicy, date time.Time, resolved []domain.ResolvedInstant, now time.Time) []domain.ValidationIssue {
	loc := policy.Location
	nowLocal := now.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	y, m, d := date.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if day.Before(today) {
		return []domain.ValidationIssue{{
			Reason: domain.ReasonPastDate,
			Detail: fmt.Sprintf("selected date %s is in the past (%s)", day.Format("2006-01-02"), loc),
		}}
	}

	var issues []domain.ValidationIssue
	for _, ri := range resolved {
		until := ri.Timestamp.Sub(now)
		if until < policy.MinLeadTime {
			mins := int(math.Round(until.Minutes()))
			issues = append(issues, domain.ValidationIssue{
				Slot:   ri.Slot,
				Reason: domain.ReasonTooSoon,
				Detail: fmt.Sprintf("time %s: must be at least %d minutes in the future (%d mins from now)", ri.Slot, int(policy.MinLeadTime.Minutes()), mins),
			})
		}
		// The rolled-forward instant is what gets submitted, so rolling can
		// itself push a slot over the horizon.
		if until > policy.MaxHorizon {
			issues = append(issues, domain.ValidationIssue{
				Slot:   ri.Slot,
				Reason: domain.ReasonTooFar,
				Detail: fmt.Sprintf("time %s: cannot schedule more than %d days in advance", ri.Slot, int(policy.MaxHorizon.Hours()/24)),
			})
		}
	}
	return issues
}

type scheduleService struct {
	policy         domain.SchedulePolicy
	userRepo       domain.UserRepository
	broadcastRepo  domain.BroadcastRepository
	creator        domain.BroadcastCreator
	emails         domain.EmailService
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewScheduleService wires the batch scheduling orchestrator. emails may be nil
// when no digest notification is configured. nowFn is injectable for tests; pass
// nil for the system clock.
func NewScheduleService(
	policy domain.SchedulePolicy,
	userRepo domain.UserRepository,
	broadcastRepo domain.BroadcastRepository,
	creator domain.BroadcastCreator,
	emails domain.EmailService,
	logger *slog.Logger,
	nowFn func() time.Time,
	timeout time.Duration,
) domain.ScheduleService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &scheduleService{
		policy:         policy,
		userRepo:       userRepo,
		broadcastRepo:  broadcastRepo,
		creator:        creator,
		emails:         emails,
		logger:         logger,
		now:            nowFn,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) DefaultSlots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(s.policy.DefaultSlots))
	copy(out, s.policy.DefaultSlots)
	return out
}

// Schedule resolves, validates, and submits one batch of broadcasts. Validation
// failure returns *domain.ValidationError before anything goes upstream. A failed
// round trip returns a plain error; per-slot failures are reduced into the
// BatchResult instead. Created records are persisted only after the remote call
// fully resolves.
func (s *scheduleService) Schedule(ctx context.Context, userID string, req *domain.ScheduleRequest) (*domain.BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req.VideoRef == "" {
		return nil, fmt.Errorf("video reference is required: %w", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	now := s.now()
	resolved := ResolveSlots(req.Date, req.Slots, s.policy.Location, now)
	if issues := ValidateSchedule(s.policy, req.Date, resolved, now); len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	if len(resolved) == 0 {
		// Nothing to submit; surfaced to the caller as the 0/0 outcome.
		return &domain.BatchResult{Errors: []string{}}, nil
	}

	items := make([]domain.BatchCreateItem, 0, len(resolved))
	for _, ri := range resolved {
		items = append(items, domain.BatchCreateItem{Slot: ri.Slot, ScheduledTime: ri.Timestamp})
	}

	outcomes, err := s.creator.CreateBatch(ctx, user.Credentials, req.VideoRef, req.VideoTitle, items)
	if err != nil {
		return nil, fmt.Errorf("create broadcast batch: %w", err)
	}

	result := &domain.BatchResult{Errors: []string{}}
	var scheduledTimes []time.Time
	for _, out := range outcomes {
		if out.Err != "" || out.Record == nil {
			result.ErrorCount++
			msg := out.Err
			if msg == "" {
				msg = fmt.Sprintf("time %s: broadcast was not created", out.Item.Slot)
			}
			result.Errors = append(result.Errors, msg)
			continue
		}

		rec := out.Record
		rec.UserID = user.ID
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if err := s.broadcastRepo.Create(ctx, rec); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist created broadcast",
				"broadcast_id", rec.BroadcastID, "err", err)
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("time %s: broadcast created but could not be saved", out.Item.Slot))
			continue
		}
		result.SuccessCount++
		scheduledTimes = append(scheduledTimes, rec.ScheduledTime)
	}

	if result.SuccessCount > 0 {
		s.sendDigest(ctx, user, req.VideoTitle, scheduledTimes, result)
	}
	return result, nil
}

// ValidateSlot previews validation for a single date+slot pair without
// submitting anything. Returns the resolved instant and any issues.
func (s *scheduleService) ValidateSlot(ctx context.Context, date time.Time, slot domain.TimeSlot, now time.Time) (time.Time, []domain.ValidationIssue) {
	if now.IsZero() {
		now = s.now()
	}
	resolved := ResolveSlots(date, []domain.TimeSlot{slot}, s.policy.Location, now)
	issues := ValidateSchedule(s.policy, date, resolved, now)
	return resolved[0].Timestamp, issues
}

func (s *scheduleService) sendDigest(ctx context.Context, user *domain.User, videoTitle string, times []time.Time, result *domain.BatchResult) {
	if s.emails == nil || user.Email == "" {
		return
	}
	data := &domain.ScheduleDigestEmailData{
		Email:          user.Email,
		Name:           user.Name,
		VideoTitle:     videoTitle,
		ScheduledTimes: times,
		Timezone:       s.policy.Location.String(),
		SuccessCount:   result.SuccessCount,
		ErrorCount:     result.ErrorCount,
		Errors:         result.Errors,
	}
	if err := s.emails.SendScheduleDigest(ctx, data); err != nil {
		// Digest is best effort; the batch already succeeded.
		s.logger.WarnContext(ctx, "failed to send schedule digest", "user_id", user.ID, "err", err)
	}
}
