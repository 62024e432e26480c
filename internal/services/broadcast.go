package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ytlivescheduler/internal/domain"
)

// OrderBroadcasts sorts records for presentation: upcoming broadcasts
// (ScheduledTime > now) first, then the rest, each partition ascending by
// ScheduledTime. The ordering is a function of now and is recomputed on every
// call; nothing about it is stored on the records.
func OrderBroadcasts(records []*domain.BroadcastRecord, now time.Time) {
	sort.SliceStable(records, func(i, j int) bool {
		ui, uj := records[i].UpcomingAt(now), records[j].UpcomingAt(now)
		if ui != uj {
			return ui
		}
		return records[i].ScheduledTime.Before(records[j].ScheduledTime)
	})
}

type broadcastService struct {
	repo           domain.BroadcastRepository
	userRepo       domain.UserRepository
	creator        domain.BroadcastCreator
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewBroadcastService wires the broadcast lifecycle tracker. nowFn is injectable
// for tests; pass nil for the system clock.
func NewBroadcastService(
	repo domain.BroadcastRepository,
	userRepo domain.UserRepository,
	creator domain.BroadcastCreator,
	logger *slog.Logger,
	nowFn func() time.Time,
	timeout time.Duration,
) domain.BroadcastService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &broadcastService{
		repo:           repo,
		userRepo:       userRepo,
		creator:        creator,
		logger:         logger,
		now:            nowFn,
		contextTimeout: timeout,
	}
}

// List returns the user's broadcasts in presentation order plus the total count.
// The collection is rebuilt wholesale from the store on every call; callers
// replace their view with this result rather than merging.
func (s *broadcastService) List(ctx context.Context, userID string, now time.Time, p domain.PaginationParams) ([]*domain.BroadcastRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if now.IsZero() {
		now = s.now()
	}
	records, total, err := s.repo.ListByUserID(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list broadcasts: %w", err)
	}
	OrderBroadcasts(records, now)
	return records, total, nil
}

// Delete removes one broadcast by id. A missing record returns ErrNotFound and
// leaves the collection untouched. The YouTube-side delete is attempted first;
// its failure is logged but does not block removal, since the remote broadcast
// may already be gone.
func (s *broadcastService) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rec, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if err := s.creator.Delete(ctx, user.Credentials, rec.BroadcastID); err != nil {
		s.logger.WarnContext(ctx, "remote broadcast delete failed",
			"broadcast_id", rec.BroadcastID, "err", err)
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete broadcast: %w", err)
	}
	return nil
}

// TransitionStatus moves a broadcast along its lifecycle. The status machine is
// authoritative: created -> scheduled -> streaming -> completed, with failed
// reachable from created or streaming. Illegal moves return ErrInvalidTransition
// and the record is left unchanged.
func (s *broadcastService) TransitionStatus(ctx context.Context, userID, id string, next domain.BroadcastStatus) (*domain.BroadcastRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !next.Valid() {
		return nil, fmt.Errorf("status %q: %w", next, domain.ErrInvalidInput)
	}
	rec, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !rec.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", rec.Status, next, domain.ErrInvalidTransition)
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, next, now); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	rec.Status = next
	rec.UpdatedAt = now
	return rec, nil
}
