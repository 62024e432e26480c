package domain

import (
	"context"
	"time"
)

// BroadcastStatus is the lifecycle state of a scheduled broadcast. The status is
// authoritative in the store; this service reads it and validates transitions on
// behalf of the stream runner, but never infers state on its own.
type BroadcastStatus string

const (
	StatusCreated   BroadcastStatus = "created"
	StatusScheduled BroadcastStatus = "scheduled"
	StatusStreaming BroadcastStatus = "streaming"
	StatusCompleted BroadcastStatus = "completed"
	StatusFailed    BroadcastStatus = "failed"
)

// statusTransitions encodes created -> scheduled -> streaming -> completed, with
// failed reachable from created or streaming. completed and failed are terminal.
var statusTransitions = map[BroadcastStatus][]BroadcastStatus{
	StatusCreated:   {StatusScheduled, StatusFailed},
	StatusScheduled: {StatusStreaming},
	StatusStreaming: {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s BroadcastStatus) CanTransitionTo(next BroadcastStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s BroadcastStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusScheduled, StatusStreaming, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s BroadcastStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0 && s.Valid()
}

// BroadcastRecord is a scheduled live broadcast as stored. The "upcoming" label is
// a function of now and is derived per read via UpcomingAt; it is never a field.
// swagger:model BroadcastRecord
type BroadcastRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	VideoRef      string          `json:"video_id"`
	VideoTitle    string          `json:"video_title"`
	BroadcastID   string          `json:"broadcast_id"`
	StreamID      string          `json:"stream_id"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	Status        BroadcastStatus `json:"status"`
	StreamKey     string          `json:"stream_url"`
	WatchURL      string          `json:"watch_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UpcomingAt reports whether the broadcast is still ahead of the given instant.
func (b *BroadcastRecord) UpcomingAt(now time.Time) bool {
	return b.ScheduledTime.After(now)
}

// BroadcastRepository is the durable store for broadcast records.
type BroadcastRepository interface {
	Create(ctx context.Context, b *BroadcastRecord) error
	GetByID(ctx context.Context, userID, id string) (*BroadcastRecord, error)
	ListByUserID(ctx context.Context, userID string, p PaginationParams) ([]*BroadcastRecord, int, error)
	UpdateStatus(ctx context.Context, id string, status BroadcastStatus, updatedAt time.Time) error
	Delete(ctx context.Context, userID, id string) error
}

// BroadcastService tracks the lifecycle of scheduled broadcasts.
type BroadcastService interface {
	List(ctx context.Context, userID string, now time.Time, p PaginationParams) ([]*BroadcastRecord, int, error)
	Delete(ctx context.Context, userID, id string) error
	TransitionStatus(ctx context.Context, userID, id string, next BroadcastStatus) (*BroadcastRecord, error)
}
