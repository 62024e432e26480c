package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeSlot is a wall-clock time of day with no date component.
// It marshals to and from the "HH:MM" form used on the wire.
type TimeSlot struct {
	Hour   int
	Minute int
}

// ParseTimeSlot parses "HH:MM" into a TimeSlot, enforcing hour 0-23 and minute 0-59.
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("time slot %q: %w", s, ErrInvalidInput)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &hour, &minute); err != nil {
		return TimeSlot{}, fmt.Errorf("time slot %q: %w", s, ErrInvalidInput)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeSlot{}, fmt.Errorf("time slot %q out of range: %w", s, ErrInvalidInput)
	}
	return TimeSlot{Hour: hour, Minute: minute}, nil
}

// ParseTimeSlots parses a list of "HH:MM" strings, preserving order and duplicates.
func ParseTimeSlots(ss []string) ([]TimeSlot, error) {
	out := make([]TimeSlot, 0, len(ss))
	for _, s := range ss {
		slot, err := ParseTimeSlot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, nil
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON encodes the slot as its "HH:MM" string form.
func (t TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string, rejecting out-of-range values.
func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	slot, err := ParseTimeSlot(s)
	if err != nil {
		return err
	}
	*t = slot
	return nil
}

// ScheduleRequest is the transient input to one scheduling action. It is built
// per request, consumed by validation and submission, and never persisted.
type ScheduleRequest struct {
	VideoRef   string
	VideoTitle string
	Date       time.Time // calendar day; only its Y/M/D in the policy zone matter
	Slots      []TimeSlot
}

// ResolvedInstant is a slot bound to a concrete date and timezone. Computed just
// before validation and consumed immediately; never stored.
type ResolvedInstant struct {
	Slot            TimeSlot
	Timestamp       time.Time
	RolledToNextDay bool
}

// IssueReason classifies why a requested slot was rejected.
type IssueReason string

const (
	ReasonPastDate IssueReason = "PAST_DATE"
	ReasonTooSoon  IssueReason = "TOO_SOON"
	ReasonTooFar   IssueReason = "TOO_FAR"
)

// ValidationIssue is one rejection discovered during schedule validation.
// swagger:model ValidationIssue
type ValidationIssue struct {
	Slot   TimeSlot    `json:"slot"`
	Reason IssueReason `json:"reason"`
	Detail string      `json:"detail"`
}

// ValidationError aggregates every issue found for a scheduling attempt. It blocks
// submission entirely; nothing is sent upstream when validation fails.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Detail)
	}
	return "schedule validation failed: " + strings.Join(msgs, "; ")
}

// SchedulePolicy is the configured validation window. All date math runs in
// Location, never in the caller's local zone.
type SchedulePolicy struct {
	Location     *time.Location
	MinLeadTime  time.Duration
	MaxHorizon   time.Duration
	DefaultSlots []TimeSlot
}

// BatchResult is the reduction of one batch submission. SuccessCount+ErrorCount
// always equals the number of submitted slots; Errors holds one entry per failed
// slot in slot order.
// swagger:model BatchResult
type BatchResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// Empty reports the zero-success zero-error outcome, which callers must surface
// as "nothing was scheduled" rather than silent success.
func (r *BatchResult) Empty() bool {
	return r.SuccessCount == 0 && r.ErrorCount == 0
}

// BatchCreateItem is one slot of a batch creation call.
type BatchCreateItem struct {
	Slot          TimeSlot
	ScheduledTime time.Time
}

// SlotOutcome is the per-slot result of a batch creation call: either a created
// record or an error message, never both.
type SlotOutcome struct {
	Item   BatchCreateItem
	Record *BroadcastRecord
	Err    string
}

// BroadcastCreator is the external collaborator that creates live broadcasts.
// CreateBatch attempts every item independently; one slot's failure must not abort
// the others. A returned error means the whole round trip failed and no per-slot
// outcomes are available.
type BroadcastCreator interface {
	CreateBatch(ctx context.Context, creds ChannelCredentials, videoRef, videoTitle string, items []BatchCreateItem) ([]SlotOutcome, error)
	Delete(ctx context.Context, creds ChannelCredentials, broadcastID string) error
}

// ScheduleService turns a schedule request into created broadcasts.
type ScheduleService interface {
	Schedule(ctx context.Context, userID string, req *ScheduleRequest) (*BatchResult, error)
	ValidateSlot(ctx context.Context, date time.Time, slot TimeSlot, now time.Time) (time.Time, []ValidationIssue)
	DefaultSlots() []TimeSlot
}
