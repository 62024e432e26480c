package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ytlivescheduler/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID        map[string]*domain.User
	byChannelID map[string]*domain.User
	nextID      int
	upsertErr   error
	credsErr    error

	updatedCreds *domain.ChannelCredentials // last UpdateCredentials call, if any
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:        make(map[string]*domain.User),
		byChannelID: make(map[string]*domain.User),
		nextID:      1,
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byChannelID[u.ChannelID] = u
	}
	return f
}

func (f *fakeUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing, ok := f.byChannelID[u.ChannelID]; ok {
		u.ID = existing.ID
		u.CreatedAt = existing.CreatedAt
	} else {
		u.ID = fmt.Sprintf("user-%d", f.nextID)
		f.nextID++
	}
	f.byID[u.ID] = u
	f.byChannelID[u.ChannelID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByChannelID(ctx context.Context, channelID string) (*domain.User, error) {
	if u, ok := f.byChannelID[channelID]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateCredentials(ctx context.Context, id string, creds domain.ChannelCredentials, updatedAt time.Time) error {
	if f.credsErr != nil {
		return f.credsErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Credentials = creds
	u.UpdatedAt = updatedAt
	f.updatedCreds = &creds
	return nil
}

// fakeBroadcastRepo is an in-memory BroadcastRepository for tests.
type fakeBroadcastRepo struct {
	records   []*domain.BroadcastRecord
	nextID    int
	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakeBroadcastRepo(records ...*domain.BroadcastRecord) *fakeBroadcastRepo {
	return &fakeBroadcastRepo{records: records, nextID: 1}
}

func (f *fakeBroadcastRepo) Create(ctx context.Context, b *domain.BroadcastRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.nextID++
	f.records = append(f.records, b)
	return nil
}

func (f *fakeBroadcastRepo) GetByID(ctx context.Context, userID, id string) (*domain.BroadcastRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBroadcastRepo) ListByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.BroadcastRecord, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.BroadcastRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeBroadcastRepo) UpdateStatus(ctx context.Context, id string, status domain.BroadcastStatus, updatedAt time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, r := range f.records {
		if r.ID == id {
			r.Status = status
			r.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBroadcastRepo) Delete(ctx context.Context, userID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.records {
		if r.ID == id && r.UserID == userID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeCreator scripts per-slot outcomes for CreateBatch. failSlots maps the
// "HH:MM" form to an error message; everything else succeeds.
type fakeCreator struct {
	failSlots map[string]string
	batchErr  error
	deleteErr error

	deleted []string // broadcast IDs passed to Delete
	calls   int
}

func (f *fakeCreator) CreateBatch(ctx context.Context, creds domain.ChannelCredentials, videoRef, videoTitle string, items []domain.BatchCreateItem) ([]domain.SlotOutcome, error) {
	f.calls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make([]domain.SlotOutcome, 0, len(items))
	for i, item := range items {
		if msg, ok := f.failSlots[item.Slot.String()]; ok {
			out = append(out, domain.SlotOutcome{Item: item, Err: msg})
			continue
		}
		out = append(out, domain.SlotOutcome{
			Item: item,
			Record: &domain.BroadcastRecord{
				VideoRef:      videoRef,
				VideoTitle:    videoTitle,
				BroadcastID:   fmt.Sprintf("bc-%d", i+1),
				StreamID:      fmt.Sprintf("st-%d", i+1),
				ScheduledTime: item.ScheduledTime,
				Status:        domain.StatusCreated,
			},
		})
	}
	return out, nil
}

func (f *fakeCreator) Delete(ctx context.Context, creds domain.ChannelCredentials, broadcastID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, broadcastID)
	return nil
}

// fakeEmailService records digest sends.
type fakeEmailService struct {
	sent []*domain.ScheduleDigestEmailData
	err  error
}

func (f *fakeEmailService) SendScheduleDigest(ctx context.Context, data *domain.ScheduleDigestEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeOAuth scripts token exchange and refresh responses.
type fakeOAuth struct {
	exchangeTokens *domain.OAuthTokens
	refreshTokens  *domain.OAuthTokens
	exchangeErr    error
	refreshErr     error
	refreshCalls   int
}

func (f *fakeOAuth) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeOAuth) Exchange(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.exchangeTokens, nil
}

func (f *fakeOAuth) Refresh(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshTokens, nil
}

// fakeChannelFetcher returns a fixed channel or a configurable error.
type fakeChannelFetcher struct {
	channel *domain.Channel
	err     error
}

func (f *fakeChannelFetcher) FetchChannel(ctx context.Context, accessToken string) (*domain.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.channel, nil
}

// fakeCatalog returns fixed videos or a configurable error, recording the
// credentials it was called with.
type fakeCatalog struct {
	videos    []*domain.Video
	err       error
	lastCreds domain.ChannelCredentials
}

func (f *fakeCatalog) ListVideos(ctx context.Context, creds domain.ChannelCredentials) ([]*domain.Video, error) {
	f.lastCreds = creds
	if f.err != nil {
		return nil, f.err
	}
	return f.videos, nil
}

// fakeTokenIssuer issues predictable tokens.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}
