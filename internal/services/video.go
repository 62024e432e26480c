package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ytlivescheduler/internal/domain"
)

type videoService struct {
	userRepo       domain.UserRepository
	catalog        domain.VideoCatalog
	oauth          domain.OAuthExchanger
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewVideoService exposes the channel's video catalog, refreshing expired Google
// access tokens transparently.
func NewVideoService(
	userRepo domain.UserRepository,
	catalog domain.VideoCatalog,
	oauth domain.OAuthExchanger,
	logger *slog.Logger,
	nowFn func() time.Time,
	timeout time.Duration,
) domain.VideoService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &videoService{
		userRepo:       userRepo,
		catalog:        catalog,
		oauth:          oauth,
		logger:         logger,
		now:            nowFn,
		contextTimeout: timeout,
	}
}

func (s *videoService) ListVideos(ctx context.Context, userID string) ([]*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	creds, err := s.freshCredentials(ctx, user)
	if err != nil {
		return nil, err
	}

	videos, err := s.catalog.ListVideos(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// freshCredentials refreshes the Google access token when expired and persists
// the new token before returning it.
func (s *videoService) freshCredentials(ctx context.Context, user *domain.User) (domain.ChannelCredentials, error) {
	creds := user.Credentials
	if !creds.Expired(s.now()) {
		return creds, nil
	}

	tokens, err := s.oauth.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return domain.ChannelCredentials{}, fmt.Errorf("refresh access token: %w", err)
	}
	creds.AccessToken = tokens.AccessToken
	creds.TokenExpiry = tokens.Expiry
	if tokens.RefreshToken != "" {
		creds.RefreshToken = tokens.RefreshToken
	}

	if err := s.userRepo.UpdateCredentials(ctx, user.ID, creds, s.now()); err != nil {
		// Token is still usable for this request even if the save failed.
		s.logger.WarnContext(ctx, "failed to persist refreshed credentials", "user_id", user.ID, "err", err)
	}
	return creds, nil
}
