package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"ytlivescheduler/internal/domain"
)

type authService struct {
	userRepo       domain.UserRepository
	oauth          domain.OAuthExchanger
	channels       domain.ChannelFetcher
	tokens         domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewAuthService creates the service that connects a YouTube channel via Google
// OAuth and issues session tokens for the API.
func NewAuthService(
	userRepo domain.UserRepository,
	oauth domain.OAuthExchanger,
	channels domain.ChannelFetcher,
	tokens domain.TokenIssuer,
	tokenExpiry time.Duration,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		oauth:          oauth,
		channels:       channels,
		tokens:         tokens,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

func (s *authService) AuthURL(ctx context.Context) (string, error) {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return s.oauth.AuthURL(hex.EncodeToString(stateBytes)), nil
}

// HandleCallback exchanges the authorization code, resolves the channel behind
// the credentials, upserts the user row, and returns a session token. The
// channel id is the stable identity; reconnecting an existing channel refreshes
// its stored credentials.
func (s *authService) HandleCallback(ctx context.Context, code string) (*domain.AuthSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if code == "" {
		return nil, fmt.Errorf("authorization code is required: %w", domain.ErrInvalidInput)
	}

	tokens, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	channel, err := s.channels.FetchChannel(ctx, tokens.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch channel: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		// YouTube does not expose the account email through this API.
		Email:       channel.ID + "@youtube.invalid",
		Name:        channel.Title,
		ChannelID:   channel.ID,
		ChannelName: channel.Title,
		Credentials: domain.ChannelCredentials{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			TokenExpiry:  tokens.Expiry,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &domain.AuthSession{Token: token, User: user}, nil
}
