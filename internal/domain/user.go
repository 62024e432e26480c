package domain

import (
	"context"
	"time"
)

// ChannelCredentials are the Google OAuth tokens for a connected channel. The
// tokens are owned by Google; we only hold them to call the YouTube API.
type ChannelCredentials struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`
}

// Expired reports whether the access token needs a refresh before use.
func (c ChannelCredentials) Expired(now time.Time) bool {
	return !c.TokenExpiry.IsZero() && !c.TokenExpiry.After(now)
}

// User is a connected YouTube channel owner.
// swagger:model User
type User struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	ChannelID   string             `json:"channel_id"`
	ChannelName string             `json:"channel_name"`
	Credentials ChannelCredentials `json:"-"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Channel is the subset of YouTube channel data the service needs.
type Channel struct {
	ID              string
	Title           string
	UploadsPlaylist string
}

// UserRepository is the durable store for connected users.
type UserRepository interface {
	Upsert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByChannelID(ctx context.Context, channelID string) (*User, error)
	UpdateCredentials(ctx context.Context, id string, creds ChannelCredentials, updatedAt time.Time) error
}

// TokenIssuer issues session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// OAuthTokens is the result of an OAuth code exchange or refresh.
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// OAuthExchanger talks to the Google OAuth token endpoint.
type OAuthExchanger interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*OAuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*OAuthTokens, error)
}

// ChannelFetcher resolves the authenticated user's channel.
type ChannelFetcher interface {
	FetchChannel(ctx context.Context, accessToken string) (*Channel, error)
}

// AuthSession is what a completed OAuth callback produces.
type AuthSession struct {
	Token string `json:"access_token"`
	User  *User  `json:"user"`
}

// AuthService connects a YouTube channel and issues session tokens.
type AuthService interface {
	AuthURL(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, code string) (*AuthSession, error)
}
