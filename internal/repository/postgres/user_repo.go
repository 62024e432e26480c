package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ytlivescheduler/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

// Upsert inserts the user keyed by channel id, or refreshes name and credentials
// for a returning channel.
func (r *userRepository) Upsert(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, name, channel_id, channel_name, access_token, refresh_token, token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (channel_id) DO UPDATE SET
			name = EXCLUDED.name,
			channel_name = EXCLUDED.channel_name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		u.Email, u.Name, u.ChannelID, u.ChannelName,
		u.Credentials.AccessToken, u.Credentials.RefreshToken, u.Credentials.TokenExpiry,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, channel_id, channel_name, access_token, refresh_token, token_expiry, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByChannelID(ctx context.Context, channelID string) (*domain.User, error) {
	query := `
		SELECT id, email, name, channel_id, channel_name, access_token, refresh_token, token_expiry, created_at, updated_at
		FROM users
		WHERE channel_id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, channelID))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var expiry sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.ChannelID, &u.ChannelName,
		&u.Credentials.AccessToken, &u.Credentials.RefreshToken, &expiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if expiry.Valid {
		u.Credentials.TokenExpiry = expiry.Time
	}
	return u, nil
}

func (r *userRepository) UpdateCredentials(ctx context.Context, id string, creds domain.ChannelCredentials, updatedAt time.Time) error {
	query := `
		UPDATE users
		SET access_token = $2, refresh_token = $3, token_expiry = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, creds.AccessToken, creds.RefreshToken, creds.TokenExpiry, updatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
