package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ytlivescheduler/internal/domain"
)

type broadcastRepository struct {
	DB *sql.DB
}

func NewBroadcastRepository(db *sql.DB) domain.BroadcastRepository {
	return &broadcastRepository{
		DB: db,
	}
}

func (r *broadcastRepository) Create(ctx context.Context, b *domain.BroadcastRecord) error {
	query := `
		INSERT INTO broadcasts (user_id, video_id, video_title, broadcast_id, stream_id, scheduled_time, status, stream_key, watch_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		b.UserID, b.VideoRef, b.VideoTitle, b.BroadcastID, b.StreamID,
		b.ScheduledTime, string(b.Status), b.StreamKey, b.WatchURL, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
}

func (r *broadcastRepository) GetByID(ctx context.Context, userID, id string) (*domain.BroadcastRecord, error) {
	query := `
		SELECT id, user_id, video_id, video_title, broadcast_id, stream_id, scheduled_time, status, stream_key, watch_url, created_at, updated_at
		FROM broadcasts
		WHERE id = $1 AND user_id = $2
	`
	b := &domain.BroadcastRecord{}
	var status string
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&b.ID, &b.UserID, &b.VideoRef, &b.VideoTitle, &b.BroadcastID, &b.StreamID,
		&b.ScheduledTime, &status, &b.StreamKey, &b.WatchURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	b.Status = domain.BroadcastStatus(status)
	return b, nil
}

func (r *broadcastRepository) ListByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.BroadcastRecord, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM broadcasts WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, video_id, video_title, broadcast_id, stream_id, scheduled_time, status, stream_key, watch_url, created_at, updated_at
		FROM broadcasts
		WHERE user_id = $1
		ORDER BY scheduled_time ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]*domain.BroadcastRecord, 0)
	for rows.Next() {
		b := &domain.BroadcastRecord{}
		var status string
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.VideoRef, &b.VideoTitle, &b.BroadcastID, &b.StreamID,
			&b.ScheduledTime, &status, &b.StreamKey, &b.WatchURL, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		b.Status = domain.BroadcastStatus(status)
		records = append(records, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *broadcastRepository) UpdateStatus(ctx context.Context, id string, status domain.BroadcastStatus, updatedAt time.Time) error {
	query := `
		UPDATE broadcasts
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, string(status), updatedAt)
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

func (r *broadcastRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM broadcasts WHERE id = $1 AND user_id = $2`, id, userID)
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
