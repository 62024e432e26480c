package domain

import "context"

// Video is a pre-recorded video from the connected channel's uploads.
// swagger:model Video
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     string `json:"duration"`
	PublishedAt  string `json:"published_at"`
}

// VideoCatalog lists the channel's uploaded videos. It is an external
// collaborator; the engine only consumes video identifiers and titles from it.
type VideoCatalog interface {
	ListVideos(ctx context.Context, creds ChannelCredentials) ([]*Video, error)
}

// VideoService exposes the catalog with token refresh handled.
type VideoService interface {
	ListVideos(ctx context.Context, userID string) ([]*Video, error)
}
