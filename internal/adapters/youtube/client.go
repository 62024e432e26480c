package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ytlivescheduler/internal/domain"
)

// DefaultAPIBaseURL is the YouTube Data API v3 endpoint.
const DefaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"

// Client talks to the YouTube Data API v3. It implements domain.BroadcastCreator,
// domain.VideoCatalog, and domain.ChannelFetcher.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a YouTube API client. baseURL may be empty for the real API;
// tests point it at an httptest server. A nil httpClient uses a 30s-timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// doJSON performs one authorized API call and decodes the response into out
// (skipped when out is nil). Non-2xx responses are returned as errors carrying
// the API's reason when present.
func (c *Client) doJSON(ctx context.Context, accessToken, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call youtube api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			reason := ""
			if len(apiErr.Error.Errors) > 0 {
				reason = apiErr.Error.Errors[0].Reason
			}
			return fmt.Errorf("youtube api status %d (%s): %s", resp.StatusCode, reason, apiErr.Error.Message)
		}
		return fmt.Errorf("youtube api status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

type broadcastInsertResponse struct {
	ID string `json:"id"`
}

type streamInsertResponse struct {
	ID  string `json:"id"`
	CDN struct {
		IngestionInfo struct {
			StreamName string `json:"streamName"`
		} `json:"ingestionInfo"`
	} `json:"cdn"`
}

// CreateBatch creates one broadcast per item, attempting each independently; a
// single slot's failure is recorded in its outcome and does not abort siblings.
// Only a dead context aborts the batch, which is reported as a whole-call error.
// Per item the sequence is broadcast insert, then stream insert, then bind.
func (c *Client) CreateBatch(ctx context.Context, creds domain.ChannelCredentials, videoRef, videoTitle string, items []domain.BatchCreateItem) ([]domain.SlotOutcome, error) {
	outcomes := make([]domain.SlotOutcome, 0, len(items))
	for _, item := range items {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("batch aborted: %w", ctx.Err())
		}
		rec, err := c.createOne(ctx, creds.AccessToken, videoRef, videoTitle, item)
		outcome := domain.SlotOutcome{Item: item}
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("batch aborted: %w", ctx.Err())
			}
			outcome.Err = fmt.Sprintf("time %s: %v", item.Slot, err)
		} else {
			outcome.Record = rec
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (c *Client) createOne(ctx context.Context, accessToken, videoRef, videoTitle string, item domain.BatchCreateItem) (*domain.BroadcastRecord, error) {
	broadcastBody := map[string]any{
		"snippet": map[string]any{
			"title":              "🔴 LIVE: " + videoTitle,
			"description":        fmt.Sprintf("Scheduled live stream of: %s\n\nOriginal video: https://youtube.com/watch?v=%s", videoTitle, videoRef),
			"scheduledStartTime": item.ScheduledTime.UTC().Format("2006-01-02T15:04:05.000Z"),
		},
		"status": map[string]any{
			"privacyStatus":           "unlisted",
			"selfDeclaredMadeForKids": false,
		},
	}
	var broadcast broadcastInsertResponse
	q := url.Values{"part": {"snippet,status"}}
	if err := c.doJSON(ctx, accessToken, http.MethodPost, "/liveBroadcasts", q, broadcastBody, &broadcast); err != nil {
		return nil, fmt.Errorf("insert broadcast: %w", err)
	}

	streamBody := map[string]any{
		"snippet": map[string]any{
			"title": fmt.Sprintf("Stream for %s at %s", videoTitle, item.Slot),
		},
		"cdn": map[string]any{
			"frameRate":     "30fps",
			"ingestionType": "rtmp",
			"resolution":    "720p",
		},
	}
	var stream streamInsertResponse
	q = url.Values{"part": {"snippet,cdn"}}
	if err := c.doJSON(ctx, accessToken, http.MethodPost, "/liveStreams", q, streamBody, &stream); err != nil {
		return nil, fmt.Errorf("insert stream: %w", err)
	}

	q = url.Values{"part": {"id"}, "id": {broadcast.ID}, "streamId": {stream.ID}}
	if err := c.doJSON(ctx, accessToken, http.MethodPost, "/liveBroadcasts/bind", q, nil, nil); err != nil {
		return nil, fmt.Errorf("bind stream: %w", err)
	}

	return &domain.BroadcastRecord{
		VideoRef:      videoRef,
		VideoTitle:    videoTitle,
		BroadcastID:   broadcast.ID,
		StreamID:      stream.ID,
		ScheduledTime: item.ScheduledTime,
		Status:        domain.StatusCreated,
		StreamKey:     stream.CDN.IngestionInfo.StreamName,
		WatchURL:      "https://www.youtube.com/watch?v=" + broadcast.ID,
	}, nil
}

// Delete removes a live broadcast by its YouTube id.
func (c *Client) Delete(ctx context.Context, creds domain.ChannelCredentials, broadcastID string) error {
	q := url.Values{"id": {broadcastID}}
	return c.doJSON(ctx, creds.AccessToken, http.MethodDelete, "/liveBroadcasts", q, nil, nil)
}

type channelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// FetchChannel resolves the channel behind the access token.
func (c *Client) FetchChannel(ctx context.Context, accessToken string) (*domain.Channel, error) {
	q := url.Values{"part": {"snippet,contentDetails"}, "mine": {"true"}}
	var resp channelListResponse
	if err := c.doJSON(ctx, accessToken, http.MethodGet, "/channels", q, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no youtube channel found: %w", domain.ErrNotFound)
	}
	ch := resp.Items[0]
	return &domain.Channel{
		ID:              ch.ID,
		Title:           ch.Snippet.Title,
		UploadsPlaylist: ch.ContentDetails.RelatedPlaylists.Uploads,
	}, nil
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			ResourceID  struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
			Thumbnails struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// ListVideos lists the channel's uploads playlist, enriched with per-video
// durations. Duration lookup failures degrade to empty durations rather than
// failing the listing.
func (c *Client) ListVideos(ctx context.Context, creds domain.ChannelCredentials) ([]*domain.Video, error) {
	channel, err := c.FetchChannel(ctx, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"part":       {"snippet"},
		"playlistId": {channel.UploadsPlaylist},
		"maxResults": {"50"},
	}
	var playlist playlistItemsResponse
	if err := c.doJSON(ctx, creds.AccessToken, http.MethodGet, "/playlistItems", q, nil, &playlist); err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	videos := make([]*domain.Video, 0, len(playlist.Items))
	ids := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		sn := item.Snippet
		desc := sn.Description
		if len(desc) > 200 {
			desc = desc[:200] + "..."
		}
		videos = append(videos, &domain.Video{
			ID:           sn.ResourceID.VideoID,
			Title:        sn.Title,
			Description:  desc,
			ThumbnailURL: sn.Thumbnails.Medium.URL,
			PublishedAt:  sn.PublishedAt,
		})
		ids = append(ids, sn.ResourceID.VideoID)
	}

	if len(ids) > 0 {
		q = url.Values{"part": {"contentDetails"}, "id": {strings.Join(ids, ",")}}
		var details videoListResponse
		if err := c.doJSON(ctx, creds.AccessToken, http.MethodGet, "/videos", q, nil, &details); err == nil {
			durations := make(map[string]string, len(details.Items))
			for _, item := range details.Items {
				durations[item.ID] = item.ContentDetails.Duration
			}
			for _, v := range videos {
				v.Duration = durations[v.ID]
			}
		}
	}
	return videos, nil
}
