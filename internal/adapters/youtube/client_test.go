package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ytlivescheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() domain.ChannelCredentials {
	return domain.ChannelCredentials{AccessToken: "test-token"}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// liveAPIStub serves the broadcast insert, stream insert, and bind endpoints,
// optionally failing the broadcast insert for specific scheduled start times.
func liveAPIStub(t *testing.T, failStartTimes map[string]bool) *httptest.Server {
	t.Helper()
	var broadcastSeq, streamSeq atomic.Int64
	mux := http.NewServeMux()

	mux.HandleFunc("POST /liveBroadcasts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "snippet,status", r.URL.Query().Get("part"))

		var body struct {
			Snippet struct {
				Title              string `json:"title"`
				ScheduledStartTime string `json:"scheduledStartTime"`
			} `json:"snippet"`
			Status struct {
				PrivacyStatus string `json:"privacyStatus"`
			} `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "unlisted", body.Status.PrivacyStatus)
		assert.Contains(t, body.Snippet.Title, "🔴 LIVE:")

		if failStartTimes[body.Snippet.ScheduledStartTime] {
			w.WriteHeader(http.StatusForbidden)
			writeJSON(t, w, map[string]any{"error": map[string]any{
				"code": 403, "message": "quota exceeded",
				"errors": []map[string]string{{"reason": "quotaExceeded"}},
			}})
			return
		}
		writeJSON(t, w, map[string]string{"id": fmt.Sprintf("bc-%d", broadcastSeq.Add(1))})
	})

	mux.HandleFunc("POST /liveStreams", func(w http.ResponseWriter, r *http.Request) {
		n := streamSeq.Add(1)
		writeJSON(t, w, map[string]any{
			"id": fmt.Sprintf("st-%d", n),
			"cdn": map[string]any{
				"ingestionInfo": map[string]string{"streamName": fmt.Sprintf("key-%d", n)},
			},
		})
	})

	mux.HandleFunc("POST /liveBroadcasts/bind", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id"))
		assert.NotEmpty(t, r.URL.Query().Get("streamId"))
		writeJSON(t, w, map[string]string{"id": r.URL.Query().Get("id")})
	})

	return httptest.NewServer(mux)
}

func TestClient_CreateBatch(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 0, 25, 0, 0, time.UTC)
	items := []domain.BatchCreateItem{
		{Slot: domain.TimeSlot{Hour: 5, Minute: 55}, ScheduledTime: base},
		{Slot: domain.TimeSlot{Hour: 6, Minute: 55}, ScheduledTime: base.Add(time.Hour)},
		{Slot: domain.TimeSlot{Hour: 7, Minute: 55}, ScheduledTime: base.Add(2 * time.Hour)},
	}

	t.Run("all slots succeed", func(t *testing.T) {
		srv := liveAPIStub(t, nil)
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		outcomes, err := c.CreateBatch(ctx, testCreds(), "vid-1", "Morning Show", items)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		for i, out := range outcomes {
			assert.Empty(t, out.Err)
			require.NotNil(t, out.Record)
			assert.Equal(t, items[i].ScheduledTime, out.Record.ScheduledTime)
			assert.Equal(t, domain.StatusCreated, out.Record.Status)
			assert.NotEmpty(t, out.Record.StreamKey)
			assert.Equal(t, "https://www.youtube.com/watch?v="+out.Record.BroadcastID, out.Record.WatchURL)
		}
	})

	t.Run("one slot failing does not abort the rest", func(t *testing.T) {
		srv := liveAPIStub(t, map[string]bool{
			base.Add(time.Hour).Format("2006-01-02T15:04:05.000Z"): true,
		})
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		outcomes, err := c.CreateBatch(ctx, testCreds(), "vid-1", "Morning Show", items)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		assert.NotNil(t, outcomes[0].Record)
		assert.Nil(t, outcomes[1].Record)
		assert.Contains(t, outcomes[1].Err, "time 06:55")
		assert.Contains(t, outcomes[1].Err, "quotaExceeded")
		assert.NotNil(t, outcomes[2].Record)
	})

	t.Run("canceled context aborts the whole batch", func(t *testing.T) {
		srv := liveAPIStub(t, nil)
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		outcomes, err := c.CreateBatch(canceled, testCreds(), "vid-1", "Morning Show", items)

		require.Error(t, err)
		assert.Nil(t, outcomes)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var gotID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/liveBroadcasts", r.URL.Path)
			gotID = r.URL.Query().Get("id")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		require.NoError(t, c.Delete(ctx, testCreds(), "bc-1"))
		assert.Equal(t, "bc-1", gotID)
	})

	t.Run("api error carries status and reason", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(t, w, map[string]any{"error": map[string]any{
				"code": 404, "message": "Broadcast not found",
				"errors": []map[string]string{{"reason": "liveBroadcastNotFound"}},
			}})
		}))
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		err := c.Delete(ctx, testCreds(), "ghost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "liveBroadcastNotFound")
	})
}

func TestClient_FetchChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/channels", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("mine"))
			writeJSON(t, w, map[string]any{"items": []map[string]any{{
				"id":      "chan-1",
				"snippet": map[string]string{"title": "My Channel"},
				"contentDetails": map[string]any{
					"relatedPlaylists": map[string]string{"uploads": "UU-chan-1"},
				},
			}}})
		}))
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		ch, err := c.FetchChannel(ctx, "test-token")
		require.NoError(t, err)
		assert.Equal(t, "chan-1", ch.ID)
		assert.Equal(t, "My Channel", ch.Title)
		assert.Equal(t, "UU-chan-1", ch.UploadsPlaylist)
	})

	t.Run("no channel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"items": []any{}})
		}))
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		_, err := c.FetchChannel(ctx, "test-token")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClient_ListVideos(t *testing.T) {
	ctx := context.Background()
	longDesc := ""
	for i := 0; i < 30; i++ {
		longDesc += "0123456789"
	}

	newStub := func(videosFail bool) *httptest.Server {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /channels", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"items": []map[string]any{{
				"id":      "chan-1",
				"snippet": map[string]string{"title": "My Channel"},
				"contentDetails": map[string]any{
					"relatedPlaylists": map[string]string{"uploads": "UU-chan-1"},
				},
			}}})
		})
		mux.HandleFunc("GET /playlistItems", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "UU-chan-1", r.URL.Query().Get("playlistId"))
			assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
			writeJSON(t, w, map[string]any{"items": []map[string]any{
				{"snippet": map[string]any{
					"title":       "First",
					"description": longDesc,
					"publishedAt": "2026-01-01T00:00:00Z",
					"resourceId":  map[string]string{"videoId": "v1"},
					"thumbnails":  map[string]any{"medium": map[string]string{"url": "https://img/v1.jpg"}},
				}},
				{"snippet": map[string]any{
					"title":       "Second",
					"description": "short",
					"publishedAt": "2026-01-02T00:00:00Z",
					"resourceId":  map[string]string{"videoId": "v2"},
					"thumbnails":  map[string]any{"medium": map[string]string{"url": "https://img/v2.jpg"}},
				}},
			}})
		})
		mux.HandleFunc("GET /videos", func(w http.ResponseWriter, r *http.Request) {
			if videosFail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))
			writeJSON(t, w, map[string]any{"items": []map[string]any{
				{"id": "v1", "contentDetails": map[string]string{"duration": "PT10M"}},
				{"id": "v2", "contentDetails": map[string]string{"duration": "PT3M20S"}},
			}})
		})
		return httptest.NewServer(mux)
	}

	t.Run("lists uploads with durations", func(t *testing.T) {
		srv := newStub(false)
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		videos, err := c.ListVideos(ctx, testCreds())
		require.NoError(t, err)
		require.Len(t, videos, 2)
		assert.Equal(t, "v1", videos[0].ID)
		assert.Equal(t, "PT10M", videos[0].Duration)
		assert.Len(t, videos[0].Description, 203)
		assert.Equal(t, "short", videos[1].Description)
		assert.Equal(t, "PT3M20S", videos[1].Duration)
	})

	t.Run("duration lookup failure degrades gracefully", func(t *testing.T) {
		srv := newStub(true)
		defer srv.Close()
		c := NewClient(srv.URL, srv.Client())

		videos, err := c.ListVideos(ctx, testCreds())
		require.NoError(t, err)
		require.Len(t, videos, 2)
		assert.Empty(t, videos[0].Duration)
	})
}
