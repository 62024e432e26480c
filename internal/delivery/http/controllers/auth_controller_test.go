package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytlivescheduler/internal/delivery/http/helpers"
	"ytlivescheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	authURL     string
	authURLErr  error
	session     *domain.AuthSession
	callbackErr error
	lastCode    string
}

func (f *fakeAuthService) AuthURL(ctx context.Context) (string, error) {
	if f.authURLErr != nil {
		return "", f.authURLErr
	}
	return f.authURL, nil
}

func (f *fakeAuthService) HandleCallback(ctx context.Context, code string) (*domain.AuthSession, error) {
	f.lastCode = code
	if f.callbackErr != nil {
		return nil, f.callbackErr
	}
	return f.session, nil
}

func TestAuthController_AuthURL(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{authURL: "https://accounts.google.com/o/oauth2/auth?state=x"})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/url", nil)
		rr := httptest.NewRecorder()
		ctrl.AuthURL(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Data AuthURLResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		assert.Contains(t, envelope.Data.AuthURL, "accounts.google.com")
	})

	t.Run("failure", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{authURLErr: errors.New("rng broke")})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/url", nil)
		rr := httptest.NewRecorder()
		ctrl.AuthURL(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestAuthController_AuthCallback(t *testing.T) {
	session := &domain.AuthSession{
		Token: "jwt-1",
		User:  &domain.User{ID: "user-1", ChannelID: "chan-1", ChannelName: "My Channel"},
	}

	tests := []struct {
		name       string
		body       string
		fake       *fakeAuthService
		wantStatus int
	}{
		{name: "success", body: `{"code":"code-1"}`, fake: &fakeAuthService{session: session}, wantStatus: http.StatusOK},
		{name: "missing code", body: `{}`, fake: &fakeAuthService{}, wantStatus: http.StatusBadRequest},
		{name: "invalid json", body: `{`, fake: &fakeAuthService{}, wantStatus: http.StatusBadRequest},
		{name: "exchange failure", body: `{"code":"bad"}`, fake: &fakeAuthService{callbackErr: errors.New("invalid_grant")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.fake)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/callback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.AuthCallback(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "code-1", tt.fake.lastCode)
				require.Nil(t, envelope.Error)
				data, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var got domain.AuthSession
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, "jwt-1", got.Token)
				assert.Equal(t, "chan-1", got.User.ChannelID)
			}
		})
	}
}
