package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ytlivescheduler/internal/domain"
)

const (
	// DefaultAuthURL is Google's OAuth consent endpoint.
	DefaultAuthURL = "https://accounts.google.com/o/oauth2/auth"
	// DefaultTokenURL is Google's OAuth token endpoint.
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
)

// oauthScopes are the YouTube scopes the scheduler needs.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/youtube.force-ssl",
	"https://www.googleapis.com/auth/youtube",
}

// OAuthClient exchanges and refreshes Google OAuth tokens. It implements
// domain.OAuthExchanger.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	tokenURL     string
	http         *http.Client
	now          func() time.Time
}

// NewOAuthClient builds the exchanger. authURL and tokenURL may be empty for the
// real Google endpoints; tests override them. nowFn may be nil for the system clock.
func NewOAuthClient(clientID, clientSecret, redirectURI, authURL, tokenURL string, httpClient *http.Client, nowFn func() time.Time) *OAuthClient {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		authURL:      authURL,
		tokenURL:     tokenURL,
		http:         httpClient,
		now:          nowFn,
	}
}

// AuthURL builds the consent URL the browser is redirected to.
func (c *OAuthClient) AuthURL(state string) string {
	q := url.Values{
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURI},
		"response_type": {"code"},
		"scope":         {strings.Join(oauthScopes, " ")},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
		"state":         {state},
	}
	return c.authURL + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Exchange trades an authorization code for tokens.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.postToken(ctx, form)
}

// Refresh trades a refresh token for a fresh access token. Google may omit the
// refresh token in the response; callers keep the old one in that case.
func (c *OAuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.postToken(ctx, form)
}

func (c *OAuthClient) postToken(ctx context.Context, form url.Values) (*domain.OAuthTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}
	return &domain.OAuthTokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		Expiry:       c.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
