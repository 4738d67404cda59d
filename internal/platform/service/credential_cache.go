// Package service provides clients for the external review platform: the
// OAuth credential cache and the review read/write client.
package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

const (
	defaultTokenURL  = "https://oauth2.googleapis.com/token" //nolint:gosec // G101: Public endpoint, not credential
	defaultExpiresIn = 3600

	// expiryMargin is how much remaining validity a cached credential must
	// have to be handed out without a refresh.
	expiryMargin = 60 * time.Second
)

// OAuthConfig carries the refresh-credential triple and token endpoint
// settings for the review platform.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
	Timeout      time.Duration
}

// CredentialCache hands out a currently-valid bearer credential for the
// review platform, refreshing through the OAuth token endpoint when the
// cached value is near expiry.
type CredentialCache interface {
	Acquire(ctx context.Context) (string, error)
}

// tokenResponse is the OAuth token endpoint response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// credentialCache implements CredentialCache with a mutex-guarded cache
// entry. The lock is never held across the refresh call, so concurrent
// acquirers past expiry may refresh redundantly; the exchange is idempotent
// upstream and the last writer wins.
type credentialCache struct {
	config     OAuthConfig
	httpClient *http.Client
	logger     *slog.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time

	now func() time.Time
}

// Acquire returns a bearer credential with more than the expiry margin of
// validity remaining, refreshing it first when needed.
func (c *credentialCache) Acquire(ctx context.Context) (string, error) {
	if c.config.ClientID == "" || c.config.ClientSecret == "" || c.config.RefreshToken == "" {
		return "", apperrors.Wrap(apperrors.ErrConfiguration, "platform oauth credentials are not configured")
	}

	if token, ok := c.cached(); ok {
		return token, nil
	}

	token, expiresIn, err := c.refresh(ctx)
	if err != nil {
		return "", err
	}

	c.store(token, expiresIn)

	return token, nil
}

// cached returns the cached credential when it still has more than the
// expiry margin of validity remaining.
func (c *credentialCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return "", false
	}
	if !c.now().Before(c.expiry.Add(-expiryMargin)) {
		return "", false
	}

	return c.token, true
}

// refresh performs the refresh exchange against the token endpoint.
func (c *credentialCache) refresh(ctx context.Context) (string, int, error) {
	data := url.Values{
		"client_id":     {c.config.ClientID},
		"client_secret": {c.config.ClientSecret},
		"refresh_token": {c.config.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL(), strings.NewReader(data.Encode()))
	if err != nil {
		return "", 0, apperrors.Wrapf(apperrors.ErrUpstreamAuth, "failed to create token refresh request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, apperrors.Wrapf(apperrors.ErrUpstreamAuth, "token refresh failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", 0, apperrors.Wrapf(
			apperrors.ErrUpstreamAuth,
			"token refresh returned status %d: %s",
			resp.StatusCode,
			string(body),
		)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, apperrors.Wrapf(apperrors.ErrUpstreamAuth, "failed to decode token refresh response: %v", err)
	}
	if tokenResp.AccessToken == "" {
		return "", 0, apperrors.Wrap(apperrors.ErrUpstreamAuth, "token refresh response missing access_token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return tokenResp.AccessToken, expiresIn, nil
}

// store replaces the cached credential entry.
func (c *credentialCache) store(token string, expiresIn int) {
	expiry := c.now().Add(time.Duration(expiresIn) * time.Second)

	c.mu.Lock()
	c.token = token
	c.expiry = expiry
	c.mu.Unlock()

	c.logger.Debug("platform credential refreshed",
		slog.Int("expires_in", expiresIn),
	)
}

func (c *credentialCache) tokenURL() string {
	if c.config.TokenURL != "" {
		return c.config.TokenURL
	}
	return defaultTokenURL
}

// NewCredentialCache creates a new credential cache for the given OAuth
// configuration.
func NewCredentialCache(config OAuthConfig, logger *slog.Logger) CredentialCache {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &credentialCache{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}
