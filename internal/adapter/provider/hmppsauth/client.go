// Package hmppsauth obtains system tokens from HMPPS Auth using the client
// credentials grant. Tokens are cached per username until shortly before
// they expire.
package hmppsauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/use-of-force/internal/config"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// Client requests and caches system tokens.
type Client struct {
	tokenURL     string
	clientID     string
	clientSecret string
	leeway       time.Duration
	httpClient   *http.Client
	now          func() time.Time
	log          *slog.Logger

	mu     sync.Mutex
	tokens map[string]cachedToken
	group  singleflight.Group
}

// NewClient creates a token client from config.HMPPSAuthConfig.
func NewClient(cfg config.HMPPSAuthConfig, logger *slog.Logger) *Client {
	return &Client{
		tokenURL:     strings.TrimRight(cfg.BaseURL, "/") + "/oauth/token",
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		leeway:       cfg.RefreshLeeway,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		now:          time.Now,
		log:          logger.With("adapter", "hmpps_auth"),
		tokens:       make(map[string]cachedToken),
	}
}

// SystemToken returns a client credentials token acting for username.
// An empty username yields a token not tied to any user.
func (c *Client) SystemToken(ctx context.Context, username string) (string, error) {
	if tok, ok := c.cached(username); ok {
		return tok, nil
	}

	v, err, _ := c.group.Do(username, func() (any, error) {
		if tok, ok := c.cached(username); ok {
			return tok, nil
		}
		tok, expiresAt, err := c.fetch(ctx, username)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.tokens[username] = cachedToken{token: tok, expiresAt: expiresAt}
		c.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

func (c *Client) cached(username string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[username]
	if !ok || !c.now().Add(c.leeway).Before(t.expiresAt) {
		return "", false
	}
	return t.token, true
}

func (c *Client) fetch(ctx context.Context, username string) (string, time.Time, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	if username != "" {
		form.Set("username", username)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("hmpps auth: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "token request failed", slog.String("username", username), slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("hmpps auth: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("hmpps auth: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return "", time.Time{}, fmt.Errorf("hmpps auth: %s: %s", errResp.Error, errResp.ErrorDescription)
		}
		return "", time.Time{}, fmt.Errorf("hmpps auth: unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, fmt.Errorf("hmpps auth: decode json: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("hmpps auth: empty access token")
	}

	expiresAt := c.expiry(tr)

	c.log.DebugContext(ctx, "system token issued",
		slog.String("username", username),
		slog.Time("expires_at", expiresAt),
	)

	return tr.AccessToken, expiresAt, nil
}

// expiry reads the exp claim of the token. The signature is not checked:
// the token comes straight from the issuer and is only forwarded upstream.
func (c *Client) expiry(tr tokenResponse) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
}
