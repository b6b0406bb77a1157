// Package prison fetches prison and location names from the Prison API and
// the Locations Inside Prison API.
package prison

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/use-of-force/internal/config"
	"github.com/heartmarshall/use-of-force/internal/domain"
)

const defaultRetryDelay = 500 * time.Millisecond

// Prison is an establishment known to the Prison API.
type Prison struct {
	AgencyID    string `json:"agencyId"`
	Description string `json:"description"`
}

type locationResponse struct {
	ID            string `json:"id"`
	LocalName     string `json:"localName"`
	PathHierarchy string `json:"pathHierarchy"`
}

// Client calls the upstream APIs on behalf of a system token.
type Client struct {
	prisonBaseURL   string
	locationBaseURL string
	prisonHTTP      *http.Client
	locationHTTP    *http.Client
	retryDelay      time.Duration
	log             *slog.Logger
}

// NewClient creates a Client from the upstream configuration.
func NewClient(prisonAPI, locationAPI config.UpstreamConfig, logger *slog.Logger) *Client {
	return &Client{
		prisonBaseURL:   strings.TrimRight(prisonAPI.BaseURL, "/"),
		locationBaseURL: strings.TrimRight(locationAPI.BaseURL, "/"),
		prisonHTTP:      &http.Client{Timeout: prisonAPI.Timeout},
		locationHTTP:    &http.Client{Timeout: locationAPI.Timeout},
		retryDelay:      defaultRetryDelay,
		log:             logger.With("adapter", "prison_api"),
	}
}

// ListPrisons returns every active establishment.
func (c *Client) ListPrisons(ctx context.Context, token string) ([]Prison, error) {
	var prisons []Prison
	if err := c.getJSON(ctx, c.prisonHTTP, token, c.prisonBaseURL+"/api/agencies/type/INST?activeOnly=false", "prisons", &prisons); err != nil {
		return nil, err
	}
	return prisons, nil
}

// GetPrisonName returns the description of the prison with the given agency id.
// Returns domain.ErrNotFound if the prison is unknown.
func (c *Client) GetPrisonName(ctx context.Context, token, agencyID string) (string, error) {
	var p Prison
	reqURL := c.prisonBaseURL + "/api/agencies/" + url.PathEscape(agencyID)
	if err := c.getJSON(ctx, c.prisonHTTP, token, reqURL, agencyID, &p); err != nil {
		return "", err
	}
	return p.Description, nil
}

// GetLocationName returns the display name of an incident location.
// Returns domain.ErrNotFound if the location is unknown.
func (c *Client) GetLocationName(ctx context.Context, token, locationID string) (string, error) {
	var loc locationResponse
	reqURL := c.locationBaseURL + "/locations/" + url.PathEscape(locationID) + "?formatLocalName=true"
	if err := c.getJSON(ctx, c.locationHTTP, token, reqURL, locationID, &loc); err != nil {
		return "", err
	}
	if loc.LocalName != "" {
		return loc.LocalName, nil
	}
	return loc.PathHierarchy, nil
}

func (c *Client) getJSON(ctx context.Context, client *http.Client, token, reqURL, subject string, out any) error {
	c.log.DebugContext(ctx, "upstream request", slog.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("prison api: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, client, req, subject)
	if err != nil {
		c.log.ErrorContext(ctx, "upstream request failed", slog.String("subject", subject), slog.String("error", err.Error()))
		return fmt.Errorf("prison api: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("prison api: %s: %w", subject, domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prison api: %s: unexpected status %d", subject, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("prison api: read body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("prison api: decode json: %w", err)
	}

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, client *http.Client, req *http.Request, subject string) (*http.Response, error) {
	resp, err := client.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "upstream retry", slog.String("subject", subject), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return client.Do(req)
}
