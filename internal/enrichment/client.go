// Package enrichment fetches exercise suggestions for the detail view.
// The fetch is optional: every failure path degrades to an unavailable
// placeholder and never blocks or fails the caller.
package enrichment

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"

	"github.com/fitcrm/fitcrm/internal/config"
	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
)

// Client fetches exercise batches from the suggestion provider.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *events.Logger

	batchLimit int
	pickCount  int
	truncateAt int

	// Retry configuration
	maxRetries int
	retryDelay time.Duration

	// intn is swappable for deterministic picks in tests.
	intn func(n int) int
}

// NewClient creates an exercise suggestion client.
func NewClient(cfg *config.EnrichmentConfig, logger *events.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			NextProtos: []string{"h2", "http/1.1"},
		},
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		logger.WithError(err).Warn("Failed to configure HTTP/2")
	}

	return &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		logger:     logger.WithField("component", "enrichment_client"),
		batchLimit: cfg.BatchLimit,
		pickCount:  cfg.PickCount,
		truncateAt: cfg.TruncateAt,
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Second,
		intn:       rand.IntN,
	}
}

// exerciseResponse mirrors the provider's paged payload.
type exerciseResponse struct {
	Results []models.Exercise `json:"results"`
}

// FetchBatch requests one batch of exercises. English items only, sized by
// the configured batch limit.
func (c *Client) FetchBatch(ctx context.Context) ([]models.Exercise, error) {
	ctx = events.WithRequestID(ctx, uuid.NewString())
	logger := c.logger.WithField("request_id", events.GetRequestID(ctx))

	url := fmt.Sprintf("%s/exercise/?language=2&limit=%d", c.baseURL, c.batchLimit)
	logger.WithField("url", url).Debug("Fetching exercise batch")

	var body []byte
	err := c.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		if c.isRetryable(resp.StatusCode) {
			return fmt.Errorf("server error %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			return &models.EnrichmentError{
				Reason: fmt.Sprintf("HTTP %d", resp.StatusCode),
			}
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var parsed exerciseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &models.EnrichmentError{Reason: "malformed response", Err: err}
	}

	logger.WithField("count", len(parsed.Results)).Debug("Fetched exercise batch")
	return parsed.Results, nil
}

// retry executes a function with exponential backoff.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(map[string]interface{}{
				"attempt": attempt,
				"delay":   delay,
			}).Debug("Retrying fetch")

			select {
			case <-time.After(delay):
				delay *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		var enrichErr *models.EnrichmentError
		if errors.As(err, &enrichErr) {
			// Terminal provider answer, retrying will not change it
			return err
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) isRetryable(status int) bool {
	return status == http.StatusTooManyRequests ||
		(status >= 500 && status < 600)
}
