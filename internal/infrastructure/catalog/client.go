package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rooted/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxFetchAttempts = 3

// Client fetches the farm catalog from a remote catalog service
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new catalog service client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
		logger:      logger,
	}
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Rooted/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// FetchFarms downloads and validates the full farm catalog
func (c *Client) FetchFarms(ctx context.Context) ([]domain.Farm, error) {
	reqURL := c.baseURL + "/v1/farms"

	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("catalog request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if err := sleep(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogUnavailable, readErr)
			continue
		}

		// Client errors are not retried
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			c.logger.Error("catalog service rejected request",
				zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
			return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("catalog service error",
				zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if err := sleep(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		var doc CatalogDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}

		farms, err := MapToFarms(doc.Farms)
		if err != nil {
			return nil, err
		}

		c.logger.Info("fetched remote catalog", zap.String("url", reqURL), zap.Int("farms", len(farms)))
		return farms, nil
	}

	c.logger.Error("all catalog fetch attempts failed", zap.String("url", reqURL))
	return nil, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
