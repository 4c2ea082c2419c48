package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do sends body as JSON and decodes a 2xx response into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// availableCoaches lists coach IDs the service would hand out.
func (c *HTTPClient) availableCoaches(ctx context.Context) ([]string, error) {
	var coaches []model.Coach
	status, err := c.do(ctx, http.MethodGet, "/coaches/available", nil, &coaches)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list available coaches: status %d", status)
	}
	ids := make([]string, len(coaches))
	for i, coach := range coaches {
		ids[i] = coach.ID
	}
	return ids, nil
}

// submitDecisions posts decisions concurrently using a worker pool. A
// primary and its secondary for the same athlete may land in either order;
// the service registers the athlete for whichever comes first.
func submitDecisions(ctx context.Context, config *Config, client *HTTPClient, decisions []Decision, stats *Stats) {
	log := logger.Get().Named("submit")
	log.Info(ctx, "submitting decisions",
		logger.Int("decisions", len(decisions)),
		logger.Int("workers", config.Workers),
	)

	var accepted, duplicate, backpressure, failed, submitted int64

	ch := make(chan Decision, config.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range ch {
				if ctx.Err() != nil {
					return
				}
				atomic.AddInt64(&submitted, 1)
				switch submitSingleDecision(ctx, client, d) {
				case resultAccepted:
					atomic.AddInt64(&accepted, 1)
				case resultDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case resultBackpressure:
					atomic.AddInt64(&backpressure, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "decision failed", logger.String("decisionID", d.ID))
					}
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, d := range decisions {
			select {
			case <-ctx.Done():
				return
			case ch <- d:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted)
	stats.Accepted = int(accepted)
	stats.Duplicate = int(duplicate)
	stats.Backpressure = int(backpressure)
	stats.Failed = int(failed)

	log.Info(ctx, "decision submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("backpressure", stats.Backpressure),
		logger.Int("failed", stats.Failed),
	)
}

// submitSingleDecision submits one decision and classifies the answer.
func submitSingleDecision(ctx context.Context, client *HTTPClient, d Decision) string {
	var ack AckResponse
	status, err := client.do(ctx, http.MethodPost, "/requests/decisions", d, &ack)
	if err != nil {
		return resultFailed
	}
	switch status {
	case http.StatusAccepted:
		return resultAccepted
	case http.StatusOK:
		return resultDuplicate
	case http.StatusTooManyRequests:
		return resultBackpressure
	default:
		return resultFailed
	}
}
