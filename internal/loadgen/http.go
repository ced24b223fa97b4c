package loadgen

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
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitProfiles posts the whole corpus in one ingestion batch.
func submitProfiles(ctx context.Context, config *Config, profiles []Profile, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/profiles"

	payload := map[string]any{"profiles": profiles}
	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return fmt.Errorf("profile submission failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read ingest response: %w", err)
	}
	if resp.StatusCode != StatusAccepted {
		return fmt.Errorf("profile submission rejected with status %d: %s", resp.StatusCode, string(body))
	}

	var ack ingestResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("failed to parse ingest response: %w", err)
	}
	stats.ProfilesAccepted = ack.Accepted
	stats.PairsEnqueued = ack.PairsEnqueued
	return nil
}

// fetchRecommendations retrieves recommendations for every profile
// concurrently and returns them keyed by user id.
func fetchRecommendations(ctx context.Context, config *Config, profiles []Profile, stats *Stats) (map[string][]Recommendation, error) {
	client := newHTTPClient(config.Timeout)

	var (
		mu      sync.Mutex
		results = make(map[string][]Recommendation, len(profiles))
		queried int64
		total   int64
	)

	profileChan := make(chan Profile, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range profileChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				recs, err := fetchSingleUser(ctx, client, config, p.ProfileID)
				if err != nil {
					continue
				}
				atomic.AddInt64(&queried, 1)
				atomic.AddInt64(&total, int64(len(recs)))
				mu.Lock()
				results[p.ProfileID] = recs
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(profileChan)
		for _, p := range profiles {
			select {
			case <-ctx.Done():
				return
			case profileChan <- p:
			}
		}
	}()

	wg.Wait()

	stats.UsersQueried = int(atomic.LoadInt64(&queried))
	stats.RecommendationsTotal = int(atomic.LoadInt64(&total))
	return results, nil
}

// fetchSingleUser retrieves one user's recommendations.
func fetchSingleUser(ctx context.Context, client *HTTPClient, config *Config, userID string) ([]Recommendation, error) {
	url := fmt.Sprintf("%s/recommendations/%s?top_n=%d&strategy=%s",
		config.BaseURL, userID, config.TopN, config.Strategy)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch recommendations for %s: %w", userID, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read recommendations for %s: %w", userID, err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("recommendations for %s returned status %d", userID, resp.StatusCode)
	}

	var parsed recommendationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse recommendations for %s: %w", userID, err)
	}
	return parsed.Recommendations, nil
}

// fetchStats retrieves the service stats snapshot.
func fetchStats(ctx context.Context, client *HTTPClient, baseURL string) (statsResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/stats")
	if err != nil {
		return statsResponse{}, fmt.Errorf("fetch stats: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return statsResponse{}, fmt.Errorf("read stats: %w", err)
	}

	var parsed statsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return statsResponse{}, fmt.Errorf("parse stats: %w", err)
	}
	return parsed, nil
}
