package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"poolTags/internal/model"
)

const maxErrorBody = 512

// ClientConfig controls the HTTP transport.
type ClientConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client posts the pools query to a subgraph gateway.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client. A zero RequestsPerSecond disables pacing.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{httpClient: httpClient, limiter: limiter}
}

// FetchPools requests one page of pools created after lastTimestamp.
func (c *Client) FetchPools(ctx context.Context, endpoint string, lastTimestamp int64) ([]model.PoolRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &UnknownError{Err: fmt.Errorf("rate limiter wait: %w", err)}
		}
	}

	payload, err := json.Marshal(requestBody{
		Query:     poolsQuery,
		Variables: map[string]any{"lastTimestamp": lastTimestamp},
	})
	if err != nil {
		return nil, &UnknownError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &UnknownError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnknownError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnknownError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	return decodePools(body)
}

func decodePools(body []byte) ([]model.PoolRecord, error) {
	var decoded poolsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &MalformedResponseError{Reason: err.Error()}
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &GraphQLError{Messages: messages}
	}

	if decoded.Data == nil {
		return nil, &MalformedResponseError{Reason: "missing data"}
	}
	if decoded.Data.Pools == nil {
		return nil, &MalformedResponseError{Reason: "missing data.pools"}
	}

	return *decoded.Data.Pools, nil
}

func truncateBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
