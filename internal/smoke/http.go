package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	service "github.com/okian/launchdash/internal/app"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
)

// maxErrorBody bounds how much of an error response is quoted.
const maxErrorBody = 512

// HTTPClient wraps http.Client with the dashboard's base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// getJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, v)
}

// postJSON performs a POST request with a JSON body and decodes a 200 response into v.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, v)
}

func (c *HTTPClient) do(req *http.Request, v any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// launchesResponse mirrors GET /api/launches.
type launchesResponse struct {
	Site     string               `json:"site"`
	Range    types.PayloadRange   `json:"range"`
	Count    int                  `json:"count"`
	Launches []model.LaunchRecord `json:"launches"`
}

func (c *HTTPClient) layout(ctx context.Context) (service.Layout, error) {
	var l service.Layout
	err := c.getJSON(ctx, "/api/layout", nil, &l)
	return l, err
}

func (c *HTTPClient) update(ctx context.Context, req service.UpdateRequest) (service.UpdateResponse, error) {
	var resp service.UpdateResponse
	err := c.postJSON(ctx, "/api/update", req, &resp)
	return resp, err
}

func (c *HTTPClient) launches(ctx context.Context, site string, rng types.PayloadRange) (launchesResponse, error) {
	q := url.Values{}
	q.Set("site", site)
	q.Set("min", strconv.FormatFloat(rng.Lo, 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(rng.Hi, 'f', -1, 64))
	var resp launchesResponse
	err := c.getJSON(ctx, "/api/launches", q, &resp)
	return resp, err
}
