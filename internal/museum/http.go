package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// httpClient wraps net/http with the one-bounded-GET contract every museum
// fetch shares: a single request with a fixed timeout and no retry.
type httpClient struct {
	c *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{c: &http.Client{Timeout: timeout}}
}

func (h *httpClient) Timeout() time.Duration { return h.c.Timeout }

// GetJSON issues one GET against baseURL with the given query parameters
// and decodes the JSON body into out. A non-2xx status comes back as a
// *statusError so the failure boundary can report the code.
func (h *httpClient) GetJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	u := baseURL
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", errRequest, err)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{Code: resp.StatusCode, Body: truncateBody(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
