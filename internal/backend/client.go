package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

// Client talks to the storefront backend over its REST contract. It owns a
// cookie jar so the server-side session cookie set by /login survives across
// calls (check_session depends on it), and routes every request through a
// circuit breaker so a dead backend fails fast instead of piling up requests.
//
// Business rejections (4xx with an error body) are returned as *APIError and
// do not count against the breaker; only transport failures and 5xx do.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a Client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	jar, _ := cookiejar.New(nil)

	settings := gobreaker.Settings{
		Name:    "storefront-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			// 4xx means the backend is alive and answered; only transport
			// errors and 5xx should open the breaker.
			return errors.As(err, &apiErr) && apiErr.Status < 500
		},
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// do performs one JSON round trip and decodes a 2xx body into out (skipped
// when out is nil). Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any, fallbackMsg string) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		var reqBody io.Reader
		if in != nil {
			encoded, err := json.Marshal(in)
			if err != nil {
				return nil, fmt.Errorf("encode request: %w", err)
			}
			reqBody = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, decodeAPIError(resp.StatusCode, data, fallbackMsg)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
