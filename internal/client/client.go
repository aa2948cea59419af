// Package client talks to a probe server's property API. Transient
// transport failures are retried with exponential backoff; the two
// protocol failures (unknown path, rejected conversion) surface as
// sentinel errors and are never retried.
// See docs/ARCHITECTURE.md § CLI and Client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"github.com/mesh-intelligence/probe/internal/server"
)

// Protocol errors. These mirror the core's two failure modes.
var (
	ErrUnknownPath  = errors.New("unknown property path")
	ErrNotSupported = errors.New("operation not supported by property")
)

// Client is a property API client for one server.
type Client struct {
	baseURL string
	http    *http.Client

	// maxRetryTime bounds the exponential backoff per operation.
	maxRetryTime time.Duration
}

// New returns a Client for the server at baseURL (e.g.
// "http://localhost:9175").
func New(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 10 * time.Second},
		maxRetryTime: 15 * time.Second,
	}
}

// Get reads the value of the property at path.
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	var value string
	err := c.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/api/properties/"+url.PathEscape(path), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		v, err := decodeValue(resp)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	return value, err
}

// Set writes value to the property at path and returns the stored value
// in its canonical text form.
func (c *Client) Set(ctx context.Context, path, value string) (string, error) {
	body, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return "", err
	}

	var stored string
	err = c.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut,
			c.baseURL+"/api/properties/"+url.PathEscape(path), bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		v, err := decodeValue(resp)
		if err != nil {
			return err
		}
		stored = v
		return nil
	})
	return stored, err
}

// List returns the property tree of the server.
func (c *Client) List(ctx context.Context) ([]server.PropertySummary, error) {
	var summaries []server.PropertySummary
	err := c.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/api/properties", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return statusError(resp)
		}
		return json.NewDecoder(resp.Body).Decode(&summaries)
	})
	return summaries, err
}

// Watch streams samples of the property at path, calling fn for each
// update until ctx is done, the stream breaks, or fn returns an error.
func (c *Client) Watch(ctx context.Context, path string, interval time.Duration, fn func(server.Update) error) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") +
		"/api/watch?path=" + url.QueryEscape(path) +
		"&interval=" + url.QueryEscape(interval.String())

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return statusError(resp)
		}
		return fmt.Errorf("dial watch stream: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when ctx is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var update server.Update
		if err := conn.ReadJSON(&update); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read watch stream: %w", err)
		}
		if err := fn(update); err != nil {
			return err
		}
	}
}

// retry runs op with exponential backoff until it succeeds, returns a
// permanent error, or the backoff budget is spent.
func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxRetryTime
	return backoff.Retry(op, backoff.WithContext(policy, ctx))
}

// decodeValue consumes a value response. Protocol failures come back as
// permanent errors so the retry loop stops immediately.
func decodeValue(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}
	var v server.ValueResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return v.Value, nil
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return backoff.Permanent(ErrUnknownPath)
	case http.StatusUnprocessableEntity:
		return backoff.Permanent(ErrNotSupported)
	case http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return backoff.Permanent(fmt.Errorf("bad request: %s", strings.TrimSpace(string(body))))
	default:
		// 5xx and anything unexpected is worth retrying.
		return fmt.Errorf("server returned %s", resp.Status)
	}
}
