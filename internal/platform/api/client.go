// Package api is the client's only gateway to the remote CRUD API. It owns
// URL construction, JSON framing, bearer-token injection, request
// correlation ids, and the mapping of transport outcomes onto the error
// taxonomy the rest of the client reports from.
package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound reports a 404 from the remote API.
var ErrNotFound = errors.New("resource not found")

// RemoteError is any failed API call: connection error, timeout, or a
// non-2xx response. It is reported as a single generic failure and never
// retried automatically; resubmitting is a user action.
type RemoteError struct {
	Op         string // "POST /patients"
	StatusCode int    // 0 when the request never completed
	RequestID  string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a RemoteError carrying the given HTTP
// status code.
func IsStatus(err error, code int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == code
}

// TokenSource supplies the current session's bearer token, or "" when the
// session is anonymous (login itself) or the server issued no token.
type TokenSource func() string

// Client is the shared HTTP transport. One instance is wired through every
// domain repository; it holds no domain state.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	token   TokenSource
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
		token:   func() string { return "" },
	}
}

// SetTokenSource installs the session token supplier. Called once during
// wiring, before any authenticated request is issued.
func (c *Client) SetTokenSource(ts TokenSource) {
	if ts != nil {
		c.token = ts
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	op := method + " " + path
	requestID := uuid.New().String()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).
			Str("request_id", requestID).
			Str("op", op).
			Dur("duration", time.Since(start)).
			Msg("remote call failed")
		return &RemoteError{Op: op, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("remote call")

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not part of
		// the contract for failures.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, RequestID: requestID,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, RequestID: requestID,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
