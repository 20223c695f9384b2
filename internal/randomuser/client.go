// Package randomuser fetches generated profiles from a randomuser.me-compatible API.
package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Result is one generated profile as returned by the API.
type Result struct {
	Gender string `json:"gender"`
	Name   struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location struct {
		Country string `json:"country"`
		City    string `json:"city"`
	} `json:"location"`
	Picture struct {
		Thumbnail string `json:"thumbnail"`
		Large     string `json:"large"`
	} `json:"picture"`
}

type response struct {
	Results []Result `json:"results"`
	Error   string   `json:"error"`
}

// Fetcher returns n generated profiles.
type Fetcher interface {
	Fetch(ctx context.Context, n int) ([]Result, error)
}

// Client talks to the remote API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Fetcher = (*Client)(nil)

// NewClient returns a client for baseURL (e.g. "https://randomuser.me").
// timeout bounds each request end to end, including reading the body.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch issues a single GET {base}/api/?results={n} and decodes the result list.
func (c *Client) Fetch(ctx context.Context, n int) ([]Result, error) {
	if n < 1 {
		return nil, &FetchError{Op: "request", Err: fmt.Errorf("results must be positive, got %d", n)}
	}
	u := c.baseURL + "/api/?" + url.Values{"results": {strconv.Itoa(n)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "get", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Op:         "get",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &FetchError{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}
	if out.Error != "" {
		return nil, &FetchError{Op: "decode", StatusCode: resp.StatusCode, Err: errors.New(out.Error)}
	}
	return out.Results, nil
}

// FetchError describes a failed call to the remote API.
type FetchError struct {
	Op         string // "request", "get" or "decode"
	StatusCode int    // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("randomuser %s (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("randomuser %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the request was abandoned because a deadline passed.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}
