package tcgio

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// MaxPageSize is the documented maximum of the catalog API; larger
	// requests are clamped before the call is made.
	MaxPageSize = 250

	maxAttempts    = 5
	connectTimeout = 10 * time.Second
	// Complex queries can take a long time on the remote index; the read
	// budget is deliberately generous.
	requestTimeout = 90 * time.Second
	retryBaseDelay = 5 * time.Second
)

// Client issues paginated search requests against the external catalog
// API. Gateway timeouts, other 5xx responses and network-level failures
// are retried with exponential backoff (base * 2^(attempt-1), capped at
// maxAttempts tries); 4xx responses are returned immediately since a
// malformed query cannot succeed on retry. The client performs no
// persistence.
type Client struct {
	apiKey string
	http   *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return newClient(baseURL, apiKey, retryBaseDelay)
}

func newClient(baseURL, apiKey string, baseDelay time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetTransport(&http.Transport{
			DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
		}).
		SetRetryCount(maxAttempts - 1).
		SetRetryWaitTime(baseDelay).
		SetRetryMaxWaitTime(baseDelay * (1 << (maxAttempts - 1)))

	rc.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true // connection refused, timeout, etc.
		}
		return r.StatusCode() >= http.StatusInternalServerError
	})

	// base * 2^(attempt-1), so 5s, 10s, 20s, 40s with the defaults.
	rc.SetRetryAfter(func(c *resty.Client, r *resty.Response) (time.Duration, error) {
		attempt := r.Request.Attempt
		if attempt < 1 {
			attempt = 1
		}
		return baseDelay * time.Duration(1<<(attempt-1)), nil
	})

	rc.AddRetryHook(func(r *resty.Response, err error) {
		if err != nil {
			log.Printf("[API CLIENT] network error, retrying %d/%d: %v", r.Request.Attempt, maxAttempts, err)
			return
		}
		log.Printf("[API CLIENT] server error %s, retrying %d/%d", r.Status(), r.Request.Attempt, maxAttempts)
	})

	return &Client{apiKey: apiKey, http: rc}
}

// FetchPage returns one page of card records for a serialized search
// query. page is 1-based; pageSize is clamped to MaxPageSize.
func (c *Client) FetchPage(query string, page, pageSize int) (*SearchResponse, error) {
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var result SearchResponse
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"q":        query,
			"page":     strconv.Itoa(page),
			"pageSize": strconv.Itoa(pageSize),
		}).
		SetHeader("X-Api-Key", c.apiKey).
		SetResult(&result).
		Get("/cards")
	if err != nil {
		return nil, fmt.Errorf("catalog request failed (query %q, page %d): %w", query, page, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog request failed (query %q, page %d): %s", query, page, resp.Status())
	}

	return &result, nil
}
