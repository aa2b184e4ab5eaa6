package provider

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"crmsearch/internal/domain"
)

const (
	quickSearchPath = "/api/crm/search/quick"
	maxBodyBytes    = 4 << 20
)

// Options configures the HTTP client
type Options struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	PerCategoryLimit int
	Locale           string
	Currency         string
	HTTPClient       *http.Client
}

// Client is the HTTP Search Provider
type Client struct {
	endpoint *url.URL
	token    string
	timeout  time.Duration
	limit    int
	http     *http.Client
	adapter  *Adapter
}

// NewClient validates opts and builds a client
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", opts.BaseURL)
	}
	endpoint := base.JoinPath(quickSearchPath)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		token:    opts.Token,
		timeout:  timeout,
		limit:    opts.PerCategoryLimit,
		http:     httpClient,
		adapter:  NewAdapter(opts.Locale, opts.Currency),
	}, nil
}

// Adapter returns the adapter used to normalize responses
func (c *Client) Adapter() *Adapter {
	return c.adapter
}

// Search issues GET /api/crm/search/quick?q=query
func (c *Client) Search(ctx context.Context, query string) (*domain.ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := *c.endpoint
	params := url.Values{}
	params.Set("q", query)
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %v", ErrUnavailable, requestID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: request %s: status %d", ErrUnauthorized, requestID, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: request %s: status %d", ErrUnavailable, requestID, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: read body: %v", ErrUnavailable, requestID, err)
	}
	set, err := c.adapter.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %v", ErrUnavailable, requestID, err)
	}

	log.Printf("Quick search request %s returned %d items in %s", requestID, set.Len(), time.Since(start))
	return set, nil
}
