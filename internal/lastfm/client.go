// Package lastfm fetches artist tags from Last.fm, used as genres when
// Spotify has none for an artist.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	baseURL   = "https://ws.audioscrobbler.com/2.0/"
	userAgent = "moodtune/1.0"
)

// Last.fm API error codes.
const (
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

// Sentinel errors.
var (
	// ErrMissingAPIKey is returned by NewClient when no key is given.
	ErrMissingAPIKey = errors.New("missing Last.fm API key")

	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// defaultRetryDelays back off 1s, 2s, 4s between rate-limited attempts.
var defaultRetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// Client is a Last.fm API client with caching and rate limiting.
type Client struct {
	apiKey      string
	httpClient  *http.Client
	baseURL     string
	retryDelays []time.Duration

	// In-memory cache keyed by lowercased artist name.
	cache   map[string][]Tag
	cacheMu sync.RWMutex
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryDelays sets the waits between rate-limited attempts.
// The number of delays is the number of retries.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// NewClient creates a new Last.fm API client.
// Returns ErrMissingAPIKey if apiKey is empty.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		retryDelays: defaultRetryDelays,
		cache:       make(map[string][]Tag),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ArtistTags fetches the top tags for an artist, most popular first.
// Results are cached in memory. Returns an empty slice (not nil) if no tags are found.
func (c *Client) ArtistTags(ctx context.Context, artist string) ([]Tag, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(artist))

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		return cached, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{
		"method":      {"artist.getTopTags"},
		"artist":      {artist},
		"autocorrect": {"1"},
		"format":      {"json"},
		"api_key":     {c.apiKey},
	}

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching artist tags: %w", err)
	}

	var resp artistTagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing artist tags response: %w", err)
	}

	tags := resp.TopTags.Tag
	if tags == nil {
		tags = []Tag{}
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = tags
	c.cacheMu.Unlock()

	return tags, nil
}

// doRequest performs an HTTP GET request, retrying on rate limit.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= len(c.retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelays[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	// Last.fm reports failures in the body, sometimes with a 200 status.
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
