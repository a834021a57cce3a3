package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlaylistURLPrefix is the page URL the endpoint is asked to describe.
const PlaylistURLPrefix = "https://www.youtube.com/playlist?list="

// ErrNoTitle reports a successful response that carried no title.
var ErrNoTitle = errors.New("oembed response has no title")

// Response models the subset of the oEmbed payload vaultindex reads.
type Response struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	Type         string `json:"type"`
}

// Client queries an oEmbed endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates an oEmbed client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("oembed base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup fetches the oEmbed description of a playlist.
func (c *Client) Lookup(ctx context.Context, playlistID string) (*Response, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse oembed url: %w", err)
	}
	params := endpoint.Query()
	params.Set("url", PlaylistURLPrefix+playlistID)
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("oembed returned %d (latency=%v): %s", resp.StatusCode, latency, strings.TrimSpace(string(body)))
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}
	return &payload, nil
}

// ResolveTitle returns the display title of a playlist. A response without
// a title yields ErrNoTitle.
func (c *Client) ResolveTitle(ctx context.Context, playlistID string) (string, error) {
	payload, err := c.Lookup(ctx, playlistID)
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
