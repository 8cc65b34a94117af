// Package news wraps the Tavily search and extract APIs used to discover and
// pull stock news articles.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Tavily API endpoint.
	DefaultBaseURL = "https://api.tavily.com"
	// DefaultMaxResults bounds how many search hits are requested per symbol.
	DefaultMaxResults = 7
	// DefaultTimeout bounds every provider call.
	DefaultTimeout = 30 * time.Second
)

// ErrNoAPIKey is returned by every call when the client was constructed
// without a key. Callers treat it like any other provider failure.
var ErrNoAPIKey = errors.New("TAVILY_API_KEY not configured")

// includeDomains restricts searches to a financial-news allow list.
var includeDomains = []string{"finance.yahoo.com", "marketwatch.com", "www.cnbc.com"}

// SearchResult is one news search hit.
type SearchResult struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// ExtractResult is the extracted full text of one URL.
type ExtractResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Tavily REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Tavily client with default endpoint and timeout.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a Tavily client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query             string   `json:"query"`
	Topic             string   `json:"topic"`
	SearchDepth       string   `json:"search_depth"`
	MaxResults        int      `json:"max_results"`
	IncludeDomains    []string `json:"include_domains"`
	TimeRange         string   `json:"time_range"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search runs a recency-scoped news search for a ticker symbol.
func (c *Client) Search(ctx context.Context, symbol string, maxResults int) ([]SearchResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	req := searchRequest{
		Query:             fmt.Sprintf("%s stock news today", symbol),
		Topic:             "news",
		SearchDepth:       "advanced",
		MaxResults:        maxResults,
		IncludeDomains:    includeDomains,
		TimeRange:         "day",
		IncludeAnswer:     false,
		IncludeRawContent: true,
	}

	var resp searchResponse
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	return resp.Results, nil
}

type extractRequest struct {
	URLs          []string `json:"urls"`
	IncludeImages bool     `json:"include_images"`
}

type extractResponse struct {
	Results []ExtractResult `json:"results"`
}

// Extract fetches the raw text content for a batch of URLs.
func (c *Client) Extract(ctx context.Context, urls []string) ([]ExtractResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if len(urls) == 0 {
		return nil, nil
	}

	req := extractRequest{URLs: urls, IncludeImages: false}

	var resp extractResponse
	if err := c.post(ctx, "/extract", req, &resp); err != nil {
		return nil, fmt.Errorf("tavily extract: %w", err)
	}

	return resp.Results, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
