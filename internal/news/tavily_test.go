package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a recency-scoped news query", func(t *testing.T) {
		var got searchRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(searchResponse{Results: []SearchResult{
				{URL: "https://finance.yahoo.com/a", Title: "A", Score: 0.91},
				{URL: "https://www.cnbc.com/b", Title: "B", Score: 0.88},
			}})
		}))
		defer server.Close()

		client := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: server.URL})
		results, err := client.Search(ctx, "NVDA", 7)
		require.NoError(t, err)

		assert.Equal(t, "NVDA stock news today", got.Query)
		assert.Equal(t, "news", got.Topic)
		assert.Equal(t, "advanced", got.SearchDepth)
		assert.Equal(t, 7, got.MaxResults)
		assert.Equal(t, "day", got.TimeRange)
		assert.False(t, got.IncludeAnswer)
		assert.True(t, got.IncludeRawContent)
		assert.ElementsMatch(t, []string{"finance.yahoo.com", "marketwatch.com", "www.cnbc.com"}, got.IncludeDomains)

		require.Len(t, results, 2)
		assert.Equal(t, "https://finance.yahoo.com/a", results[0].URL)
		assert.Equal(t, "A", results[0].Title)
	})

	t.Run("non-positive max results falls back to default", func(t *testing.T) {
		var got searchRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(searchResponse{})
		}))
		defer server.Close()

		client := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: server.URL})
		_, err := client.Search(ctx, "TSLA", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxResults, got.MaxResults)
	})

	t.Run("missing api key fails fast", func(t *testing.T) {
		client := NewClient("")
		_, err := client.Search(ctx, "NVDA", 7)
		assert.ErrorIs(t, err, ErrNoAPIKey)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: server.URL})
		_, err := client.Search(ctx, "NVDA", 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestClient_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the url batch and decodes raw content", func(t *testing.T) {
		var got extractRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/extract", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(extractResponse{Results: []ExtractResult{
				{URL: "https://finance.yahoo.com/a", RawContent: "full article text"},
			}})
		}))
		defer server.Close()

		client := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: server.URL})
		results, err := client.Extract(ctx, []string{"https://finance.yahoo.com/a"})
		require.NoError(t, err)

		assert.Equal(t, []string{"https://finance.yahoo.com/a"}, got.URLs)
		assert.False(t, got.IncludeImages)
		require.Len(t, results, 1)
		assert.Equal(t, "full article text", results[0].RawContent)
	})

	t.Run("empty url batch is a no-op", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: server.URL})
		results, err := client.Extract(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, results)
		assert.False(t, called)
	})

	t.Run("missing api key fails fast", func(t *testing.T) {
		client := NewClient("")
		_, err := client.Extract(ctx, []string{"https://finance.yahoo.com/a"})
		assert.ErrorIs(t, err, ErrNoAPIKey)
	})
}
