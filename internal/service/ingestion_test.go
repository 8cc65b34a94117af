package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// MockNewsClient is a mock implementation of NewsClient
type MockNewsClient struct {
	mock.Mock
}

func (m *MockNewsClient) Search(ctx context.Context, symbol string, maxResults int) ([]NewsSearchResult, error) {
	args := m.Called(ctx, symbol, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]NewsSearchResult), args.Error(1)
}

func (m *MockNewsClient) Extract(ctx context.Context, urls []string) ([]NewsExtractResult, error) {
	args := m.Called(ctx, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]NewsExtractResult), args.Error(1)
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockArticleStore is a mock implementation of ArticleStore
type MockArticleStore struct {
	mock.Mock
}

func (m *MockArticleStore) CreateBatch(ctx context.Context, articles []*domain.Article) error {
	args := m.Called(ctx, articles)
	return args.Error(0)
}

// MockChunkStore is a mock implementation of ChunkStore
type MockChunkStore struct {
	mock.Mock
}

func (m *MockChunkStore) Add(ctx context.Context, chunks []*domain.NewsChunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func newTestIngestion(news *MockNewsClient, embedder *MockEmbeddingClient, articles *MockArticleStore, chunks *MockChunkStore, symbols ...string) *IngestionService {
	if len(symbols) == 0 {
		symbols = []string{"NVDA"}
	}
	svc := NewIngestionService(news, embedder, articles, chunks, IngestionConfig{
		Symbols:    symbols,
		MaxResults: 7,
	})
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return svc.WithClock(func() time.Time { return fixed })
}

func TestIngestionService_Run(t *testing.T) {
	ctx := context.Background()
	embedding := []float32{0.1, 0.2, 0.3}

	t.Run("stores articles and chunks for each extracted result", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{
			{URL: "https://example.com/a", Title: "A"},
			{URL: "https://example.com/b", Title: "B"},
		}, nil)
		news.On("Extract", ctx, []string{"https://example.com/a", "https://example.com/b"}).Return([]NewsExtractResult{
			{URL: "https://example.com/a", RawContent: "nvidia posts record quarterly earnings"},
			{URL: "https://example.com/b", RawContent: "analysts raise nvidia price targets"},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(embedding, nil)

		var stored []*domain.Article
		articles.On("CreateBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).([]*domain.Article)
		}).Return(nil)
		chunks.On("Add", ctx, mock.Anything).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		require.Len(t, stored, 2)
		assert.Equal(t, "NVDA", stored[0].Symbol)
		assert.Equal(t, "https://example.com/a", stored[0].URL)
		assert.NotEqual(t, stored[0].ID, stored[1].ID)

		// One chunk batch per article.
		chunks.AssertNumberOfCalls(t, "Add", 2)
	})

	t.Run("chunks carry ingestion timestamp and per-chunk ids", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{{URL: "https://example.com/a"}}, nil)
		news.On("Extract", ctx, mock.Anything).Return([]NewsExtractResult{
			{URL: "https://example.com/a", RawContent: wordsText(600)},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(embedding, nil)
		articles.On("CreateBatch", ctx, mock.Anything).Return(nil)

		var added []*domain.NewsChunk
		chunks.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
			added = args.Get(1).([]*domain.NewsChunk)
		}).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		require.True(t, len(added) >= 2)
		seen := map[string]bool{}
		for _, c := range added {
			assert.False(t, c.CreatedAt.IsZero())
			assert.False(t, seen[c.ID], "chunk ids must be unique")
			seen[c.ID] = true
			assert.Equal(t, "https://example.com/a", c.URL)
			assert.Equal(t, embedding, c.Embedding)
		}
	})

	t.Run("empty search result skips symbol without error", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{}, nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		news.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		articles.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("malformed extraction is skipped, the rest is kept", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{
			{URL: "https://example.com/a"},
			{URL: "https://example.com/b"},
		}, nil)
		news.On("Extract", ctx, mock.Anything).Return([]NewsExtractResult{
			{URL: "https://example.com/a", RawContent: ""},
			{URL: "https://example.com/b", RawContent: "solid content"},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(embedding, nil)

		var stored []*domain.Article
		articles.On("CreateBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).([]*domain.Article)
		}).Return(nil)
		chunks.On("Add", ctx, mock.Anything).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		require.Len(t, stored, 1)
		assert.Equal(t, "https://example.com/b", stored[0].URL)
	})

	t.Run("batch insert failure does not block vector writes", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{{URL: "https://example.com/a"}}, nil)
		news.On("Extract", ctx, mock.Anything).Return([]NewsExtractResult{
			{URL: "https://example.com/a", RawContent: "content"},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(embedding, nil)
		articles.On("CreateBatch", ctx, mock.Anything).Return(domain.ErrArticleAlreadyExists)
		chunks.On("Add", ctx, mock.Anything).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		chunks.AssertNumberOfCalls(t, "Add", 1)
	})

	t.Run("one failing symbol does not abort the others", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return(nil, errors.New("provider down"))
		news.On("Search", ctx, "TSLA", 7).Return([]NewsSearchResult{{URL: "https://example.com/t"}}, nil)
		news.On("Extract", ctx, []string{"https://example.com/t"}).Return([]NewsExtractResult{
			{URL: "https://example.com/t", RawContent: "tesla delivery numbers"},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(embedding, nil)
		articles.On("CreateBatch", ctx, mock.Anything).Return(nil)
		chunks.On("Add", ctx, mock.Anything).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks, "NVDA", "TSLA")
		require.NoError(t, svc.Run(ctx))

		articles.AssertNumberOfCalls(t, "CreateBatch", 1)
	})

	t.Run("embedding failure isolates the symbol", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		news.On("Search", ctx, "NVDA", 7).Return([]NewsSearchResult{{URL: "https://example.com/a"}}, nil)
		news.On("Extract", ctx, mock.Anything).Return([]NewsExtractResult{
			{URL: "https://example.com/a", RawContent: "content"},
		}, nil)
		embedder.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(nil, errors.New("quota exceeded"))
		articles.On("CreateBatch", ctx, mock.Anything).Return(nil)

		svc := newTestIngestion(news, embedder, articles, chunks)
		require.NoError(t, svc.Run(ctx))

		chunks.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		news := new(MockNewsClient)
		embedder := new(MockEmbeddingClient)
		articles := new(MockArticleStore)
		chunks := new(MockChunkStore)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		svc := newTestIngestion(news, embedder, articles, chunks)
		assert.ErrorIs(t, svc.Run(cancelled), context.Canceled)
		news.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}
