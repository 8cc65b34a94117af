package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// NewsSearchResult is the provider-agnostic shape of one news search hit.
type NewsSearchResult struct {
	URL   string
	Title string
}

// NewsExtractResult is the extracted full text of one article URL.
type NewsExtractResult struct {
	URL        string
	RawContent string
}

// NewsClient defines the search/extract provider interface the pipeline needs.
type NewsClient interface {
	Search(ctx context.Context, symbol string, maxResults int) ([]NewsSearchResult, error)
	Extract(ctx context.Context, urls []string) ([]NewsExtractResult, error)
}

// EmbeddingClient defines the interface for generating embeddings.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ArticleStore persists full article records.
type ArticleStore interface {
	CreateBatch(ctx context.Context, articles []*domain.Article) error
}

// ChunkStore persists embedded chunks.
type ChunkStore interface {
	Add(ctx context.Context, chunks []*domain.NewsChunk) error
}

// IngestionConfig holds the tunables of one ingestion pipeline.
type IngestionConfig struct {
	Symbols    []string
	MaxResults int
	Chunking   ChunkConfig
}

// IngestionService orchestrates fetch, extract, persist, chunk, embed and store
// for the tracked symbol set. Failures are isolated per symbol: one symbol
// going bad never aborts the rest of the run.
type IngestionService struct {
	news       NewsClient
	embedder   EmbeddingClient
	articles   ArticleStore
	chunks     ChunkStore
	symbols    []string
	maxResults int
	chunkCfg   ChunkConfig
	now        func() time.Time
}

func NewIngestionService(news NewsClient, embedder EmbeddingClient, articles ArticleStore, chunks ChunkStore, cfg IngestionConfig) *IngestionService {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 7
	}
	chunkCfg := cfg.Chunking
	if chunkCfg.Size <= 0 {
		chunkCfg = DefaultChunkConfig()
	}
	return &IngestionService{
		news:       news,
		embedder:   embedder,
		articles:   articles,
		chunks:     chunks,
		symbols:    cfg.Symbols,
		maxResults: maxResults,
		chunkCfg:   chunkCfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the ingestion clock. Used by tests.
func (s *IngestionService) WithClock(now func() time.Time) *IngestionService {
	s.now = now
	return s
}

// Run scrapes and stores news for every tracked symbol. Per-symbol errors are
// logged and swallowed; only context cancellation stops the run early.
func (s *IngestionService) Run(ctx context.Context) error {
	for _, symbol := range s.symbols {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.ingestSymbol(ctx, symbol); err != nil {
			log.Printf("ingestion: symbol %s failed: %v", symbol, err)
		}
	}
	return nil
}

func (s *IngestionService) ingestSymbol(ctx context.Context, symbol string) error {
	log.Printf("ingestion: scraping news for %s", symbol)

	results, err := s.news.Search(ctx, symbol, s.maxResults)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		log.Printf("ingestion: no news found for %s", symbol)
		return nil
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}

	extracted, err := s.news.Extract(ctx, urls)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	now := s.now()
	articles := make([]*domain.Article, 0, len(extracted))
	for _, e := range extracted {
		if e.URL == "" || e.RawContent == "" {
			log.Printf("ingestion: skipping malformed extraction for %s", symbol)
			continue
		}
		articles = append(articles, domain.NewArticle(uuid.NewString(), symbol, e.URL, e.RawContent, now))
	}
	if len(articles) == 0 {
		log.Printf("ingestion: nothing extractable for %s", symbol)
		return nil
	}

	// The relational batch and the vector writes are independent stores fed
	// from the same extraction; a failure in one does not block the other, and
	// no cross-store atomicity is attempted. News is disposable and will be
	// re-ingested on the next cycle.
	if err := s.articles.CreateBatch(ctx, articles); err != nil {
		log.Printf("ingestion: failed to store %d articles for %s: %v", len(articles), symbol, err)
	} else {
		log.Printf("ingestion: stored %d articles for %s", len(articles), symbol)
	}

	for _, a := range articles {
		if err := s.embedArticle(ctx, a); err != nil {
			return fmt.Errorf("embedding %s: %w", a.URL, err)
		}
	}

	return nil
}

func (s *IngestionService) embedArticle(ctx context.Context, a *domain.Article) error {
	pieces := ChunkWords(a.RawContent, s.chunkCfg)
	entries := make([]*domain.NewsChunk, 0, len(pieces))

	for _, piece := range pieces {
		embedding, err := s.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			return fmt.Errorf("failed to generate chunk embedding: %w", err)
		}
		entries = append(entries, &domain.NewsChunk{
			ID:        uuid.NewString(),
			Symbol:    a.Symbol,
			Headline:  a.Headline,
			URL:       a.URL,
			Content:   piece,
			Embedding: embedding,
			CreatedAt: a.CreatedAt,
		})
	}

	if err := s.chunks.Add(ctx, entries); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	return nil
}
