package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/marketmind-ai/marketmind/internal/config"
	"github.com/marketmind-ai/marketmind/internal/news"
	"github.com/marketmind-ai/marketmind/internal/openai"
	"github.com/marketmind-ai/marketmind/internal/repository"
	"github.com/marketmind-ai/marketmind/internal/sentiment"
	"github.com/marketmind-ai/marketmind/internal/service"
)

// pipelines bundles the three trigger-agnostic pipelines so they can be run
// from the scheduler, a one-shot command or the HTTP layer alike.
type pipelines struct {
	ingestion *service.IngestionService
	retention *service.RetentionService
	advice    *service.AdviceService
}

func buildPipelines(cfg *config.Config, pool *pgxpool.Pool) *pipelines {
	articleRepo := repository.NewArticleRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)

	// Missing provider keys degrade those clients to always-failing calls;
	// the pipelines log and carry on, per the availability-over-failure policy.
	if !cfg.HasTavily() {
		log.Println("TAVILY_API_KEY not set: news scraping will be degraded")
	}
	if !cfg.HasOpenAI() {
		log.Println("OPENAI_API_KEY not set: embeddings and advice generation will be degraded")
	}

	newsClient := news.NewClientWithConfig(news.Config{
		APIKey:  cfg.TavilyAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	openaiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	analyzer := sentiment.NewAnalyzer()

	ingestion := service.NewIngestionService(
		&newsAdapter{client: newsClient},
		openaiClient,
		articleRepo,
		chunkRepo,
		service.IngestionConfig{
			Symbols:    cfg.Symbols,
			MaxResults: cfg.MaxNewsResults,
		},
	)
	retention := service.NewRetentionService(articleRepo, chunkRepo, cfg.Retention)
	advice := service.NewAdviceService(openaiClient, chunkRepo, analyzer, openaiClient)

	return &pipelines{
		ingestion: ingestion,
		retention: retention,
		advice:    advice,
	}
}

// newsAdapter maps the Tavily client onto the pipeline's provider interface.
type newsAdapter struct {
	client *news.Client
}

func (a *newsAdapter) Search(ctx context.Context, symbol string, maxResults int) ([]service.NewsSearchResult, error) {
	results, err := a.client.Search(ctx, symbol, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]service.NewsSearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, service.NewsSearchResult{URL: r.URL, Title: r.Title})
	}
	return out, nil
}

func (a *newsAdapter) Extract(ctx context.Context, urls []string) ([]service.NewsExtractResult, error) {
	results, err := a.client.Extract(ctx, urls)
	if err != nil {
		return nil, err
	}
	out := make([]service.NewsExtractResult, 0, len(results))
	for _, r := range results {
		out = append(out, service.NewsExtractResult{URL: r.URL, RawContent: r.RawContent})
	}
	return out, nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else {
		log.Printf("migrations: database at version %d", version)
	}

	return nil
}
