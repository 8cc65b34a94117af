//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketmind-ai/marketmind/internal/domain"
	"github.com/marketmind-ai/marketmind/internal/testutil"
)

func setupPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	container := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	pool, err := pgxpool.New(ctx, container.ConnectionString())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../migrations/000001_create_stock_news.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

func newArticle(symbol, url string, createdAt time.Time) *domain.Article {
	return domain.NewArticle(uuid.NewString(), symbol, url, "raw article content for "+url, createdAt)
}

func TestArticleRepository_Integration(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(ctx, t)
	repo := NewArticleRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("create batch and read back", func(t *testing.T) {
		a := newArticle("NVDA", "https://example.com/read-back", now)
		require.NoError(t, repo.CreateBatch(ctx, []*domain.Article{a}))

		got, err := repo.GetByURL(ctx, a.URL)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Symbol, got.Symbol)
		assert.Equal(t, a.Headline, got.Headline)
		assert.Equal(t, a.RawContent, got.RawContent)
		assert.Nil(t, got.SentimentScore)
	})

	t.Run("duplicate url rolls back the whole batch", func(t *testing.T) {
		existing := newArticle("NVDA", "https://example.com/dup", now)
		require.NoError(t, repo.CreateBatch(ctx, []*domain.Article{existing}))

		fresh := newArticle("NVDA", "https://example.com/fresh", now)
		dup := newArticle("NVDA", "https://example.com/dup", now)

		err := repo.CreateBatch(ctx, []*domain.Article{fresh, dup})
		assert.ErrorIs(t, err, domain.ErrArticleAlreadyExists)

		// The fresh article from the failed batch must not exist.
		_, err = repo.GetByURL(ctx, fresh.URL)
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})

	t.Run("get by unknown url", func(t *testing.T) {
		_, err := repo.GetByURL(ctx, "https://example.com/nope")
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})

	t.Run("list by symbol newest first", func(t *testing.T) {
		older := newArticle("GOOG", "https://example.com/goog-old", now.Add(-2*time.Hour))
		newer := newArticle("GOOG", "https://example.com/goog-new", now.Add(-time.Hour))
		require.NoError(t, repo.CreateBatch(ctx, []*domain.Article{older, newer}))

		articles, err := repo.ListBySymbol(ctx, "GOOG")
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, newer.URL, articles[0].URL)
		assert.Equal(t, older.URL, articles[1].URL)
	})

	t.Run("delete older than cutoff", func(t *testing.T) {
		expired := newArticle("TSLA", "https://example.com/tsla-old", now.Add(-25*time.Hour))
		fresh := newArticle("TSLA", "https://example.com/tsla-new", now.Add(-time.Hour))
		require.NoError(t, repo.CreateBatch(ctx, []*domain.Article{expired, fresh}))

		deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = repo.GetByURL(ctx, expired.URL)
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)

		_, err = repo.GetByURL(ctx, fresh.URL)
		assert.NoError(t, err)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})
}
