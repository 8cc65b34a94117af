package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// ArticleRepository handles persistence of scraped articles in the stock_news table.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// CreateBatch inserts a batch of articles inside one transaction. Any failed
// insert, including a duplicate URL, rolls back the whole batch.
func (r *ArticleRepository) CreateBatch(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, a := range articles {
		if err := domain.ValidateArticle(a); err != nil {
			return err
		}
		if err := insertArticle(ctx, tx, a); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertArticle(ctx context.Context, db dbtx, a *domain.Article) error {
	_, err := db.Exec(ctx,
		`INSERT INTO stock_news (id, symbol, headline, url, raw_content, summary, sentiment_score, relevance_score, published_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Symbol, a.Headline, a.URL, a.RawContent, a.Summary, a.SentimentScore, a.RelevanceScore, a.PublishedAt, a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w (%s)", domain.ErrArticleAlreadyExists, a.URL)
		}
		return err
	}
	return nil
}

func (r *ArticleRepository) GetByURL(ctx context.Context, url string) (*domain.Article, error) {
	var a domain.Article
	err := r.pool.QueryRow(ctx,
		`SELECT id, symbol, headline, url, raw_content, summary, sentiment_score, relevance_score, published_at, created_at
		 FROM stock_news WHERE url = $1`,
		url,
	).Scan(&a.ID, &a.Symbol, &a.Headline, &a.URL, &a.RawContent, &a.Summary, &a.SentimentScore, &a.RelevanceScore, &a.PublishedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) ListBySymbol(ctx context.Context, symbol string) ([]*domain.Article, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, headline, url, raw_content, summary, sentiment_score, relevance_score, published_at, created_at
		 FROM stock_news WHERE symbol = $1 ORDER BY created_at DESC`,
		symbol,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Headline, &a.URL, &a.RawContent, &a.Summary, &a.SentimentScore, &a.RelevanceScore, &a.PublishedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

// DeleteOlderThan bulk-deletes articles ingested before the cutoff and returns
// the number of rows removed.
func (r *ArticleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stock_news WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
