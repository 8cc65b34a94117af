package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// ChunkRepository handles persistence of embedded news chunks in the
// stock_news_chunks pgvector table.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

// Add appends chunk records. Inserts are append-only: ids are not upserted, so
// callers must not rely on overwrite semantics.
func (r *ChunkRepository) Add(ctx context.Context, chunks []*domain.NewsChunk) error {
	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := r.db.Exec(ctx,
			`INSERT INTO stock_news_chunks (id, symbol, headline, url, content, embedding, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.Symbol, c.Headline, c.URL, c.Content, pgvector.NewVector(c.Embedding), createdAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// QueryNearest returns up to k chunks closest to the query embedding by cosine
// distance, best first. An empty store yields an empty slice.
func (r *ChunkRepository) QueryNearest(ctx context.Context, embedding []float32, k int) ([]*domain.ChunkMatch, error) {
	if k <= 0 {
		k = 3
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.db.Query(ctx,
		`SELECT id, symbol, headline, url, content, created_at,
		        1.0 / (1.0 + (embedding <=> $1)) AS score
		 FROM stock_news_chunks
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*domain.ChunkMatch, 0, k)
	for rows.Next() {
		var m domain.ChunkMatch
		if err := rows.Scan(&m.ID, &m.Symbol, &m.Headline, &m.URL, &m.Content, &m.CreatedAt, &m.Score); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// GetAll lists every stored chunk without its embedding, for maintenance sweeps.
func (r *ChunkRepository) GetAll(ctx context.Context) ([]*domain.NewsChunk, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, symbol, headline, url, content, created_at FROM stock_news_chunks`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*domain.NewsChunk
	for rows.Next() {
		var c domain.NewsChunk
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Headline, &c.URL, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		chunks = append(chunks, &c)
	}
	return chunks, rows.Err()
}

// DeleteByIDs removes chunks by id in one batch call and returns the number of
// rows removed.
func (r *ChunkRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM stock_news_chunks WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
