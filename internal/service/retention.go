package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// DefaultRetention is the age threshold beyond which news is purged.
const DefaultRetention = 24 * time.Hour

// RetentionArticleStore is the relational-store surface the sweeper needs.
type RetentionArticleStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionChunkStore is the vector-store surface the sweeper needs.
type RetentionChunkStore interface {
	GetAll(ctx context.Context) ([]*domain.NewsChunk, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// RetentionService purges articles and chunks older than the retention window.
// The two stores are swept independently; a failure on one side still lets the
// other make progress.
type RetentionService struct {
	articles RetentionArticleStore
	chunks   RetentionChunkStore
	window   time.Duration
	now      func() time.Time
}

func NewRetentionService(articles RetentionArticleStore, chunks RetentionChunkStore, window time.Duration) *RetentionService {
	if window <= 0 {
		window = DefaultRetention
	}
	return &RetentionService{
		articles: articles,
		chunks:   chunks,
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the sweep clock. Used by tests.
func (s *RetentionService) WithClock(now func() time.Time) *RetentionService {
	s.now = now
	return s
}

// Sweep deletes relational rows older than the window in one bulk call, then
// lists all chunks, collects the expired ids and deletes them in one batch.
func (s *RetentionService) Sweep(ctx context.Context) error {
	cutoff := s.now().Add(-s.window)

	var firstErr error

	deleted, err := s.articles.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("retention: article sweep failed: %v", err)
		firstErr = fmt.Errorf("article sweep: %w", err)
	} else if deleted > 0 {
		log.Printf("retention: deleted %d articles older than %s", deleted, s.window)
	}

	chunks, err := s.chunks.GetAll(ctx)
	if err != nil {
		log.Printf("retention: chunk listing failed: %v", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("chunk listing: %w", err)
		}
		return firstErr
	}

	var expired []string
	for _, c := range chunks {
		if c.CreatedAt.Before(cutoff) {
			expired = append(expired, c.ID)
		}
	}

	if len(expired) == 0 {
		return firstErr
	}

	removed, err := s.chunks.DeleteByIDs(ctx, expired)
	if err != nil {
		log.Printf("retention: chunk sweep failed: %v", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("chunk sweep: %w", err)
		}
		return firstErr
	}

	log.Printf("retention: deleted %d chunks older than %s", removed, s.window)
	return firstErr
}
