package domain

import (
	"fmt"
	"time"
)

const (
	// HeadlineMaxChars is the number of leading characters of raw content used as the headline.
	HeadlineMaxChars = 150
	// SummaryMaxChars is the number of leading characters of raw content used as the summary.
	SummaryMaxChars = 400
)

// Article represents one scraped news article persisted in the relational store.
// Rows are immutable after ingestion and are bulk-deleted once they age past the
// retention window.
type Article struct {
	ID             string
	Symbol         string
	Headline       string
	URL            string
	RawContent     string
	Summary        string
	SentimentScore *float64
	RelevanceScore *float64
	PublishedAt    *time.Time
	CreatedAt      time.Time
}

// NewArticle builds an Article from extracted content. Headline and summary are
// derived by truncating the raw content; sentiment and relevance are left unset
// at ingestion time.
func NewArticle(id, symbol, url, rawContent string, createdAt time.Time) *Article {
	return &Article{
		ID:         id,
		Symbol:     symbol,
		Headline:   Truncate(rawContent, HeadlineMaxChars),
		URL:        url,
		RawContent: rawContent,
		Summary:    Truncate(rawContent, SummaryMaxChars),
		CreatedAt:  createdAt,
	}
}

// ValidateArticle validates an Article instance before persistence.
func ValidateArticle(a *Article) error {
	if a == nil {
		return fmt.Errorf("article cannot be nil")
	}

	if a.ID == "" {
		return fmt.Errorf("%w: article ID", ErrMissingRequiredField)
	}

	if a.Symbol == "" {
		return fmt.Errorf("%w: article Symbol", ErrMissingRequiredField)
	}

	if a.URL == "" {
		return fmt.Errorf("%w: article URL", ErrMissingRequiredField)
	}

	if a.RawContent == "" {
		return fmt.Errorf("%w: article RawContent", ErrMissingRequiredField)
	}

	return nil
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
