package domain

import "time"

// NewsChunk is one embedded slice of an article's text stored in the vector
// store. Every chunk carries its own ID so chunks remain individually
// addressable for deletion; chunks of the same article share the URL.
//
// CreatedAt is written at ingestion time and is what the retention sweep
// compares against the cutoff.
type NewsChunk struct {
	ID        string
	Symbol    string
	Headline  string
	URL       string
	Content   string
	Embedding []float32
	CreatedAt time.Time
}

// ChunkMatch is one nearest-neighbor result for a query embedding. Results are
// ephemeral and never persisted.
type ChunkMatch struct {
	ID        string
	Symbol    string
	Headline  string
	URL       string
	Content   string
	Score     float32
	CreatedAt time.Time
}
