package service

import "strings"

// ChunkConfig controls word-window chunking for news embeddings.
type ChunkConfig struct {
	Size    int
	Overlap int
}

// DefaultChunkConfig provides the standard 256-word window with 50 words of overlap.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:    256,
		Overlap: 50,
	}
}

// ChunkWords splits whitespace-tokenized text into overlapping word windows.
// Window i starts at word index i*(Size-Overlap) and spans Size words; the last
// window may be shorter. Empty text yields no chunks, and text that fits in one
// window is returned whole. The step is clamped to a minimum of 1 so a config
// with Overlap >= Size cannot loop without progress.
func ChunkWords(text string, cfg ChunkConfig) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if cfg.Size <= 0 {
		cfg = DefaultChunkConfig()
	}
	if len(words) <= cfg.Size {
		return []string{strings.Join(words, " ")}
	}

	step := cfg.Size - cfg.Overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]string, 0, (len(words)+step-1)/step)
	for start := 0; start < len(words); start += step {
		end := start + cfg.Size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks
}
