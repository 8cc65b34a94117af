package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordsText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestChunkWords(t *testing.T) {
	cfg := DefaultChunkConfig()

	t.Run("empty text yields no chunks", func(t *testing.T) {
		assert.Empty(t, ChunkWords("", cfg))
		assert.Empty(t, ChunkWords("   \n\t ", cfg))
	})

	t.Run("text within one window is returned whole", func(t *testing.T) {
		text := wordsText(200)
		chunks := ChunkWords(text, cfg)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0])
	})

	t.Run("exactly one window is one chunk", func(t *testing.T) {
		text := wordsText(256)
		chunks := ChunkWords(text, cfg)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0])
	})

	t.Run("chunk count is ceil(words/step) for long text", func(t *testing.T) {
		step := cfg.Size - cfg.Overlap
		for _, w := range []int{300, 450, 1000, 2048} {
			chunks := ChunkWords(wordsText(w), cfg)
			want := (w + step - 1) / step
			assert.Len(t, chunks, want, "words=%d", w)
		}
	})

	t.Run("no words dropped and overlap is exactly the declared width", func(t *testing.T) {
		words := strings.Fields(wordsText(600))
		chunks := ChunkWords(strings.Join(words, " "), cfg)
		require.True(t, len(chunks) > 1)

		// First chunk spans the full window.
		first := strings.Fields(chunks[0])
		assert.Equal(t, words[:cfg.Size], first)

		// Each subsequent chunk starts step words after the previous one.
		step := cfg.Size - cfg.Overlap
		for i := 1; i < len(chunks); i++ {
			fields := strings.Fields(chunks[i])
			assert.Equal(t, words[i*step], fields[0], "chunk %d start", i)
		}

		// The final chunk ends with the last word.
		last := strings.Fields(chunks[len(chunks)-1])
		assert.Equal(t, words[len(words)-1], last[len(last)-1])
	})

	t.Run("overlap >= size cannot loop without progress", func(t *testing.T) {
		chunks := ChunkWords(wordsText(10), ChunkConfig{Size: 4, Overlap: 10})
		// Step clamps to 1: windows start at every word index.
		assert.Len(t, chunks, 10)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		text := wordsText(500)
		assert.Equal(t, ChunkWords(text, cfg), ChunkWords(text, cfg))
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		chunks := ChunkWords("a b c", ChunkConfig{})
		require.Len(t, chunks, 1)
		assert.Equal(t, "a b c", chunks[0])
	})
}
