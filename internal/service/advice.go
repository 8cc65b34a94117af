package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

const (
	// DefaultAdviceTopK is the retrieval depth used by the advice endpoint.
	DefaultAdviceTopK = 5
	// DefaultTopK is the retrieval depth used elsewhere.
	DefaultTopK = 3

	// NoNewsAdvice is the fixed response when retrieval comes back empty.
	NoNewsAdvice = "No recent stock news available for your query."
	// adviceFallback is returned when the generative provider fails.
	adviceFallback = "Sorry, I couldn't generate advice due to an error."
)

const adviceSystemPrompt = `You are a financial analyst who provides direct and confident stock trading advice.
Your goal is to push the user toward the best decision for their financial benefit, even if they are hesitant.
Avoid soft language. Be assertive, but maintain a slightly professional and conversational tone.

Response format:
- Verdict: Start with a strong "Buy," "Sell," or "Hold."
- Why? Explain in clear, straightforward terms why this is the best choice.
- What you should know: Reference specific details from the news that support your decision.
- Upside & Risks: Briefly outline the advantages and any risks.
- Final Push: Reinforce the decision with a strong closing argument.

Do not include disclaimers or suggest consulting a financial advisor.
Just give them the best advice and make sure they feel confident about it.`

// ChunkSearcher retrieves nearest chunks for a query embedding.
type ChunkSearcher interface {
	QueryNearest(ctx context.Context, embedding []float32, k int) ([]*domain.ChunkMatch, error)
}

// SentimentScorer maps text to a sentiment label.
type SentimentScorer interface {
	Score(text string) domain.Sentiment
}

// AdviceGenerator produces advice text from a system/user prompt pair.
type AdviceGenerator interface {
	GenerateAdvice(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AdviceResult is the outcome of one advice request.
type AdviceResult struct {
	MarketSentiment domain.Sentiment
	FinancialAdvice string
	NoNews          bool
}

// AdviceService answers user queries with retrieved news, aggregate sentiment
// and generated trading advice. Provider failures degrade to fixed fallback
// responses; the caller never sees a raw provider error.
type AdviceService struct {
	embedder  EmbeddingClient
	chunks    ChunkSearcher
	sentiment SentimentScorer
	generator AdviceGenerator
}

func NewAdviceService(embedder EmbeddingClient, chunks ChunkSearcher, sentiment SentimentScorer, generator AdviceGenerator) *AdviceService {
	return &AdviceService{
		embedder:  embedder,
		chunks:    chunks,
		sentiment: sentiment,
		generator: generator,
	}
}

// Advise runs the full query pipeline: embed, retrieve top-k, score each
// retrieved line's sentiment, pick the dominant label and generate advice.
func (s *AdviceService) Advise(ctx context.Context, query string, topK int) (*AdviceResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("advice: query embedding failed: %v", err)
		return &AdviceResult{FinancialAdvice: NoNewsAdvice, NoNews: true}, nil
	}

	matches, err := s.chunks.QueryNearest(ctx, embedding, topK)
	if err != nil {
		log.Printf("advice: retrieval failed: %v", err)
		return &AdviceResult{FinancialAdvice: NoNewsAdvice, NoNews: true}, nil
	}
	if len(matches) == 0 {
		return &AdviceResult{FinancialAdvice: NoNewsAdvice, NoNews: true}, nil
	}

	lines := make([]string, 0, len(matches))
	tally := map[domain.Sentiment]int{}
	for _, m := range matches {
		line := fmt.Sprintf("%s (%s)", m.Headline, m.URL)
		lines = append(lines, line)
		tally[s.sentiment.Score(line)]++
	}

	dominant := domain.DominantSentiment(tally)
	log.Printf("advice: sentiment tally positive=%d neutral=%d negative=%d dominant=%s",
		tally[domain.SentimentPositive], tally[domain.SentimentNeutral], tally[domain.SentimentNegative], dominant)

	newsBlock := strings.Join(lines, "\n")
	userPrompt := fmt.Sprintf("Here's what's going on in the market:\n%s\n\nGiven this information, answer this: %q", newsBlock, query)

	advice, err := s.generator.GenerateAdvice(ctx, adviceSystemPrompt, userPrompt)
	if err != nil {
		log.Printf("advice: generation failed: %v", err)
		advice = adviceFallback
	}

	return &AdviceResult{
		MarketSentiment: dominant,
		FinancialAdvice: advice,
	}, nil
}
