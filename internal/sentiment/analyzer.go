// Package sentiment scores text with a VADER-style compound polarity model.
package sentiment

import (
	govader "github.com/jonreiter/govader"

	"github.com/marketmind-ai/marketmind/internal/domain"
)

// Analyzer wraps the VADER sentiment intensity analyzer. It is pure and
// deterministic; the same text always yields the same score.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity score in [-1, 1].
func (a *Analyzer) Compound(text string) float64 {
	return a.vader.PolarityScores(text).Compound
}

// Score maps text to a three-way sentiment label.
func (a *Analyzer) Score(text string) domain.Sentiment {
	return domain.ClassifySentiment(a.Compound(text))
}
