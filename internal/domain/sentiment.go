package domain

// Sentiment is a three-way sentiment label derived from a compound polarity score.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// sentimentThreshold is the compound-score band around zero treated as neutral.
// The comparisons are strict: exactly +/-0.05 is still neutral.
const sentimentThreshold = 0.05

// ClassifySentiment maps a compound polarity score in [-1, 1] to a label.
func ClassifySentiment(compound float64) Sentiment {
	switch {
	case compound > sentimentThreshold:
		return SentimentPositive
	case compound < -sentimentThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// sentimentPriority is the tie-break order for DominantSentiment.
var sentimentPriority = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// DominantSentiment returns the label with the highest tally. Ties are broken
// by fixed priority: Positive, then Neutral, then Negative.
func DominantSentiment(tally map[Sentiment]int) Sentiment {
	dominant := SentimentPositive
	best := -1
	for _, label := range sentimentPriority {
		if tally[label] > best {
			dominant = label
			best = tally[label]
		}
	}
	return dominant
}
