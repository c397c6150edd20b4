package news

import (
	"math"
	"strings"
)

// Polarity lexicon for headline scoring. Weights are in [-1, 1].
// This replaces the original TextBlob dependency with a compact word list
// tuned for financial headlines - plenty for categorical labels.
var polarityLexicon = map[string]float64{
	// Positive
	"strong": 0.6, "growth": 0.5, "gain": 0.5, "gains": 0.5, "surge": 0.7,
	"upgrade": 0.6, "upgraded": 0.6, "beat": 0.5, "beats": 0.5, "record": 0.4,
	"positive": 0.5, "bullish": 0.7, "outperform": 0.6, "profit": 0.4,
	"rally": 0.6, "steady": 0.3, "attractive": 0.5, "opportunity": 0.4,
	"momentum": 0.3, "dividend": 0.2, "buy": 0.4, "soar": 0.8, "soars": 0.8,
	"upside": 0.5, "recovery": 0.4, "expands": 0.4, "wins": 0.5,

	// Negative
	"weak": -0.5, "loss": -0.5, "losses": -0.5, "drop": -0.5, "drops": -0.5,
	"downgrade": -0.6, "downgraded": -0.6, "miss": -0.5, "misses": -0.5,
	"negative": -0.5, "bearish": -0.7, "underperform": -0.6, "decline": -0.5,
	"plunge": -0.8, "plunges": -0.8, "concern": -0.4, "concerns": -0.4,
	"risk": -0.3, "risks": -0.3, "volatility": -0.3, "lawsuit": -0.6,
	"sell": -0.4, "warning": -0.5, "cuts": -0.5, "headwinds": -0.5,
	"overvaluation": -0.5, "fraud": -0.9, "caution": -0.3,
}

// AnalyzeSentiment scores a piece of text, returning a polarity in [-1, 1]
// and a categorical label. Thresholds: > 0.1 positive, < -0.1 negative,
// else neutral.
func AnalyzeSentiment(text string) (float64, string) {
	tokens := tokenize(text)

	var total float64
	var matched int
	for _, token := range tokens {
		if weight, ok := polarityLexicon[token]; ok {
			total += weight
			matched++
		}
	}

	score := 0.0
	if matched > 0 {
		score = total / float64(matched)
	}
	score = math.Max(-1.0, math.Min(1.0, score))
	score = round3(score)

	return score, sentimentLabel(score, 0.1)
}

// sentimentLabel maps a score to positive/neutral/negative using a symmetric
// threshold.
func sentimentLabel(score, threshold float64) string {
	switch {
	case score > threshold:
		return "positive"
	case score < -threshold:
		return "negative"
	default:
		return "neutral"
	}
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' {
			return r
		}
		return ' '
	}, text)

	return strings.Fields(strings.ToLower(cleaned))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
