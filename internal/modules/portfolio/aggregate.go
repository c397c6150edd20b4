package portfolio

import (
	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// Per-action risk contributions. Sell calls carry the most risk since the
// position should arguably not be held at all.
const (
	riskSell = 8.0
	riskBuy  = 4.0
	riskHold = 6.0

	neutralRisk = 5.0
)

// riskScore computes the value-weighted portfolio risk on a 1-10 scale.
// Holdings without a matching recommendation contribute a neutral 5.0.
func riskScore(holdings []Holding, recommendations []StockRecommendation) float64 {
	if len(holdings) == 0 {
		return neutralRisk
	}

	bySymbol := make(map[string]StockRecommendation, len(recommendations))
	for _, rec := range recommendations {
		bySymbol[rec.Symbol] = rec
	}

	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.CurrentValue
	}
	if totalValue <= 0 {
		return neutralRisk
	}

	weighted := 0.0
	for _, h := range holdings {
		stockRisk := neutralRisk
		if rec, ok := bySymbol[h.Symbol]; ok {
			confidenceRisk := 10 - rec.Confidence

			actionRisk := riskHold
			switch rec.Action {
			case domain.ActionSell:
				actionRisk = riskSell
			case domain.ActionBuy:
				actionRisk = riskBuy
			}

			stockRisk = (confidenceRisk + actionRisk) / 2
		}

		weighted += stockRisk * (h.CurrentValue / totalValue)
	}

	return round1(clamp(weighted, 1.0, 10.0))
}

// diversificationScore rates how spread out the portfolio is on a 1-10
// scale. A single holding is defined as 1.0 regardless of anything else.
func diversificationScore(holdings []Holding) float64 {
	if len(holdings) <= 1 {
		return 1.0
	}

	var base float64
	switch n := len(holdings); {
	case n >= 10:
		base = 9.0
	case n >= 5:
		base = 7.0
	case n >= 3:
		base = 5.0
	default:
		base = 3.0
	}

	totalValue := 0.0
	maxValue := 0.0
	for _, h := range holdings {
		totalValue += h.CurrentValue
		if h.CurrentValue > maxValue {
			maxValue = h.CurrentValue
		}
	}

	penalty := 0.0
	if totalValue > 0 {
		switch share := maxValue / totalValue; {
		case share > 0.5:
			penalty = 3.0
		case share > 0.3:
			penalty = 1.5
		}
	}

	return round1(clamp(base-penalty, 1.0, 10.0))
}

// overallSentiment labels the portfolio by strict majority of
// recommendation actions.
func overallSentiment(recommendations []StockRecommendation) string {
	if len(recommendations) == 0 {
		return "neutral"
	}

	var buys, sells int
	for _, rec := range recommendations {
		switch rec.Action {
		case domain.ActionBuy:
			buys++
		case domain.ActionSell:
			sells++
		}
	}
	holds := len(recommendations) - buys - sells

	switch {
	case buys > sells && buys > holds:
		return "bullish"
	case sells > buys && sells > holds:
		return "bearish"
	default:
		return "neutral"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
