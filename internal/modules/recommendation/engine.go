// Package recommendation contains the composite scoring engine that turns
// technical metrics, news sentiment and analyst consensus into a single
// buy/hold/sell call with a confidence score.
//
// The engine is pure: it takes value inputs and returns a Result, with no
// I/O. Absent inputs (nil pointers) skip their rules entirely rather than
// contributing a neutral vote.
package recommendation

import (
	"math"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// Result is the outcome of scoring a single symbol.
type Result struct {
	Action     domain.Action `json:"action"`
	Confidence float64       `json:"confidence"` // 0-10, one decimal
}

// Recommend scores a symbol from its metrics, aggregate news sentiment and
// analyst consensus. sentiment is nil when no news items were available;
// consensus.Action may be empty for the same reason. If every input is
// absent the result is HOLD with confidence 5.0.
func Recommend(m domain.Metrics, sentiment *float64, consensus domain.Consensus) Result {
	var buy, hold, sell float64

	// RSI: oversold favors buying, overbought favors selling.
	if m.RSI != nil {
		switch {
		case *m.RSI < 30:
			buy += 2.0
		case *m.RSI > 70:
			sell += 1.5
		default:
			hold += 1.0
		}
	}

	// Golden cross / death cross.
	if m.MovingAvg50 != nil && m.MovingAvg200 != nil {
		if *m.MovingAvg50 > *m.MovingAvg200 {
			buy += 1.5
		} else {
			sell += 1.0
		}
	}

	// One-month momentum.
	if m.PriceChange1M != nil {
		switch {
		case *m.PriceChange1M > 10:
			buy += 1.0
		case *m.PriceChange1M < -10:
			sell += 1.0
		default:
			hold += 0.5
		}
	}

	// News sentiment, when any news existed.
	if sentiment != nil {
		s := *sentiment
		switch {
		case s > 0.3:
			buy += 2.0
		case s > 0.1:
			buy += 1.0
		case s < -0.3:
			sell += 2.0
		case s < -0.1:
			sell += 1.0
		default:
			hold += 0.5
		}
	}

	// Analyst consensus, weighted by its own confidence.
	if consensus.Action != "" {
		weight := consensus.Confidence / 10.0
		switch consensus.Action {
		case domain.ActionBuy:
			buy += 3.0 * weight
		case domain.ActionSell:
			sell += 3.0 * weight
		default:
			hold += 2.0 * weight
		}
	}

	// Valuation.
	if m.PERatio != nil {
		if *m.PERatio < 15 {
			buy += 1.0
		} else if *m.PERatio > 30 {
			sell += 0.5
		}
	}

	total := buy + hold + sell
	if total == 0 {
		return Result{Action: domain.ActionHold, Confidence: 5.0}
	}

	max := buy
	action := domain.ActionBuy
	if sell > max {
		max = sell
		action = domain.ActionSell
	}
	if hold > max {
		max = hold
		action = domain.ActionHold
	}

	confidence := math.Min(10.0, max/total*10)
	return Result{Action: action, Confidence: math.Round(confidence*10) / 10}
}
