package gurus

import (
	"fmt"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// Consensus reduces a set of analyst opinions into a single weighted view.
// Each opinion contributes its confidence as weight; the action with the
// largest normalized weight wins, with ties broken in BUY, SELL, HOLD order.
// Strength is the winning normalized weight scaled to 0-10.
func Consensus(opinions []domain.AnalystOpinion) domain.Consensus {
	if len(opinions) == 0 {
		return domain.Consensus{
			Action:      domain.ActionHold,
			Confidence:  5.0,
			Explanation: "No analyst recommendations available.",
		}
	}

	weights := map[domain.Action]float64{}
	total := 0.0
	for _, op := range opinions {
		weights[op.Action] += op.Confidence
		total += op.Confidence
	}

	if total > 0 {
		for action := range weights {
			weights[action] /= total
		}
	}

	winner := domain.ActionHold
	best := -1.0
	for _, action := range []domain.Action{domain.ActionBuy, domain.ActionSell, domain.ActionHold} {
		if weights[action] > best {
			best = weights[action]
			winner = action
		}
	}

	explanation := fmt.Sprintf(
		"Analyst consensus: %.1f%% Buy, %.1f%% Hold, %.1f%% Sell. Weighted consensus: %s (strength: %.1f)",
		weights[domain.ActionBuy]*100,
		weights[domain.ActionHold]*100,
		weights[domain.ActionSell]*100,
		winner.Upper(),
		best,
	)

	return domain.Consensus{
		Action:      winner,
		Confidence:  round1(best * 10),
		Explanation: explanation,
	}
}
