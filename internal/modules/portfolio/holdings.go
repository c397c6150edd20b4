package portfolio

import (
	"math"
	"strings"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// computeHolding values a single portfolio line against a fresh quote.
// Quantity must be a positive integer; callers skip lines where ok is false.
func computeHolding(input HoldingInput, quote domain.Quote) (Holding, bool) {
	if input.Quantity <= 0 || input.Quantity != math.Trunc(input.Quantity) {
		return Holding{}, false
	}
	if input.AvgPrice <= 0 {
		return Holding{}, false
	}

	quantity := int64(input.Quantity)
	invested := float64(quantity) * input.AvgPrice
	value := float64(quantity) * quote.CurrentPrice
	pnl := value - invested

	pnlPct := 0.0
	if invested > 0 {
		pnlPct = pnl / invested * 100
	}

	return Holding{
		Symbol:            strings.ToUpper(strings.TrimSpace(input.Symbol)),
		Name:              quote.Name,
		Quantity:          quantity,
		AvgPurchasePrice:  input.AvgPrice,
		CurrentPrice:      quote.CurrentPrice,
		TotalInvested:     invested,
		CurrentValue:      value,
		ProfitLoss:        pnl,
		ProfitLossPercent: round2(pnlPct),
		Currency:          quote.Currency,
	}, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
