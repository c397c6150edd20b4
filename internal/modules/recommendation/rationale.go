package recommendation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// TechnicalAnalysis builds a human-readable summary of the technical
// indicators that fed the score.
func TechnicalAnalysis(m domain.Metrics) string {
	var parts []string

	if m.RSI != nil {
		rsi := formatFloat(*m.RSI)
		switch {
		case *m.RSI < 30:
			parts = append(parts, fmt.Sprintf("RSI (%s) indicates oversold conditions - potential buying opportunity.", rsi))
		case *m.RSI > 70:
			parts = append(parts, fmt.Sprintf("RSI (%s) shows overbought levels - caution advised.", rsi))
		default:
			parts = append(parts, fmt.Sprintf("RSI (%s) is in neutral territory.", rsi))
		}
	}

	if m.MovingAvg50 != nil && m.MovingAvg200 != nil {
		if *m.MovingAvg50 > *m.MovingAvg200 {
			parts = append(parts, "50-day MA above 200-day MA indicates bullish trend.")
		} else {
			parts = append(parts, "50-day MA below 200-day MA suggests bearish trend.")
		}
	}

	if m.PriceChange1M != nil {
		if *m.PriceChange1M > 5 {
			parts = append(parts, fmt.Sprintf("Strong 1-month momentum (+%s%%).", formatFloat(*m.PriceChange1M)))
		} else if *m.PriceChange1M < -5 {
			parts = append(parts, fmt.Sprintf("Negative 1-month momentum (%s%%).", formatFloat(*m.PriceChange1M)))
		}
	}

	if len(parts) == 0 {
		return "Limited technical data available."
	}
	return strings.Join(parts, " ")
}

// FundamentalAnalysis builds a human-readable summary of valuation and
// balance-sheet signals.
func FundamentalAnalysis(m domain.Metrics) string {
	var parts []string

	if m.PERatio != nil {
		pe := formatFloat(*m.PERatio)
		switch {
		case *m.PERatio < 15:
			parts = append(parts, fmt.Sprintf("P/E ratio (%s) suggests undervaluation.", pe))
		case *m.PERatio > 25:
			parts = append(parts, fmt.Sprintf("P/E ratio (%s) indicates premium valuation.", pe))
		default:
			parts = append(parts, fmt.Sprintf("P/E ratio (%s) is reasonable.", pe))
		}
	}

	if m.DividendYield != nil && *m.DividendYield > 0.02 {
		parts = append(parts, fmt.Sprintf("Dividend yield of %.1f%% provides income.", *m.DividendYield*100))
	}

	if m.DebtToEquity != nil {
		if *m.DebtToEquity > 1.0 {
			parts = append(parts, "High debt-to-equity ratio raises financial risk concerns.")
		} else {
			parts = append(parts, "Manageable debt levels.")
		}
	}

	if len(parts) == 0 {
		return "Limited fundamental data available."
	}
	return strings.Join(parts, " ")
}

// ReasoningSummary composes the overall explanation shown with the call.
func ReasoningSummary(action domain.Action, technical, fundamental, sentimentLabel, guruExplanation string) string {
	var b strings.Builder
	b.WriteString("Recommendation: " + action.Upper() + ". ")
	b.WriteString("Technical indicators " + strings.ToLower(technical) + " ")
	b.WriteString("Fundamentals show " + strings.ToLower(fundamental) + " ")
	b.WriteString("News sentiment is " + sentimentLabel + ". ")
	b.WriteString("Analyst consensus: " + guruExplanation)
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
