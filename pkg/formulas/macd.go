package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateMACD calculates the Moving Average Convergence Divergence line
// (fast EMA minus slow EMA). Returns the current MACD value or nil if
// insufficient data.
func CalculateMACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) *float64 {
	if len(closes) < slowPeriod+signalPeriod {
		return nil
	}

	macd, _, _ := talib.Macd(closes, fastPeriod, slowPeriod, signalPeriod)

	if len(macd) > 0 && !isNaN(macd[len(macd)-1]) {
		result := macd[len(macd)-1]
		return &result
	}

	return nil
}
