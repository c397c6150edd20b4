package formulas

import (
	"github.com/markcheno/go-talib"
)

// BollingerBands represents Bollinger Bands values
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// CalculateBollingerBands calculates Bollinger Bands.
//
// Bollinger Bands Formula:
//
//	Middle Band = N-day SMA
//	Upper Band = Middle + (stdDevMultiplier × std deviation)
//	Lower Band = Middle - (stdDevMultiplier × std deviation)
//
// Returns a BollingerBands struct or nil if insufficient data.
func CalculateBollingerBands(closes []float64, length int, stdDevMultiplier float64) *BollingerBands {
	if len(closes) < length {
		return nil
	}

	// Parameters: inReal, inTimePeriod, inNbDevUp, inNbDevDn, inMAType
	// MAType 0 = SMA (Simple Moving Average)
	upper, middle, lower := talib.BBands(closes, length, stdDevMultiplier, stdDevMultiplier, 0)

	last := len(upper) - 1
	if last < 0 || isNaN(upper[last]) || isNaN(middle[last]) || isNaN(lower[last]) {
		return nil
	}

	return &BollingerBands{
		Upper:  upper[last],
		Middle: middle[last],
		Lower:  lower[last],
	}
}
