package metrics

import (
	"hash/fnv"
	"math/rand"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// MockMetrics generates realistic mock metrics when live data is unavailable.
// The generator is seeded from the symbol so repeated calls for the same
// symbol return identical values. Moving averages and Bollinger bands stay
// absent since they cannot be faked without a price series.
func MockMetrics(symbol string) domain.Metrics {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	m := domain.Metrics{
		Symbol:        symbol,
		RSI:           uniform(rng, 25, 75),
		MACD:          uniform(rng, -2, 2),
		PERatio:       uniform(rng, 12, 35),
		PBRatio:       uniform(rng, 1, 4),
		DebtToEquity:  uniform(rng, 0.2, 2.0),
		ROE:           uniform(rng, 0.05, 0.25),
		PriceChange1D: uniform(rng, -3, 3),
		PriceChange1W: uniform(rng, -8, 8),
		PriceChange1M: uniform(rng, -15, 15),
		PriceChange3M: uniform(rng, -25, 25),
	}

	// Roughly 70% of stocks pay a dividend in the mock universe
	if rng.Float64() > 0.3 {
		m.DividendYield = uniform(rng, 0.01, 0.05)
	}

	return m
}

// symbolSeed derives a stable RNG seed from a symbol.
func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum64() % 1000)
}

func uniform(rng *rand.Rand, min, max float64) *float64 {
	v := min + rng.Float64()*(max-min)
	return &v
}
