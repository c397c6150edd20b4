// Package metrics computes technical and fundamental indicators per symbol.
package metrics

import (
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/clients/alphavantage"
	"github.com/rsrinivasan18/sarasai/internal/domain"
	"github.com/rsrinivasan18/sarasai/pkg/formulas"
)

// Momentum lookback offsets in trading days.
const (
	lookback1D = 1
	lookback1W = 6
	lookback1M = 29
	lookback3M = 89
)

// HistoryClient is the subset of the Alpha Vantage client used here.
type HistoryClient interface {
	GetDailyCloses(symbol string) ([]float64, error)
	GetOverview(symbol string) (*alphavantage.Overview, error)
}

// Service calculates stock metrics from daily price history.
// When no history is available it falls back to deterministic mock metrics,
// so callers always receive a Metrics value (possibly with absent fields).
type Service struct {
	client HistoryClient // Optional - nil forces the mock fallback
	log    zerolog.Logger
}

// NewService creates a new metrics service.
func NewService(client HistoryClient, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("service", "metrics").Logger(),
	}
}

// GetMetrics returns technical and fundamental metrics for a symbol.
// Never returns an error: a failed or missing data source degrades to the
// seeded mock metrics, and individual fields stay nil when history is too
// short for the indicator.
func (s *Service) GetMetrics(symbol string) domain.Metrics {
	closes := s.fetchCloses(symbol)
	if len(closes) == 0 {
		s.log.Debug().Str("symbol", symbol).Msg("No price history, using mock metrics")
		return MockMetrics(symbol)
	}

	m := domain.Metrics{Symbol: symbol}

	// Technical indicators
	m.RSI = formulas.CalculateRSI(closes, 14)
	m.MovingAvg50 = formulas.CalculateSMA(closes, 50)
	m.MovingAvg200 = formulas.CalculateSMA(closes, 200)
	m.MACD = formulas.CalculateMACD(closes, 12, 26, 9)
	if bands := formulas.CalculateBollingerBands(closes, 20, 2.0); bands != nil {
		m.BollingerUpper = &bands.Upper
		m.BollingerLower = &bands.Lower
	}

	// Momentum
	m.PriceChange1D = formulas.CalculateChangePercent(closes, lookback1D)
	m.PriceChange1W = formulas.CalculateChangePercent(closes, lookback1W)
	m.PriceChange1M = formulas.CalculateChangePercent(closes, lookback1M)
	m.PriceChange3M = formulas.CalculateChangePercent(closes, lookback3M)

	// Fundamentals from the company overview, all optional
	if s.client != nil {
		overview, err := s.client.GetOverview(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Overview fetch failed, fundamentals absent")
		} else if overview != nil {
			m.PERatio = overview.PERatio
			m.PBRatio = overview.PBRatio
			m.ROE = overview.ROE
			m.DividendYield = overview.DividendYield
		}
	}

	return m
}

func (s *Service) fetchCloses(symbol string) []float64 {
	if s.client == nil {
		return nil
	}
	closes, err := s.client.GetDailyCloses(symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Daily series fetch failed")
		return nil
	}
	return closes
}
