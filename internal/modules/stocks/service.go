package stocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/clients/alphavantage"
	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// AlphaVantageClient is the subset of the Alpha Vantage client used here.
type AlphaVantageClient interface {
	GetQuote(symbol string) (*alphavantage.Quote, error)
	GetOverview(symbol string) (*alphavantage.Overview, error)
}

// Service resolves quotes from the CSV catalog with a live API fallback for
// symbols the catalog doesn't know.
type Service struct {
	catalog  *Catalog
	avClient AlphaVantageClient // Optional - nil disables the live fallback
	log      zerolog.Logger
}

// NewService creates a new stock service.
func NewService(catalog *Catalog, avClient AlphaVantageClient, log zerolog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		avClient: avClient,
		log:      log.With().Str("service", "stocks").Logger(),
	}
}

// GetQuote returns current price/name/currency for a symbol.
// Catalog entries win; unknown symbols fall through to Alpha Vantage.
func (s *Service) GetQuote(symbol string) (domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if quote, ok := s.catalog.Get(symbol); ok {
		return quote, nil
	}

	if s.avClient == nil {
		return domain.Quote{}, fmt.Errorf(
			"stock %q not found. Available: %s",
			symbol, strings.Join(s.catalog.Symbols(), ", "),
		)
	}

	avQuote, err := s.avClient.GetQuote(symbol)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("stock %q not found in catalog and live lookup failed: %w", symbol, err)
	}
	if avQuote.Price <= 0 {
		return domain.Quote{}, fmt.Errorf("stock %q not found", symbol)
	}

	quote := domain.Quote{
		Symbol:       symbol,
		Name:         symbol,
		CurrentPrice: avQuote.Price,
		DayHigh:      avQuote.DayHigh,
		DayLow:       avQuote.DayLow,
		Volume:       avQuote.Volume,
		Currency:     "USD",
		Exchange:     "Unknown",
		DataSource:   "alphavantage",
		Timestamp:    time.Now().UTC(),
	}

	// Overview failure is non-fatal: the quote alone is enough for valuation
	if overview, err := s.avClient.GetOverview(symbol); err == nil {
		quote.Name = overview.Name
		quote.Exchange = overview.Exchange
		quote.Currency = overview.Currency
		quote.MarketCap = overview.MarketCap
		quote.PERatio = overview.PERatio
	} else {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Overview lookup failed, serving bare quote")
	}

	return quote, nil
}

// List returns all catalog stocks.
func (s *Service) List() []domain.Quote {
	return s.catalog.List()
}

// AvailableSymbols returns all catalog symbols.
func (s *Service) AvailableSymbols() []string {
	return s.catalog.Symbols()
}

// Count returns the number of catalog stocks.
func (s *Service) Count() int {
	return s.catalog.Count()
}
