package portfolio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/domain"
	"github.com/rsrinivasan18/sarasai/internal/events"
	"github.com/rsrinivasan18/sarasai/internal/modules/gurus"
	"github.com/rsrinivasan18/sarasai/internal/modules/recommendation"
)

// Signals fetched per symbol when building a recommendation.
const signalLimit = 5

// QuoteProvider supplies current market data per symbol.
type QuoteProvider interface {
	GetQuote(symbol string) (domain.Quote, error)
}

// MetricsProvider supplies technical and fundamental indicators.
type MetricsProvider interface {
	GetMetrics(symbol string) domain.Metrics
}

// NewsProvider supplies scored headlines and their aggregate sentiment.
type NewsProvider interface {
	GetNews(symbol string, limit int) []domain.NewsItem
	OverallSentiment(items []domain.NewsItem) (float64, string)
}

// OpinionProvider supplies analyst opinions.
type OpinionProvider interface {
	GetOpinions(symbol string, limit int) []domain.AnalystOpinion
}

// Service performs full portfolio analysis: valuing holdings, generating a
// recommendation per distinct symbol, and aggregating portfolio scores.
type Service struct {
	quotes    QuoteProvider
	metrics   MetricsProvider
	news      NewsProvider
	opinions  OpinionProvider
	snapshots *SnapshotStore // Optional - nil disables persistence
	bus       *events.Bus    // Optional - nil disables event publishing
	log       zerolog.Logger
	now       func() time.Time
}

// NewService creates a new portfolio service.
func NewService(quotes QuoteProvider, metrics MetricsProvider, news NewsProvider,
	opinions OpinionProvider, snapshots *SnapshotStore, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		quotes:    quotes,
		metrics:   metrics,
		news:      news,
		opinions:  opinions,
		snapshots: snapshots,
		bus:       bus,
		log:       log.With().Str("service", "portfolio").Logger(),
		now:       time.Now,
	}
}

// Analyze values the submitted holdings, recommends each distinct symbol
// and rolls everything up into a report. Malformed lines and failed quote
// lookups are skipped, never aborting the rest of the portfolio.
func (s *Service) Analyze(req AnalyzeRequest) (*Analysis, error) {
	reportID := uuid.New().String()
	s.publish(events.AnalysisStarted, map[string]interface{}{
		"report_id":     reportID,
		"holding_count": len(req.Holdings),
	})

	holdings := s.computeHoldings(req.Holdings)

	recommendations := make([]StockRecommendation, 0, len(holdings))
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if seen[h.Symbol] {
			continue
		}
		seen[h.Symbol] = true

		rec, err := s.RecommendSymbol(h.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("Skipping recommendation")
			continue
		}
		recommendations = append(recommendations, *rec)
	}

	var invested, value float64
	for _, h := range holdings {
		invested += h.TotalInvested
		value += h.CurrentValue
	}
	pnl := value - invested
	pnlPct := 0.0
	if invested > 0 {
		pnlPct = pnl / invested * 100
	}

	analysis := &Analysis{
		ReportID:               reportID,
		TotalInvested:          invested,
		CurrentValue:           value,
		TotalProfitLoss:        pnl,
		TotalProfitLossPercent: round2(pnlPct),
		Holdings:               holdings,
		Recommendations:        recommendations,
		RiskScore:              riskScore(holdings, recommendations),
		DiversificationScore:   diversificationScore(holdings),
		OverallSentiment:       overallSentiment(recommendations),
		Timestamp:              s.now(),
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(analysis); err != nil {
			s.log.Warn().Err(err).Str("report_id", reportID).Msg("Failed to persist analysis snapshot")
		}
	}

	s.publish(events.AnalysisCompleted, map[string]interface{}{
		"report_id":         reportID,
		"holdings":          len(holdings),
		"recommendations":   len(recommendations),
		"overall_sentiment": analysis.OverallSentiment,
	})

	return analysis, nil
}

// Latest returns the most recent persisted analysis, or nil when none exists.
func (s *Service) Latest() (*Analysis, error) {
	if s.snapshots == nil {
		return nil, nil
	}
	return s.snapshots.Latest()
}

func (s *Service) computeHoldings(inputs []HoldingInput) []Holding {
	holdings := make([]Holding, 0, len(inputs))
	for _, input := range inputs {
		symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
		if symbol == "" {
			s.log.Warn().Msg("Skipping holding with empty symbol")
			continue
		}

		quote, err := s.quotes.GetQuote(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping holding, quote unavailable")
			continue
		}

		holding, ok := computeHolding(input, quote)
		if !ok {
			s.log.Warn().
				Str("symbol", symbol).
				Float64("quantity", input.Quantity).
				Float64("avg_price", input.AvgPrice).
				Msg("Skipping malformed holding")
			continue
		}
		holdings = append(holdings, holding)
	}
	return holdings
}

// RecommendSymbol builds the full recommendation for one symbol from all
// available signals. Only a failed quote lookup is an error; every other
// missing signal degrades to an absent input for the engine.
func (s *Service) RecommendSymbol(symbol string) (*StockRecommendation, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	quote, err := s.quotes.GetQuote(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}

	metrics := s.metrics.GetMetrics(symbol)
	if metrics.PERatio == nil {
		metrics.PERatio = quote.PERatio
	}

	recentNews := s.news.GetNews(symbol, signalLimit)
	var sentiment *float64
	sentimentScore, sentimentLabel := s.news.OverallSentiment(recentNews)
	if len(recentNews) > 0 {
		sentiment = &sentimentScore
	}

	analystOpinions := s.opinions.GetOpinions(symbol, signalLimit)
	consensus := gurus.Consensus(analystOpinions)

	result := recommendation.Recommend(metrics, sentiment, consensus)

	technical := recommendation.TechnicalAnalysis(metrics)
	fundamental := recommendation.FundamentalAnalysis(metrics)
	summary := recommendation.ReasoningSummary(result.Action, technical, fundamental,
		sentimentLabel, consensus.Explanation)

	rec := &StockRecommendation{
		Symbol:              symbol,
		Name:                quote.Name,
		CurrentPrice:        quote.CurrentPrice,
		Action:              result.Action,
		Confidence:          result.Confidence,
		ReasoningSummary:    summary,
		TechnicalAnalysis:   technical,
		FundamentalAnalysis: fundamental,
		NewsSentiment: fmt.Sprintf("Overall sentiment: %s (score: %s)",
			sentimentLabel, strconv.FormatFloat(sentimentScore, 'f', -1, 64)),
		GuruConsensus:       consensus.Explanation,
		Metrics:             metrics,
		RecentNews:          recentNews,
		GuruRecommendations: analystOpinions,
		Timestamp:           s.now(),
	}

	s.publish(events.RecommendationGenerated, map[string]interface{}{
		"symbol":     symbol,
		"action":     string(result.Action),
		"confidence": result.Confidence,
	})

	return rec, nil
}

func (s *Service) publish(eventType events.EventType, data map[string]interface{}) {
	if s.bus != nil {
		s.bus.Publish(eventType, data)
	}
}
