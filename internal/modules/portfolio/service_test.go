package portfolio

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/sarasai/internal/domain"
	"github.com/rsrinivasan18/sarasai/internal/events"
)

type fakeQuotes struct {
	quotes map[string]domain.Quote
}

func (f fakeQuotes) GetQuote(symbol string) (domain.Quote, error) {
	quote, ok := f.quotes[symbol]
	if !ok {
		return domain.Quote{}, errors.New("stock not found")
	}
	return quote, nil
}

type fakeMetrics struct {
	metrics map[string]domain.Metrics
}

func (f fakeMetrics) GetMetrics(symbol string) domain.Metrics {
	return f.metrics[symbol]
}

type fakeNews struct {
	items []domain.NewsItem
	score float64
	label string
}

func (f fakeNews) GetNews(symbol string, limit int) []domain.NewsItem { return f.items }

func (f fakeNews) OverallSentiment(items []domain.NewsItem) (float64, string) {
	return f.score, f.label
}

type fakeOpinions struct {
	opinions []domain.AnalystOpinion
}

func (f fakeOpinions) GetOpinions(symbol string, limit int) []domain.AnalystOpinion {
	return f.opinions
}

func fp(v float64) *float64 { return &v }

func newTestService(quotes fakeQuotes, metrics fakeMetrics, news fakeNews, opinions fakeOpinions, bus *events.Bus) *Service {
	return NewService(quotes, metrics, news, opinions, nil, bus, zerolog.Nop())
}

func TestAnalyzeSkipsMalformedAndUnknownHoldings(t *testing.T) {
	quotes := fakeQuotes{quotes: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 200, Currency: "USD"},
	}}
	svc := newTestService(quotes, fakeMetrics{}, fakeNews{label: "neutral"}, fakeOpinions{}, nil)

	analysis, err := svc.Analyze(AnalyzeRequest{Holdings: []HoldingInput{
		{Symbol: "AAPL", Quantity: 10, AvgPrice: 150},
		{Symbol: "AAPL", Quantity: -3, AvgPrice: 150},  // malformed
		{Symbol: "UNKNOWN", Quantity: 5, AvgPrice: 50}, // quote lookup fails
		{Symbol: "", Quantity: 5, AvgPrice: 50},        // empty symbol
	}})
	require.NoError(t, err)

	require.Len(t, analysis.Holdings, 1)
	assert.Equal(t, 1500.0, analysis.TotalInvested)
	assert.Equal(t, 2000.0, analysis.CurrentValue)
	assert.Equal(t, 500.0, analysis.TotalProfitLoss)
	assert.Equal(t, 33.33, analysis.TotalProfitLossPercent)
	assert.NotEmpty(t, analysis.ReportID)
	assert.Equal(t, 1.0, analysis.DiversificationScore)
}

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	svc := newTestService(fakeQuotes{}, fakeMetrics{}, fakeNews{label: "neutral"}, fakeOpinions{}, nil)

	analysis, err := svc.Analyze(AnalyzeRequest{Holdings: []HoldingInput{
		{Symbol: "UNKNOWN", Quantity: 5, AvgPrice: 50},
	}})
	require.NoError(t, err)

	assert.Empty(t, analysis.Holdings)
	assert.Equal(t, 0.0, analysis.TotalInvested)
	assert.Equal(t, 0.0, analysis.TotalProfitLossPercent)
	assert.Equal(t, 5.0, analysis.RiskScore)
	assert.Equal(t, "neutral", analysis.OverallSentiment)
}

func TestAnalyzeDeduplicatesSymbols(t *testing.T) {
	quotes := fakeQuotes{quotes: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 200},
	}}
	svc := newTestService(quotes, fakeMetrics{}, fakeNews{label: "neutral"}, fakeOpinions{}, nil)

	analysis, err := svc.Analyze(AnalyzeRequest{Holdings: []HoldingInput{
		{Symbol: "AAPL", Quantity: 10, AvgPrice: 150},
		{Symbol: "aapl", Quantity: 5, AvgPrice: 180},
	}})
	require.NoError(t, err)

	assert.Len(t, analysis.Holdings, 2)
	assert.Len(t, analysis.Recommendations, 1)
}

func TestRecommendSymbolNoSignals(t *testing.T) {
	quotes := fakeQuotes{quotes: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 200},
	}}
	svc := newTestService(quotes, fakeMetrics{}, fakeNews{label: "neutral"}, fakeOpinions{}, nil)

	rec, err := svc.RecommendSymbol("AAPL")
	require.NoError(t, err)

	// no metrics, no news, no opinions other than the empty-consensus HOLD
	assert.Equal(t, domain.ActionHold, rec.Action)
	assert.Equal(t, "Limited technical data available.", rec.TechnicalAnalysis)
	assert.Equal(t, "Limited fundamental data available.", rec.FundamentalAnalysis)
	assert.Contains(t, rec.GuruConsensus, "No analyst recommendations available.")
}

func TestRecommendSymbolUsesSignals(t *testing.T) {
	quotes := fakeQuotes{quotes: map[string]domain.Quote{
		"TSLA": {Symbol: "TSLA", Name: "Tesla Inc.", CurrentPrice: 240},
	}}
	metrics := fakeMetrics{metrics: map[string]domain.Metrics{
		"TSLA": {Symbol: "TSLA", RSI: fp(25)},
	}}
	news := fakeNews{
		items: []domain.NewsItem{{Title: "Tesla surges", SentimentScore: 0.5}},
		score: 0.5,
		label: "positive",
	}
	svc := newTestService(quotes, metrics, news, fakeOpinions{}, nil)

	rec, err := svc.RecommendSymbol("tsla")
	require.NoError(t, err)

	// oversold RSI (buy 2.0) + very positive news (buy 2.0) dominate
	assert.Equal(t, "TSLA", rec.Symbol)
	assert.Equal(t, domain.ActionBuy, rec.Action)
	assert.Contains(t, rec.NewsSentiment, "positive")
	assert.Contains(t, rec.ReasoningSummary, "Recommendation: BUY.")
}

func TestRecommendSymbolUnknown(t *testing.T) {
	svc := newTestService(fakeQuotes{}, fakeMetrics{}, fakeNews{}, fakeOpinions{}, nil)

	_, err := svc.RecommendSymbol("NOPE")
	assert.Error(t, err)
}

func TestAnalyzePublishesEvents(t *testing.T) {
	bus := events.NewBus()
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	quotes := fakeQuotes{quotes: map[string]domain.Quote{
		"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 200},
	}}
	svc := newTestService(quotes, fakeMetrics{}, fakeNews{label: "neutral"}, fakeOpinions{}, bus)

	_, err := svc.Analyze(AnalyzeRequest{Holdings: []HoldingInput{
		{Symbol: "AAPL", Quantity: 1, AvgPrice: 100},
	}})
	require.NoError(t, err)

	var types []events.EventType
	for len(ch) > 0 {
		types = append(types, (<-ch).Type)
	}
	assert.Equal(t, []events.EventType{
		events.AnalysisStarted,
		events.RecommendationGenerated,
		events.AnalysisCompleted,
	}, types)
}
