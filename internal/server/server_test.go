package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/sarasai/internal/events"
	"github.com/rsrinivasan18/sarasai/internal/modules/gurus"
	gurushandlers "github.com/rsrinivasan18/sarasai/internal/modules/gurus/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/metrics"
	metricshandlers "github.com/rsrinivasan18/sarasai/internal/modules/metrics/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/news"
	newshandlers "github.com/rsrinivasan18/sarasai/internal/modules/news/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/portfolio"
	portfoliohandlers "github.com/rsrinivasan18/sarasai/internal/modules/portfolio/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/stocks"
	stockshandlers "github.com/rsrinivasan18/sarasai/internal/modules/stocks/handlers"
)

const testCatalogCSV = `symbol,name,current_price,market_cap,pe_ratio,day_high,day_low,volume,currency,exchange
AAPL,Apple Inc.,185.92,2890000000000,28.5,187.40,184.10,58210400,USD,NASDAQ
TSLA,Tesla Inc.,242.84,772000000000,70.8,248.30,239.60,98234500,USD,NASDAQ
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalogPath := filepath.Join(t.TempDir(), "stocks.csv")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogCSV), 0644))

	catalog, err := stocks.LoadCatalog(catalogPath)
	require.NoError(t, err)

	log := zerolog.Nop()
	stocksService := stocks.NewService(catalog, nil, log)
	metricsService := metrics.NewService(nil, log)
	newsService := news.NewService(nil, log)
	gurusService := gurus.NewService(nil, stocksService, log)
	bus := events.NewBus()
	portfolioService := portfolio.NewService(
		stocksService, metricsService, newsService, gurusService, nil, bus, log,
	)

	return New(Config{
		Port:    0,
		Log:     log,
		DevMode: true,
		Modules: []RouteRegistrar{
			stockshandlers.NewHandler(stocksService, log),
			metricshandlers.NewHandler(metricsService, log),
			newshandlers.NewHandler(newsService, log),
			gurushandlers.NewHandler(gurusService, log),
			portfoliohandlers.NewHandler(portfolioService, log),
		},
		System: NewSystemHandlers(log, catalog, nil, nil, "catalog (CSV)"),
		Events: NewEventsHandler(bus, log),
	})
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, []string{"AAPL", "TSLA"}, resp.StocksAvailable)
}

func TestStockEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apple Inc.")

	rec = doRequest(t, srv, http.MethodGet, "/api/stocks/UNKNOWN", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rsi")
}

func TestNewsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/news?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Symbol    string `json:"symbol"`
		NewsCount int    `json:"news_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, 3, resp.NewsCount)
}

func TestGurusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/gurus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "consensus")
}

func TestRecommendationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/TSLA/recommendation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recommendation")
	assert.Contains(t, rec.Body.String(), "confidence_score")

	rec = doRequest(t, srv, http.MethodGet, "/api/stocks/UNKNOWN/recommendation", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortfolioAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"holdings": [
		{"symbol": "AAPL", "quantity": 10, "avg_price": 150.0},
		{"symbol": "TSLA", "quantity": 5, "avg_price": 260.0}
	]}`

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ReportID             string  `json:"report_id"`
		TotalInvested        float64 `json:"total_invested"`
		RiskScore            float64 `json:"portfolio_risk_score"`
		DiversificationScore float64 `json:"diversification_score"`
		OverallSentiment     string  `json:"overall_sentiment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ReportID)
	assert.Equal(t, 2800.0, resp.TotalInvested)
	assert.GreaterOrEqual(t, resp.RiskScore, 1.0)
	assert.LessOrEqual(t, resp.RiskScore, 10.0)
	// AAPL dominates the portfolio value, so concentration drags the score
	// down to the floor.
	assert.Equal(t, 1.0, resp.DiversificationScore)
	assert.Contains(t, []string{"bullish", "bearish", "neutral"}, resp.OverallSentiment)
}

func TestPortfolioAnalyzeRejectsEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", `{"holdings": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestAnalysisWithoutSnapshots(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio/analyses/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemInfoEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/system/info", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SystemInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.AvailableSymbols)
}
