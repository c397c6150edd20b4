// Package alphavantage provides an Alpha Vantage API client with persistent
// caching and a daily request budget. The free tier allows 25 requests per
// day, so every response is cached and stale data is served when the API is
// unavailable (stale data > no data).
package alphavantage

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
)

const (
	baseURL           = "https://www.alphavantage.co/query"
	dailyRequestLimit = 25
)

// ErrRateLimitExceeded is returned when the daily request budget is spent.
type ErrRateLimitExceeded struct{}

func (e ErrRateLimitExceeded) Error() string {
	return fmt.Sprintf("alpha vantage daily request limit (%d) exceeded", dailyRequestLimit)
}

// Client for the Alpha Vantage JSON API.
type Client struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository

	mu           sync.Mutex
	requestCount int
}

// NewClient creates a new Alpha Vantage client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(apiKey string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "alphavantage").Logger(),
		cacheRepo: cacheRepo,
	}
}

// Quote is a GLOBAL_QUOTE response transformed to our format.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Volume           int64   `json:"volume"`
	Change           float64 `json:"change"`
	ChangePercent    string  `json:"change_percent"`
	LatestTradingDay string  `json:"latest_trading_day"`
	DayHigh          float64 `json:"day_high"`
	DayLow           float64 `json:"day_low"`
}

// Overview is an OVERVIEW response transformed to our format.
type Overview struct {
	Name          string   `json:"name"`
	Exchange      string   `json:"exchange"`
	Currency      string   `json:"currency"`
	MarketCap     float64  `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	PBRatio       *float64 `json:"pb_ratio"`
	ROE           *float64 `json:"roe"`
	DividendYield *float64 `json:"dividend_yield"`
}

// checkRateLimit consumes one request from the daily budget.
func (c *Client) checkRateLimit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.requestCount >= dailyRequestLimit {
		return ErrRateLimitExceeded{}
	}
	c.requestCount++
	return nil
}

// GetRemainingRequests returns how many API requests remain in today's budget.
func (c *Client) GetRemainingRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dailyRequestLimit - c.requestCount
}

// ResetDailyCounter resets the request budget. Scheduled to run at midnight.
func (c *Client) ResetDailyCounter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCount = 0
}

// GetQuote fetches a real-time quote with cache.
func (c *Client) GetQuote(symbol string) (*Quote, error) {
	if cached, ok := c.fromCache(clientdata.TableQuote, symbol, false); ok {
		var quote Quote
		if err := json.Unmarshal(cached, &quote); err == nil {
			c.log.Debug().Str("symbol", symbol).Msg("Quote cache hit")
			return &quote, nil
		}
	}

	raw, err := c.request(map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbol,
	})
	if err != nil {
		return c.staleQuote(symbol, err)
	}

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.GlobalQuote) == 0 {
		return c.staleQuote(symbol, fmt.Errorf("empty GLOBAL_QUOTE response for %s", symbol))
	}

	q := payload.GlobalQuote
	quote := &Quote{
		Symbol:           valueOr(q["01. symbol"], symbol),
		Price:            parseFloat(q["05. price"]),
		Volume:           int64(parseFloat(q["06. volume"])),
		Change:           parseFloat(q["09. change"]),
		ChangePercent:    q["10. change percent"],
		LatestTradingDay: q["07. latest trading day"],
		DayHigh:          parseFloat(q["03. high"]),
		DayLow:           parseFloat(q["04. low"]),
	}

	c.store(clientdata.TableQuote, symbol, quote, clientdata.TTLQuote)
	return quote, nil
}

// GetOverview fetches company fundamentals with cache.
func (c *Client) GetOverview(symbol string) (*Overview, error) {
	if cached, ok := c.fromCache(clientdata.TableOverview, symbol, false); ok {
		var overview Overview
		if err := json.Unmarshal(cached, &overview); err == nil {
			c.log.Debug().Str("symbol", symbol).Msg("Overview cache hit")
			return &overview, nil
		}
	}

	raw, err := c.request(map[string]string{
		"function": "OVERVIEW",
		"symbol":   symbol,
	})
	if err != nil {
		return c.staleOverview(symbol, err)
	}

	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil || payload["Symbol"] == "" {
		return c.staleOverview(symbol, fmt.Errorf("empty OVERVIEW response for %s", symbol))
	}

	overview := &Overview{
		Name:          valueOr(payload["Name"], "Unknown"),
		Exchange:      valueOr(payload["Exchange"], "Unknown"),
		Currency:      valueOr(payload["Currency"], "USD"),
		MarketCap:     parseFloat(payload["MarketCapitalization"]),
		PERatio:       parseOptionalFloat(payload["PERatio"]),
		PBRatio:       parseOptionalFloat(payload["PriceToBookRatio"]),
		ROE:           parseOptionalFloat(payload["ReturnOnEquityTTM"]),
		DividendYield: parseOptionalFloat(payload["DividendYield"]),
	}

	c.store(clientdata.TableOverview, symbol, overview, clientdata.TTLOverview)
	return overview, nil
}

// GetDailyCloses fetches the daily close series, oldest first, with cache.
// Uses outputsize=full so 200-day moving averages have enough history.
func (c *Client) GetDailyCloses(symbol string) ([]float64, error) {
	if cached, ok := c.fromCache(clientdata.TableDailySeries, symbol, false); ok {
		var closes []float64
		if err := json.Unmarshal(cached, &closes); err == nil {
			c.log.Debug().Str("symbol", symbol).Int("days", len(closes)).Msg("Daily series cache hit")
			return closes, nil
		}
	}

	raw, err := c.request(map[string]string{
		"function":   "TIME_SERIES_DAILY",
		"symbol":     symbol,
		"outputsize": "full",
	})
	if err != nil {
		return c.staleCloses(symbol, err)
	}

	var payload struct {
		Series map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Series) == 0 {
		return c.staleCloses(symbol, fmt.Errorf("empty TIME_SERIES_DAILY response for %s", symbol))
	}

	// Sort dates ascending so the series runs oldest to newest
	dates := make([]string, 0, len(payload.Series))
	for date := range payload.Series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	closes := make([]float64, 0, len(dates))
	for _, date := range dates {
		closes = append(closes, parseFloat(payload.Series[date]["4. close"]))
	}

	c.store(clientdata.TableDailySeries, symbol, closes, clientdata.TTLDailySeries)
	return closes, nil
}

// request performs a rate-limited GET against the API.
func (c *Client) request(params map[string]string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}
	if err := c.checkRateLimit(); err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("apikey", c.apiKey)

	requestURL := c.baseURL + "?" + query.Encode()
	c.log.Debug().Str("function", params["function"]).Str("symbol", params["symbol"]).Msg("Fetching from Alpha Vantage")

	resp, err := c.client.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return raw, nil
}

// fromCache reads from the persistent cache. With stale=true, expired entries
// are returned as well.
func (c *Client) fromCache(table, key string, stale bool) (json.RawMessage, bool) {
	if c.cacheRepo == nil {
		return nil, false
	}

	var data json.RawMessage
	var err error
	if stale {
		data, err = c.cacheRepo.Get(table, key)
	} else {
		data, err = c.cacheRepo.GetIfFresh(table, key)
	}
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

func (c *Client) store(table, key string, data interface{}, ttl time.Duration) {
	if c.cacheRepo == nil {
		return
	}
	if err := c.cacheRepo.Store(table, key, data, ttl); err != nil {
		c.log.Warn().Err(err).Str("table", table).Str("symbol", key).Msg("Failed to cache response")
	}
}

func (c *Client) staleQuote(symbol string, cause error) (*Quote, error) {
	if cached, ok := c.fromCache(clientdata.TableQuote, symbol, true); ok {
		var quote Quote
		if err := json.Unmarshal(cached, &quote); err == nil {
			c.log.Warn().Err(cause).Str("symbol", symbol).Msg("API failed, using stale cached quote")
			return &quote, nil
		}
	}
	return nil, cause
}

func (c *Client) staleOverview(symbol string, cause error) (*Overview, error) {
	if cached, ok := c.fromCache(clientdata.TableOverview, symbol, true); ok {
		var overview Overview
		if err := json.Unmarshal(cached, &overview); err == nil {
			c.log.Warn().Err(cause).Str("symbol", symbol).Msg("API failed, using stale cached overview")
			return &overview, nil
		}
	}
	return nil, cause
}

func (c *Client) staleCloses(symbol string, cause error) ([]float64, error) {
	if cached, ok := c.fromCache(clientdata.TableDailySeries, symbol, true); ok {
		var closes []float64
		if err := json.Unmarshal(cached, &closes); err == nil {
			c.log.Warn().Err(cause).Str("symbol", symbol).Msg("API failed, using stale cached series")
			return closes, nil
		}
	}
	return nil, cause
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// parseOptionalFloat maps Alpha Vantage's "None"/"-"/empty markers to nil.
func parseOptionalFloat(s string) *float64 {
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
