// Package domain contains the shared value objects passed between modules.
// Types here are plain data carriers with no infrastructure dependencies.
package domain

import (
	"strings"
	"time"
)

// Action is a recommendation action.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionHold Action = "hold"
	ActionSell Action = "sell"
)

// Upper returns the action in upper case for display.
func (a Action) Upper() string {
	return strings.ToUpper(string(a))
}

// Quote holds current market data for a single symbol.
type Quote struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	CurrentPrice float64   `json:"current_price"`
	MarketCap    float64   `json:"market_cap"`
	PERatio      *float64  `json:"pe_ratio"`
	DayHigh      float64   `json:"day_high"`
	DayLow       float64   `json:"day_low"`
	Volume       int64     `json:"volume"`
	Currency     string    `json:"currency"`
	Exchange     string    `json:"exchange"`
	DataSource   string    `json:"data_source"`
	Timestamp    time.Time `json:"timestamp"`
}

// Metrics holds technical and fundamental indicators for a symbol.
// Every field is independently optional: nil means the underlying history or
// provider data was insufficient, and scoring must skip the field entirely.
type Metrics struct {
	Symbol         string   `json:"symbol"`
	RSI            *float64 `json:"rsi"`
	MovingAvg50    *float64 `json:"moving_avg_50"`
	MovingAvg200   *float64 `json:"moving_avg_200"`
	BollingerUpper *float64 `json:"bollinger_upper"`
	BollingerLower *float64 `json:"bollinger_lower"`
	MACD           *float64 `json:"macd"`
	PERatio        *float64 `json:"pe_ratio"`
	PBRatio        *float64 `json:"pb_ratio"`
	DebtToEquity   *float64 `json:"debt_to_equity"`
	ROE            *float64 `json:"roe"`
	DividendYield  *float64 `json:"dividend_yield"`
	PriceChange1D  *float64 `json:"price_change_1d"`
	PriceChange1W  *float64 `json:"price_change_1w"`
	PriceChange1M  *float64 `json:"price_change_1m"`
	PriceChange3M  *float64 `json:"price_change_3m"`
}

// NewsItem is a single sentiment-scored headline.
type NewsItem struct {
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label"`
}

// AnalystOpinion is a single analyst recommendation for a symbol.
type AnalystOpinion struct {
	Source      string    `json:"source"`
	AnalystName string    `json:"analyst_name"`
	Action      Action    `json:"recommendation"`
	TargetPrice float64   `json:"target_price"`
	Confidence  float64   `json:"confidence_score"` // 0-10
	Reasoning   string    `json:"reasoning"`
	PublishedAt time.Time `json:"date_published"`
}

// Consensus is the confidence-weighted reduction of a set of analyst opinions.
type Consensus struct {
	Action      Action  `json:"action"`
	Confidence  float64 `json:"confidence"` // 0-10
	Explanation string  `json:"explanation"`
}
