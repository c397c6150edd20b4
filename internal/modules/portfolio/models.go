// Package portfolio values user holdings and rolls per-symbol
// recommendations into a portfolio-level report.
package portfolio

import (
	"time"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// HoldingInput is one user-supplied portfolio line.
type HoldingInput struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}

// AnalyzeRequest is the analyze endpoint request body.
type AnalyzeRequest struct {
	Holdings []HoldingInput `json:"holdings"`
}

// Holding is a valued portfolio position. Immutable once computed;
// recomputed fresh on every analysis.
type Holding struct {
	Symbol            string  `json:"symbol" msgpack:"symbol"`
	Name              string  `json:"name" msgpack:"name"`
	Quantity          int64   `json:"quantity" msgpack:"quantity"`
	AvgPurchasePrice  float64 `json:"avg_purchase_price" msgpack:"avg_purchase_price"`
	CurrentPrice      float64 `json:"current_price" msgpack:"current_price"`
	TotalInvested     float64 `json:"total_invested" msgpack:"total_invested"`
	CurrentValue      float64 `json:"current_value" msgpack:"current_value"`
	ProfitLoss        float64 `json:"profit_loss" msgpack:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent" msgpack:"profit_loss_percent"`
	Currency          string  `json:"currency" msgpack:"currency"`
}

// StockRecommendation is the full per-symbol recommendation including the
// signals it was derived from.
type StockRecommendation struct {
	Symbol              string                  `json:"symbol" msgpack:"symbol"`
	Name                string                  `json:"name" msgpack:"name"`
	CurrentPrice        float64                 `json:"current_price" msgpack:"current_price"`
	Action              domain.Action           `json:"recommendation" msgpack:"recommendation"`
	Confidence          float64                 `json:"confidence_score" msgpack:"confidence_score"`
	ReasoningSummary    string                  `json:"reasoning_summary" msgpack:"reasoning_summary"`
	TechnicalAnalysis   string                  `json:"technical_analysis" msgpack:"technical_analysis"`
	FundamentalAnalysis string                  `json:"fundamental_analysis" msgpack:"fundamental_analysis"`
	NewsSentiment       string                  `json:"news_sentiment" msgpack:"news_sentiment"`
	GuruConsensus       string                  `json:"guru_consensus" msgpack:"guru_consensus"`
	Metrics             domain.Metrics          `json:"metrics" msgpack:"metrics"`
	RecentNews          []domain.NewsItem       `json:"recent_news" msgpack:"recent_news"`
	GuruRecommendations []domain.AnalystOpinion `json:"guru_recommendations" msgpack:"guru_recommendations"`
	Timestamp           time.Time               `json:"timestamp" msgpack:"timestamp"`
}

// Analysis is the portfolio-level report.
type Analysis struct {
	ReportID               string                `json:"report_id" msgpack:"report_id"`
	TotalInvested          float64               `json:"total_invested" msgpack:"total_invested"`
	CurrentValue           float64               `json:"current_value" msgpack:"current_value"`
	TotalProfitLoss        float64               `json:"total_profit_loss" msgpack:"total_profit_loss"`
	TotalProfitLossPercent float64               `json:"total_profit_loss_percent" msgpack:"total_profit_loss_percent"`
	Holdings               []Holding             `json:"holdings" msgpack:"holdings"`
	Recommendations        []StockRecommendation `json:"recommendations" msgpack:"recommendations"`
	RiskScore              float64               `json:"portfolio_risk_score" msgpack:"portfolio_risk_score"`
	DiversificationScore   float64               `json:"diversification_score" msgpack:"diversification_score"`
	OverallSentiment       string                `json:"overall_sentiment" msgpack:"overall_sentiment"`
	Timestamp              time.Time             `json:"analysis_timestamp" msgpack:"analysis_timestamp"`
}
