// Package news provides stock headline retrieval and sentiment analysis.
package news

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// Aggregate sentiment label thresholds are wider than the per-item ones so a
// portfolio only reads as positive/negative on a clear signal.
const aggregateLabelThreshold = 0.2

// Service fetches recent news for a stock and scores each item.
// Real feed integration is out of scope; items come from a deterministic
// headline corpus per symbol (the shape real feeds would be mapped into),
// cached like any other provider response.
type Service struct {
	cacheRepo *clientdata.Repository // Optional - nil disables caching
	log       zerolog.Logger
	now       func() time.Time // Injectable clock for tests
}

// NewService creates a new news service.
func NewService(cacheRepo *clientdata.Repository, log zerolog.Logger) *Service {
	return &Service{
		cacheRepo: cacheRepo,
		log:       log.With().Str("service", "news").Logger(),
		now:       time.Now,
	}
}

// GetNews returns recent sentiment-scored news for a stock, newest first.
// Failures degrade to an empty list, never an error.
func (s *Service) GetNews(symbol string, limit int) []domain.NewsItem {
	symbol = strings.ToUpper(symbol)
	if limit <= 0 {
		limit = 5
	}

	if s.cacheRepo != nil {
		if data, err := s.cacheRepo.GetIfFresh(clientdata.TableNewsItems, symbol); err == nil && data != nil {
			var items []domain.NewsItem
			if err := json.Unmarshal(data, &items); err == nil {
				return clip(items, limit)
			}
		}
	}

	items := s.generateItems(symbol)

	if s.cacheRepo != nil && len(items) > 0 {
		if err := s.cacheRepo.Store(clientdata.TableNewsItems, symbol, items, clientdata.TTLNews); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache news items")
		}
	}

	return clip(items, limit)
}

// OverallSentiment calculates the aggregate sentiment of a list of news
// items as a recency-weighted mean: weight = max(1, 24 - hours_since_publish)
// so anything published in the last day dominates older coverage.
// An empty list yields (0.0, "neutral").
func (s *Service) OverallSentiment(items []domain.NewsItem) (float64, string) {
	if len(items) == 0 {
		return 0.0, "neutral"
	}

	now := s.now()
	scores := make([]float64, len(items))
	weights := make([]float64, len(items))
	for i, item := range items {
		hoursAgo := now.Sub(item.PublishedAt).Hours()
		scores[i] = item.SentimentScore
		weights[i] = math.Max(1.0, 24.0-hoursAgo)
	}

	avg := stat.Mean(scores, weights)
	avg = round3(avg)

	return avg, sentimentLabel(avg, aggregateLabelThreshold)
}

// generateItems builds the mock headline set for a symbol. Timestamps are
// relative to now so recency weighting stays meaningful.
func (s *Service) generateItems(symbol string) []domain.NewsItem {
	now := s.now()

	articles := []struct {
		title   string
		summary string
		source  string
		age     time.Duration
	}{
		{
			title:   fmt.Sprintf("%s Shows Strong Performance in Latest Quarter", symbol),
			summary: fmt.Sprintf("Recent financial results show %s maintaining steady growth with positive outlook for next quarter.", symbol),
			source:  "Financial Times",
			age:     2 * time.Hour,
		},
		{
			title:   fmt.Sprintf("Analysts Upgrade %s Rating", symbol),
			summary: fmt.Sprintf("Leading analysts have upgraded their rating for %s citing strong fundamentals and market position.", symbol),
			source:  "MarketWatch",
			age:     6 * time.Hour,
		},
		{
			title:   fmt.Sprintf("Market Volatility Impact on %s", symbol),
			summary: fmt.Sprintf("Analysis of how current market conditions are affecting %s and similar stocks in the sector.", symbol),
			source:  "Bloomberg",
			age:     24 * time.Hour,
		},
		{
			title:   fmt.Sprintf("%s Faces Sector Headwinds", symbol),
			summary: fmt.Sprintf("Concerns over margin pressure weigh on %s as the sector digests a weak demand outlook.", symbol),
			source:  "Reuters",
			age:     48 * time.Hour,
		},
		{
			title:   fmt.Sprintf("Institutional Interest in %s Grows", symbol),
			summary: fmt.Sprintf("Fund filings show growing institutional positions in %s over the last quarter.", symbol),
			source:  "Barron's",
			age:     72 * time.Hour,
		},
	}

	items := make([]domain.NewsItem, 0, len(articles))
	for _, a := range articles {
		score, label := AnalyzeSentiment(a.title + " " + a.summary)
		items = append(items, domain.NewsItem{
			Title:          a.title,
			Summary:        a.summary,
			URL:            fmt.Sprintf("https://example.com/news/%s", strings.ToLower(symbol)),
			Source:         a.source,
			PublishedAt:    now.Add(-a.age),
			SentimentScore: score,
			SentimentLabel: label,
		})
	}

	return items
}

func clip(items []domain.NewsItem, limit int) []domain.NewsItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
