package news

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

func newTestService() *Service {
	return NewService(nil, zerolog.Nop())
}

func TestGetNewsReturnsScoredItems(t *testing.T) {
	svc := newTestService()

	items := svc.GetNews("AAPL", 5)
	require.Len(t, items, 5)

	for _, item := range items {
		assert.Contains(t, item.Title, "AAPL")
		assert.NotEmpty(t, item.Source)
		assert.NotEmpty(t, item.SentimentLabel)
		assert.False(t, item.PublishedAt.IsZero())
	}
}

func TestGetNewsRespectsLimit(t *testing.T) {
	svc := newTestService()

	assert.Len(t, svc.GetNews("AAPL", 2), 2)
	// non-positive limit falls back to the default of 5
	assert.Len(t, svc.GetNews("AAPL", 0), 5)
}

func TestOverallSentimentEmpty(t *testing.T) {
	svc := newTestService()

	score, label := svc.OverallSentiment(nil)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "neutral", label)
}

func TestOverallSentimentRecencyWeighting(t *testing.T) {
	svc := newTestService()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// A fresh positive item (weight 23) should dominate a stale negative
	// one (weight 1).
	items := []domain.NewsItem{
		{SentimentScore: 0.5, PublishedAt: now.Add(-1 * time.Hour)},
		{SentimentScore: -0.5, PublishedAt: now.Add(-72 * time.Hour)},
	}

	score, label := svc.OverallSentiment(items)
	// (0.5*23 + -0.5*1) / 24 = 0.458
	assert.Equal(t, 0.458, score)
	assert.Equal(t, "positive", label)
}

func TestOverallSentimentAggregateThresholds(t *testing.T) {
	svc := newTestService()
	now := time.Now()
	svc.now = func() time.Time { return now }

	mild := []domain.NewsItem{{SentimentScore: 0.15, PublishedAt: now}}
	score, label := svc.OverallSentiment(mild)
	assert.Equal(t, 0.15, score)
	// 0.15 is positive per-item but inside the wider aggregate band
	assert.Equal(t, "neutral", label)

	strong := []domain.NewsItem{{SentimentScore: -0.25, PublishedAt: now}}
	_, label = svc.OverallSentiment(strong)
	assert.Equal(t, "negative", label)
}

func TestGetNewsDeterministicPerSymbol(t *testing.T) {
	svc := newTestService()

	first := svc.GetNews("TSLA", 5)
	second := svc.GetNews("TSLA", 5)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].SentimentScore, second[i].SentimentScore)
	}
}
