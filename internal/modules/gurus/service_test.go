package gurus

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

type stubPrices struct {
	price float64
	err   error
}

func (s stubPrices) GetQuote(symbol string) (domain.Quote, error) {
	if s.err != nil {
		return domain.Quote{}, s.err
	}
	return domain.Quote{Symbol: symbol, CurrentPrice: s.price}, nil
}

func TestGetOpinionsShape(t *testing.T) {
	svc := NewService(nil, stubPrices{price: 200}, zerolog.Nop())

	opinions := svc.GetOpinions("AAPL", 5)
	require.Len(t, opinions, 5)

	for _, op := range opinions {
		assert.NotEmpty(t, op.Source)
		assert.NotEmpty(t, op.AnalystName)
		assert.Contains(t, []domain.Action{domain.ActionBuy, domain.ActionHold, domain.ActionSell}, op.Action)
		assert.Greater(t, op.TargetPrice, 0.0)
		assert.Greater(t, op.Confidence, 0.0)
		assert.LessOrEqual(t, op.Confidence, 10.0)
		assert.NotEmpty(t, op.Reasoning)
		assert.False(t, op.PublishedAt.IsZero())
	}
}

func TestGetOpinionsSortedByConfidence(t *testing.T) {
	svc := NewService(nil, stubPrices{price: 150}, zerolog.Nop())

	opinions := svc.GetOpinions("MSFT", 5)
	for i := 1; i < len(opinions); i++ {
		assert.GreaterOrEqual(t, opinions[i-1].Confidence, opinions[i].Confidence)
	}
}

func TestGetOpinionsDeterministicPerSymbol(t *testing.T) {
	svc := NewService(nil, stubPrices{price: 100}, zerolog.Nop())
	fixed := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	first := svc.GetOpinions("TSLA", 5)
	second := svc.GetOpinions("TSLA", 5)

	assert.Equal(t, first, second)
}

func TestGetOpinionsRespectsLimit(t *testing.T) {
	svc := NewService(nil, stubPrices{price: 100}, zerolog.Nop())

	assert.Len(t, svc.GetOpinions("AAPL", 3), 3)
	// non-positive limit falls back to the default of 5
	assert.Len(t, svc.GetOpinions("AAPL", 0), 5)
}

func TestGetOpinionsFallbackPrice(t *testing.T) {
	svc := NewService(nil, stubPrices{err: errors.New("quote unavailable")}, zerolog.Nop())

	opinions := svc.GetOpinions("UNKNOWN", 5)
	require.Len(t, opinions, 5)
	for _, op := range opinions {
		// targets derive from the 100.0 default reference price
		assert.Greater(t, op.TargetPrice, 50.0)
		assert.Less(t, op.TargetPrice, 150.0)
	}
}
