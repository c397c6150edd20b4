package portfolio

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
	"github.com/rsrinivasan18/sarasai/internal/domain"
)

func newTestSnapshotStore(t *testing.T) *SnapshotStore {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := clientdata.NewRepository(db)
	require.NoError(t, repo.InitSchema())

	return NewSnapshotStore(repo)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newTestSnapshotStore(t)

	analysis := &Analysis{
		ReportID:             "report-1",
		TotalInvested:        1500,
		CurrentValue:         2000,
		TotalProfitLoss:      500,
		RiskScore:            3.5,
		DiversificationScore: 1.0,
		OverallSentiment:     "bullish",
		Holdings: []Holding{{
			Symbol:        "AAPL",
			Quantity:      10,
			TotalInvested: 1500,
			CurrentValue:  2000,
		}},
		Recommendations: []StockRecommendation{{
			Symbol:     "AAPL",
			Action:     domain.ActionBuy,
			Confidence: 8.0,
		}},
		Timestamp: time.Now().UTC(),
	}

	require.NoError(t, store.Save(analysis))

	latest, err := store.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)

	assert.Equal(t, "report-1", latest.ReportID)
	assert.Equal(t, analysis.Holdings, latest.Holdings)
	assert.Equal(t, analysis.Recommendations, latest.Recommendations)
	assert.Equal(t, "bullish", latest.OverallSentiment)

	byID, err := store.Get("report-1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, latest.ReportID, byID.ReportID)
}

func TestSnapshotLatestEmpty(t *testing.T) {
	store := newTestSnapshotStore(t)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSnapshotLatestTracksNewestSave(t *testing.T) {
	store := newTestSnapshotStore(t)

	require.NoError(t, store.Save(&Analysis{ReportID: "first"}))
	require.NoError(t, store.Save(&Analysis{ReportID: "second"}))

	latest, err := store.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "second", latest.ReportID)
}
