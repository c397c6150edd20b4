package clientdata

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.InitSchema())
	return repo
}

type payload struct {
	Value string `json:"value"`
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableQuote, "AAPL", payload{Value: "quote"}, time.Hour))

	data, err := repo.GetIfFresh(TableQuote, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, data)

	var got payload
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "quote", got.Value)
}

func TestGetIfFreshMissingKey(t *testing.T) {
	repo := newTestRepository(t)

	data, err := repo.GetIfFresh(TableQuote, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGetIfFreshExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableQuote, "AAPL", payload{Value: "stale"}, -time.Hour))

	fresh, err := repo.GetIfFresh(TableQuote, "AAPL")
	require.NoError(t, err)
	assert.Nil(t, fresh)

	// stale data stays reachable through Get for fallback reads
	stale, err := repo.Get(TableQuote, "AAPL")
	require.NoError(t, err)
	assert.NotNil(t, stale)
}

func TestStoreUpserts(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableOverview, "AAPL", payload{Value: "v1"}, time.Hour))
	require.NoError(t, repo.Store(TableOverview, "AAPL", payload{Value: "v2"}, time.Hour))

	data, err := repo.GetIfFresh(TableOverview, "AAPL")
	require.NoError(t, err)

	var got payload
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "v2", got.Value)
}

func TestValidateTableRejectsUnknownNames(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Store("bogus_table", "key", payload{}, time.Hour)
	assert.Error(t, err)

	_, err = repo.GetIfFresh("quotes; DROP TABLE", "key")
	assert.Error(t, err)
}

func TestDeleteExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableNewsItems, "FRESH", payload{}, time.Hour))
	require.NoError(t, repo.Store(TableNewsItems, "OLD", payload{}, -time.Hour))

	deleted, err := repo.DeleteExpired(TableNewsItems)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	data, err := repo.GetIfFresh(TableNewsItems, "FRESH")
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableQuote, "OLD", payload{}, -time.Hour))
	require.NoError(t, repo.Store(TableSnapshots, "OLD", payload{}, -time.Hour))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)

	assert.Equal(t, int64(1), results[TableQuote])
	assert.Equal(t, int64(1), results[TableSnapshots])
	assert.Equal(t, int64(0), results[TableNewsItems])
}

func TestCountRows(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableQuote, "A", payload{}, time.Hour))
	require.NoError(t, repo.Store(TableQuote, "B", payload{}, time.Hour))

	counts, err := repo.CountRows()
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts[TableQuote])
	assert.Equal(t, int64(0), counts[TableOverview])
	assert.Len(t, counts, len(AllTables))
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(TableQuote, "AAPL", payload{}, time.Hour))
	require.NoError(t, repo.Delete(TableQuote, "AAPL"))

	data, err := repo.Get(TableQuote, "AAPL")
	require.NoError(t, err)
	assert.Nil(t, data)
}
