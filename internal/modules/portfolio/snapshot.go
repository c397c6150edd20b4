package portfolio

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
)

// latestSnapshotKey addresses the most recent analysis regardless of ID.
const latestSnapshotKey = "latest"

// SnapshotStore persists finished analyses in cache.db. Reports are
// msgpack-encoded (much smaller than JSON for deep recommendation trees)
// and base64-wrapped to fit the text-based cache rows.
type SnapshotStore struct {
	repo *clientdata.Repository
}

// NewSnapshotStore creates a snapshot store on top of the cache repository.
func NewSnapshotStore(repo *clientdata.Repository) *SnapshotStore {
	return &SnapshotStore{repo: repo}
}

// Save stores the analysis under both its report ID and the latest key.
func (s *SnapshotStore) Save(analysis *Analysis) error {
	packed, err := msgpack.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis snapshot: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(packed)

	if err := s.repo.Store(clientdata.TableSnapshots, analysis.ReportID, encoded, clientdata.TTLSnapshot); err != nil {
		return err
	}
	return s.repo.Store(clientdata.TableSnapshots, latestSnapshotKey, encoded, clientdata.TTLSnapshot)
}

// Latest returns the most recent unexpired analysis, or nil when none exists.
func (s *SnapshotStore) Latest() (*Analysis, error) {
	return s.load(latestSnapshotKey)
}

// Get returns the analysis stored under a report ID, or nil when not found.
func (s *SnapshotStore) Get(reportID string) (*Analysis, error) {
	return s.load(reportID)
}

func (s *SnapshotStore) load(key string) (*Analysis, error) {
	data, err := s.repo.GetIfFresh(clientdata.TableSnapshots, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot wrapper: %w", err)
	}
	packed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}

	var analysis Analysis
	if err := msgpack.Unmarshal(packed, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis snapshot: %w", err)
	}
	return &analysis, nil
}
