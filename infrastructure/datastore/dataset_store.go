package datastore

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// Entry is one ingested dataset held for follow-up analysis calls, together
// with the ingestion diagnostics the UI reports alongside it.
type Entry struct {
	ID          string
	Dataset     *domain.Dataset
	SkippedRows int
	Failures    []string
	CreatedAt   time.Time
}

// DatasetStore keeps ingested datasets in memory under their dataset ID so
// the UI can re-run filters without re-uploading. Entries expire; nothing
// survives a restart. This is a working set, not persistence.
type DatasetStore interface {
	Save(entry *Entry)
	Get(id string) (*Entry, bool)
	Delete(id string)
	Count() int
	DeleteExpired()
}

type Store struct {
	cache *gocache.Cache
}

// NewDatasetStore creates a store whose entries expire after ttl. The cache
// janitor stays off; the scheduler's sweep job drives eviction instead.
func NewDatasetStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 0),
	}
}

func (s *Store) Save(entry *Entry) {
	s.cache.SetDefault(entry.ID, entry)

	logrus.WithFields(logrus.Fields{
		"dataset_id": entry.ID,
		"records":    len(entry.Dataset.Rows),
	}).Info("datastore: dataset stored")
}

func (s *Store) Get(id string) (*Entry, bool) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return value.(*Entry), true
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

func (s *Store) DeleteExpired() {
	s.cache.DeleteExpired()
}
