package storage

import (
	"context"
	"sort"
	"sync"

	"meridian-hq/meridian/pkg/audit"
)

// MemoryStorage is an in-memory implementation of audit.Storage.
// It is intended for tests and short-lived CLI tooling; records are lost
// when the process exits.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*audit.Record
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists a record.
func (s *MemoryStorage) Store(ctx context.Context, record *audit.Record) error {
	if err := ctx.Err(); err != nil {
		return audit.NewStorageError("memory", "store", err)
	}

	// Copy so later caller mutation cannot corrupt the stored record.
	stored := *record
	if record.MatchedPatterns != nil {
		stored.MatchedPatterns = append([]string(nil), record.MatchedPatterns...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, &stored)
	return nil
}

// Query retrieves records matching the filters, ordered by decision time.
func (s *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, audit.NewStorageError("memory", "query", err)
	}

	s.mu.RLock()
	matched := make([]*audit.Record, 0)
	for _, record := range s.records {
		if matches(record, query) {
			matched = append(matched, record)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DecisionTime.Before(matched[j].DecisionTime)
	})

	return paginate(matched, query), nil
}

// Count returns the number of records matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, audit.NewStorageError("memory", "count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matches(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes records matching the filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, audit.NewStorageError("memory", "delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, record := range s.records {
		if matches(record, query) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return deleted, nil
}

// Close is a no-op for memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// matches reports whether a record passes every filter in the query.
func matches(record *audit.Record, query *audit.Query) bool {
	if query == nil {
		return true
	}
	if query.StartTime != nil && record.DecisionTime.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.DecisionTime.After(*query.EndTime) {
		return false
	}
	if query.Kind != "" && record.Kind != query.Kind {
		return false
	}
	if query.Target != "" && record.Target != query.Target {
		return false
	}
	if query.MatchedRule != "" && record.MatchedRule != query.MatchedRule {
		return false
	}
	if query.Verdict != "" && record.Verdict != query.Verdict {
		return false
	}
	return true
}

// paginate applies Limit and Offset to an already sorted result set.
func paginate(records []*audit.Record, query *audit.Query) []*audit.Record {
	if query == nil {
		return records
	}
	if query.Offset > 0 {
		if query.Offset >= len(records) {
			return []*audit.Record{}
		}
		records = records[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(records) {
		records = records[:query.Limit]
	}
	return records
}
