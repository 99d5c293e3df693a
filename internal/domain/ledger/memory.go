package ledger

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore keeps year ledgers in memory. Records are stored marshaled so
// callers never share state with the store, matching the whole-record
// replace contract of the durable store.
type MemStore struct {
	mu    sync.RWMutex
	years map[int]map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{years: make(map[int]map[string][]byte)}
}

func (s *MemStore) Load(_ context.Context, year int) (YearLedger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := YearLedger{}
	for employeeID, data := range s.years[year] {
		var record EmployeeYear
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		out[employeeID] = record
	}
	return out, nil
}

func (s *MemStore) LoadEmployee(_ context.Context, year int, employeeID string) (EmployeeYear, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.years[year][employeeID]
	if !ok {
		return EmployeeYear{Months: map[string]MonthRecord{}}, false, nil
	}
	var record EmployeeYear
	if err := json.Unmarshal(data, &record); err != nil {
		return EmployeeYear{Months: map[string]MonthRecord{}}, false, nil
	}
	return record, true, nil
}

func (s *MemStore) SaveEmployee(_ context.Context, year int, employeeID string, data EmployeeYear) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.years[year] == nil {
		s.years[year] = make(map[string][]byte)
	}
	s.years[year][employeeID] = encoded
	return nil
}
