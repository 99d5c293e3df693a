// Package locks provides in-process mutual exclusion keyed by string.
// The ledger store replaces whole records, so the only critical section is
// the read-merge-write cycle for one employee's year; serializing it keeps
// a lost update from dropping a concurrent merge without changing the
// store's last-write-wins semantics.
package locks

import (
	"fmt"
	"sync"
)

type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its release func. Mutexes
// are never evicted; the key space is (employee, year) pairs and stays
// small.
func (k *Keyed) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// EmployeeYearKey builds the lock key for one employee's year ledger.
func EmployeeYearKey(employeeID string, year int) string {
	return fmt.Sprintf("ledger:%s:%d", employeeID, year)
}
