package concurrency

import (
	"sync"

	"github.com/google/uuid"
)

// LockManager hands out one mutex per tournament so writers on the same
// tournament are serialized while different tournaments proceed in parallel.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given tournament
func (lm *LockManager) GetLock(id uuid.UUID) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the tournament's mutex and returns its unlock function
func (lm *LockManager) Lock(id uuid.UUID) func() {
	mu := lm.GetLock(id)
	mu.Lock()
	return mu.Unlock
}
