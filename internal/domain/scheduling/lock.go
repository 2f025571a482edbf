package scheduling

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes booking attempts per therapist. It closes the
// window between the overlap check and the insert for requests served by
// this process; the partial unique index on (therapist_id, start_time)
// backstops multi-instance deployments.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key uuid.UUID) func() {
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
