// Package locker provides a keyed mutual exclusion primitive. Command
// handlers lock the order id for the duration of a lifecycle mutation so
// two concurrent commands against the same order serialize instead of
// racing on the version counter.
package locker

import "sync"

// KeyedLocker serializes work per key. Different keys proceed in parallel;
// the same key blocks until the current holder releases. Lock entries are
// reference counted and removed once the last holder releases, so the
// internal map does not grow with the key space.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLocker creates an empty locker.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*entry)}
}

// Lock acquires the lock for key, blocking while another goroutine holds it.
func (l *KeyedLocker) Lock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the lock for key. Calling Unlock for a key that is not
// held is a programming error and panics, matching sync.Mutex semantics.
func (l *KeyedLocker) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		l.mu.Unlock()
		panic("locker: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}
