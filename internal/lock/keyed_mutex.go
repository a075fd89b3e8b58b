// Package lock provides in-process mutual exclusion scoped to a key.
package lock

import (
	"fmt"
	"sync"
)

// KeyedMutex hands out one mutex per key. Holders of different keys never block
// each other. Entries are reference counted and dropped once no goroutine holds
// or waits on them, so the map only grows with the number of in-flight keys.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock blocks until the mutex for key is acquired and returns the function that releases it.
// The returned function must be called exactly once.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyedEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			k.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// EvidenceKey is the lock key serializing writes against one evidence record.
func EvidenceKey(evidenceID int64) string {
	return fmt.Sprintf("evidence:%d", evidenceID)
}

// IdentifierKey is the lock key serializing registration of one evidence identifier.
func IdentifierKey(evidenceType, identifier string) string {
	return fmt.Sprintf("identifier:%s:%s", evidenceType, identifier)
}
