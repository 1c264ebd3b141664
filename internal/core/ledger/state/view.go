// Package state holds the committed marketplace state: an in-memory view for
// tests and tooling, and a persistent Store over a key-value database.
package state

import (
	"errors"
	"sort"
	"sync"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
)

var (
	// ErrEntryExists is returned by Insert when the key is already present.
	ErrEntryExists = errors.New("entry already exists")
	// ErrEntryNotFound is returned by Update and Erase for an absent key.
	ErrEntryNotFound = errors.New("entry not found")
)

// Change is one committed modification. A nil Data erases the entry.
type Change struct {
	Key  keylet.Keylet
	Data []byte
}

// Batcher is implemented by views that can commit many changes atomically.
type Batcher interface {
	ApplyBatch(changes []Change) error
}

// MemoryView is a map-backed view. It is safe for concurrent use.
type MemoryView struct {
	mu      sync.RWMutex
	entries map[[32]byte][]byte
}

// NewMemoryView creates an empty view.
func NewMemoryView() *MemoryView {
	return &MemoryView{entries: make(map[[32]byte][]byte)}
}

func (v *MemoryView) Read(k keylet.Keylet) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	data, ok := v.entries[k.Key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (v *MemoryView) Exists(k keylet.Keylet) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.entries[k.Key]
	return ok, nil
}

func (v *MemoryView) Insert(k keylet.Keylet, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.entries[k.Key]; ok {
		return ErrEntryExists
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *MemoryView) Update(k keylet.Keylet, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.entries[k.Key]; !ok {
		return ErrEntryNotFound
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *MemoryView) Erase(k keylet.Keylet) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.entries[k.Key]; !ok {
		return ErrEntryNotFound
	}
	delete(v.entries, k.Key)
	return nil
}

// ApplyBatch applies every change under a single lock.
func (v *MemoryView) ApplyBatch(changes []Change) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range changes {
		if c.Data == nil {
			delete(v.entries, c.Key.Key)
			continue
		}
		v.entries[c.Key.Key] = append([]byte(nil), c.Data...)
	}
	return nil
}

// Len returns the number of stored entries.
func (v *MemoryView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// ForEach calls fn for every entry in key order until fn returns false.
func (v *MemoryView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	v.mu.RLock()
	keys := make([][32]byte, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	v.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})
	for _, k := range keys {
		v.mu.RLock()
		data, ok := v.entries[k]
		v.mu.RUnlock()
		if ok && !fn(k, data) {
			break
		}
	}
	return nil
}
