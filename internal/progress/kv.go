// Package progress keeps the persisted player profile: best score, coin
// balance, lifetime stats and achievements. It stores everything through a
// small key-value interface so the SQLite store and an in-memory map are
// interchangeable.
package progress

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// KV is the persistence collaborator. Get reports ok=false for a missing key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Eraser is a KV that can also enumerate and remove keys.
type Eraser interface {
	KV
	Keys(prefix string) ([]string, error)
	Delete(key string) error
}

// Key names stored per profile.
const (
	KeyBest         = "best"
	KeyCoins        = "coins"
	KeyAchievements = "achievements"
	KeyStats        = "stats"
)

// Key returns the namespaced key for a profile entry.
func Key(profile, name string) string {
	return fmt.Sprintf("flappy/%s/%s", profile, name)
}

// Reset removes every stored entry of profile and reports how many keys
// were deleted. Other profiles are left alone.
func Reset(kv Eraser, profile string) (int, error) {
	keys, err := kv.Keys(Key(profile, ""))
	if err != nil {
		return 0, fmt.Errorf("progress: cannot list %s: %w", profile, err)
	}
	for i, k := range keys {
		if err := kv.Delete(k); err != nil {
			return i, fmt.Errorf("progress: cannot reset %s: %w", profile, err)
		}
	}
	return len(keys), nil
}

// MemoryKV is an in-memory KV. It is safe for concurrent use.
type MemoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls were made.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Delete implements Eraser.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys implements Eraser. Keys are returned in sorted order.
func (m *MemoryKV) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
