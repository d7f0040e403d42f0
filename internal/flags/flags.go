// Package flags holds worker flags: named string values set by operators at
// runtime and distributed to every server process.
package flags

import (
	"errors"
	"maps"
	"sync"
)

// Worker flags read by the AI spawner.
const (
	SpawningEnabled         = "ai_spawning_enabled"
	MinSecondsBetweenSpawns = "ai_min_seconds_between_spawns"
	NumToSpawn              = "ai_num_to_spawn"
)

// ErrNotFound is returned when a flag is not set.
var ErrNotFound = errors.New("worker flag not found")

// Store is the in-memory flag snapshot read by game logic.
// Lookups never block on I/O; a Syncer keeps the snapshot fresh.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates store seeded with initial values (may be nil).
func NewStore(initial map[string]string) *Store {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &Store{values: values}
}

// Get returns flag value and whether it is set.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set sets a single flag.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Replace swaps the whole snapshot. Returns true if any value changed.
func (s *Store) Replace(values map[string]string) bool {
	next := make(map[string]string, len(values))
	maps.Copy(next, values)

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := !maps.Equal(s.values, next)
	s.values = next
	return changed
}

// Snapshot returns a copy of all flags.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Len returns number of flags set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
