package spawner

import (
	"time"

	"github.com/udisondev/aispawner/internal/flags"
	"github.com/udisondev/aispawner/internal/model"
)

// WorldQuery finds placement markers in the world.
type WorldQuery interface {
	FindMarkers(kind model.MarkerKind) []model.Location
}

// EntityLifecycle creates and destroys spawned characters.
type EntityLifecycle interface {
	SpawnCharacter(template *model.CharacterTemplate, loc model.Location) (*model.Character, error)
	DestroyCharacter(objectID uint32) error
}

// FlagReader looks up worker flags by name.
type FlagReader interface {
	Get(name string) (string, bool)
}

// Parameters controls spawning. Refreshed from worker flags.
type Parameters struct {
	Enabled                 bool
	MinSecondsBetweenSpawns float64
	TargetCount             int32
}

// SpawnDue reports whether enough time has passed since the last spawn.
// Compared in float seconds so huge gaps do not overflow time.Duration.
func (p Parameters) SpawnDue(sinceLastSpawn time.Duration) bool {
	return sinceLastSpawn.Seconds() >= p.MinSecondsBetweenSpawns
}

// ReadParameters reads spawner parameters from worker flags.
// Missing or malformed values read as false / zero.
func ReadParameters(r FlagReader) Parameters {
	enabled, _ := r.Get(flags.SpawningEnabled)
	minGap, _ := r.Get(flags.MinSecondsBetweenSpawns)
	target, _ := r.Get(flags.NumToSpawn)

	return Parameters{
		Enabled:                 flags.ParseBool(enabled),
		MinSecondsBetweenSpawns: flags.ParseFloat(minGap),
		TargetCount:             flags.ParseInt(target),
	}
}

// State is everything a spawner mutates between ticks.
//
// Handles is a stack in spawn order; its length is the spawned count.
type State struct {
	SpawnPoints []model.Location
	CanSpawn    bool
	Handles     []*model.Character
	Params      Parameters

	SinceLastSpawn   time.Duration
	SinceLastRefresh time.Duration
}

// NewState creates state with default parameters and zeroed timers.
func NewState(defaults Parameters) *State {
	return &State{Params: defaults}
}

// Count returns number of currently spawned characters.
func (s *State) Count() int32 {
	return int32(len(s.Handles))
}

// InitializeSpawnPoints captures marker transforms once and enables spawning.
// A repeated call replaces the previous capture.
func InitializeSpawnPoints(s *State, world WorldQuery, kind model.MarkerKind) {
	points := world.FindMarkers(kind)
	s.SpawnPoints = append(s.SpawnPoints[:0], points...)
	s.CanSpawn = len(s.SpawnPoints) > 0
	s.Params.Enabled = true
}

// RefreshParameters re-reads parameters from flags and resets the refresh timer.
func RefreshParameters(s *State, r FlagReader) {
	s.SinceLastRefresh = 0
	s.Params = ReadParameters(r)
}
