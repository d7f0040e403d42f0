package spawner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/udisondev/aispawner/internal/model"
)

// Env bundles the collaborators Update calls into.
type Env struct {
	Entities EntityLifecycle
	Flags    FlagReader
	Rand     *rand.Rand
}

// Result reports what a single Update did.
type Result struct {
	Refreshed bool
	Despawned []*model.Character
	Spawned   *model.Character
	// DestroyErr joins errors from destroying excess characters.
	DestroyErr error
	// SpawnErr is set when a spawn was attempted and failed.
	SpawnErr error
}

// Update advances the spawner by dt.
//
// Excess characters are destroyed before a new spawn is considered, so Count
// never stays above TargetCount for longer than one tick. At most one
// character is spawned per call.
func Update(s *State, cfg Config, env Env, dt time.Duration) Result {
	var res Result

	s.SinceLastSpawn += dt
	s.SinceLastRefresh += dt

	if cfg.UpdateParametersInterval > 0 && s.SinceLastRefresh > cfg.UpdateParametersInterval {
		RefreshParameters(s, env.Flags)
		res.Refreshed = true
	}

	if s.Count() == s.Params.TargetCount {
		return res
	}

	var destroyErrs []error
	for len(s.Handles) > 0 && s.Count() > s.Params.TargetCount {
		last := len(s.Handles) - 1
		c := s.Handles[last]
		s.Handles[last] = nil
		s.Handles = s.Handles[:last]

		// the handle is dropped either way: a character missing from the
		// world cannot be destroyed twice
		if err := env.Entities.DestroyCharacter(c.ObjectID()); err != nil {
			destroyErrs = append(destroyErrs, fmt.Errorf("destroying character %d: %w", c.ObjectID(), err))
		}
		res.Despawned = append(res.Despawned, c)
	}
	res.DestroyErr = errors.Join(destroyErrs...)

	if s.CanSpawn && s.Params.Enabled && s.Count() < s.Params.TargetCount &&
		s.Params.SpawnDue(s.SinceLastSpawn) {
		res.Spawned, res.SpawnErr = spawnOne(s, cfg, env)
	}

	return res
}

// spawnOne spawns a character at a uniformly chosen spawn point.
// Only a successful spawn is counted.
func spawnOne(s *State, cfg Config, env Env) (*model.Character, error) {
	s.SinceLastSpawn = 0

	loc := s.SpawnPoints[env.Rand.IntN(len(s.SpawnPoints))]
	c, err := env.Entities.SpawnCharacter(cfg.Template, loc)
	if err != nil {
		return nil, fmt.Errorf("spawning at %s: %w", loc, err)
	}
	if c == nil {
		return nil, fmt.Errorf("spawning at %s: no character returned", loc)
	}

	s.Handles = append(s.Handles, c)
	return c, nil
}

// DespawnAll destroys every held character, most recent first.
func DespawnAll(s *State, entities EntityLifecycle) ([]*model.Character, error) {
	despawned := make([]*model.Character, 0, len(s.Handles))
	var errs []error

	for len(s.Handles) > 0 {
		last := len(s.Handles) - 1
		c := s.Handles[last]
		s.Handles[last] = nil
		s.Handles = s.Handles[:last]

		if err := entities.DestroyCharacter(c.ObjectID()); err != nil {
			errs = append(errs, fmt.Errorf("destroying character %d: %w", c.ObjectID(), err))
		}
		despawned = append(despawned, c)
	}
	return despawned, errors.Join(errs...)
}
