package spawner

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/aispawner/internal/model"
	"github.com/udisondev/aispawner/internal/tick"
)

// Config is the static configuration of a spawner.
type Config struct {
	Name       string
	MarkerKind model.MarkerKind
	Template   *model.CharacterTemplate

	// UpdateParametersInterval is how often parameters are re-read from
	// worker flags. Zero disables refresh and Defaults stay in effect.
	UpdateParametersInterval time.Duration
	Defaults                 Parameters
}

// TickRegistrar enables and disables per-frame ticking.
type TickRegistrar interface {
	Register(name string, t tick.Ticker)
	Unregister(name string)
}

// Snapshot is a read-only view of spawner state.
type Snapshot struct {
	Authoritative    bool
	SpawnPoints      int
	CanSpawn         bool
	Count            int32
	Params           Parameters
	SinceLastSpawn   time.Duration
	SinceLastRefresh time.Duration
}

// Controller keeps the population of spawned AI characters converging to the
// target count. It only ticks while this process holds authority.
type Controller struct {
	cfg      Config
	world    WorldQuery
	entities EntityLifecycle
	flags    FlagReader
	ticks    TickRegistrar
	rng      *rand.Rand

	mu            sync.Mutex
	state         *State
	authoritative bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used to choose spawn points.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// NewController creates spawner controller
func NewController(
	cfg Config,
	world WorldQuery,
	entities EntityLifecycle,
	flagReader FlagReader,
	ticks TickRegistrar,
	opts ...Option,
) *Controller {
	c := &Controller{
		cfg:      cfg,
		world:    world,
		entities: entities,
		flags:    flagReader,
		ticks:    ticks,
		state:    NewState(cfg.Defaults),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Name returns spawner name
func (c *Controller) Name() string {
	return c.cfg.Name
}

// OnAuthorityGained captures spawn points, starts ticking and, when refresh
// is configured, loads parameters right away so spawning starts with fresh data.
func (c *Controller) OnAuthorityGained() {
	c.mu.Lock()
	InitializeSpawnPoints(c.state, c.world, c.cfg.MarkerKind)
	if c.cfg.UpdateParametersInterval > 0 {
		RefreshParameters(c.state, c.flags)
	}
	c.authoritative = true
	points, params := len(c.state.SpawnPoints), c.state.Params
	c.mu.Unlock()

	// registered outside the lock: the frame loop may tick immediately
	c.ticks.Register(c.cfg.Name, c)

	if points == 0 {
		slog.Warn("no spawn points found, spawning disabled",
			"spawner", c.cfg.Name,
			"markerKind", c.cfg.MarkerKind)
	}
	slog.Info("spawner gained authority",
		"spawner", c.cfg.Name,
		"spawnPoints", points,
		"enabled", params.Enabled,
		"target", params.TargetCount,
		"minSecondsBetweenSpawns", params.MinSecondsBetweenSpawns)
}

// OnAuthorityLost stops ticking. Spawned characters are kept until DespawnAll.
func (c *Controller) OnAuthorityLost() {
	c.ticks.Unregister(c.cfg.Name)

	c.mu.Lock()
	c.authoritative = false
	count := c.state.Count()
	c.mu.Unlock()

	slog.Info("spawner lost authority", "spawner", c.cfg.Name, "spawned", count)
}

// Tick advances the spawner by dt. Called by the frame loop.
func (c *Controller) Tick(dt time.Duration) {
	c.mu.Lock()
	if !c.authoritative {
		c.mu.Unlock()
		return
	}
	res := Update(c.state, c.cfg, Env{Entities: c.entities, Flags: c.flags, Rand: c.rng}, dt)
	count, params := c.state.Count(), c.state.Params
	c.mu.Unlock()

	if res.Refreshed {
		slog.Debug("spawner parameters refreshed",
			"spawner", c.cfg.Name,
			"enabled", params.Enabled,
			"target", params.TargetCount,
			"minSecondsBetweenSpawns", params.MinSecondsBetweenSpawns)
	}
	for _, ch := range res.Despawned {
		slog.Info("AI character despawned",
			"spawner", c.cfg.Name,
			"objectID", ch.ObjectID(),
			"name", ch.Name(),
			"lifetime", time.Since(ch.SpawnedAt()))
	}
	if res.DestroyErr != nil {
		slog.Warn("destroying excess characters", "spawner", c.cfg.Name, "error", res.DestroyErr)
	}
	if res.SpawnErr != nil {
		slog.Warn("spawn failed", "spawner", c.cfg.Name, "error", res.SpawnErr)
	}
	if res.Spawned != nil {
		slog.Info("AI character spawned",
			"spawner", c.cfg.Name,
			"objectID", res.Spawned.ObjectID(),
			"name", res.Spawned.Name(),
			"template", res.Spawned.Template().TemplateID(),
			"location", res.Spawned.Location(),
			"spawned", count,
			"target", params.TargetCount)
	}
}

// DespawnAll stops ticking and destroys every spawned character.
// Returns number of characters despawned.
func (c *Controller) DespawnAll() int {
	c.ticks.Unregister(c.cfg.Name)

	c.mu.Lock()
	c.authoritative = false
	despawned, err := DespawnAll(c.state, c.entities)
	c.mu.Unlock()

	if err != nil {
		slog.Warn("despawning characters", "spawner", c.cfg.Name, "error", err)
	}
	slog.Info("spawner despawned all characters", "spawner", c.cfg.Name, "count", len(despawned))
	return len(despawned)
}

// Snapshot returns current spawner state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Authoritative:    c.authoritative,
		SpawnPoints:      len(c.state.SpawnPoints),
		CanSpawn:         c.state.CanSpawn,
		Count:            c.state.Count(),
		Params:           c.state.Params,
		SinceLastSpawn:   c.state.SinceLastSpawn,
		SinceLastRefresh: c.state.SinceLastRefresh,
	}
}
