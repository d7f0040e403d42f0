package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/aispawner/internal/authority"
	"github.com/udisondev/aispawner/internal/config"
	"github.com/udisondev/aispawner/internal/db"
	"github.com/udisondev/aispawner/internal/flags"
	"github.com/udisondev/aispawner/internal/model"
	"github.com/udisondev/aispawner/internal/spawner"
	"github.com/udisondev/aispawner/internal/tick"
	"github.com/udisondev/aispawner/internal/world"
)

const ConfigPath = "config/spawnserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("AISPAWNER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSpawnServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("spawn server starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval,
		"flags_source", cfg.Flags.Source,
		"authority_mode", cfg.Authority.Mode)

	var database *db.DB
	if cfg.UsesDatabase() {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		database, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")
	}

	w := world.Instance()
	if err := loadMarkers(ctx, cfg, database, w); err != nil {
		return fmt.Errorf("loading placement markers: %w", err)
	}
	slog.Info("world initialized", "regions", w.RegionCount(), "markers", w.MarkerCount())

	store := flags.NewStore(cfg.Flags.Static)
	var syncer *flags.Syncer
	switch cfg.Flags.Source {
	case config.FlagSourceFile:
		syncer = flags.NewSyncer(flags.NewFileSource(cfg.Flags.File), store, cfg.Flags.SyncInterval)
	case config.FlagSourceDatabase:
		syncer = flags.NewSyncer(db.NewFlagRepository(database.Pool()), store, cfg.Flags.SyncInterval)
	}
	if syncer != nil {
		// first snapshot before authority so the initial refresh sees real values
		if err := syncer.SyncOnce(ctx); err != nil {
			slog.Warn("initial worker flag sync failed", "error", err)
		}
	}

	ticks := tick.NewTickManager(cfg.TickInterval)

	sc := cfg.Spawner
	opts := []spawner.Option{}
	if sc.RandomSeed != 0 {
		opts = append(opts, spawner.WithRand(rand.New(rand.NewPCG(sc.RandomSeed, sc.RandomSeed))))
	}
	controller := spawner.NewController(spawner.Config{
		Name:                     sc.Name,
		MarkerKind:               model.MarkerKind(sc.MarkerKind),
		Template:                 model.NewCharacterTemplate(sc.Template.ID, sc.Template.Name),
		UpdateParametersInterval: sc.UpdateParametersInterval,
		Defaults: spawner.Parameters{
			MinSecondsBetweenSpawns: sc.MinSecondsBetweenSpawns,
			TargetCount:             sc.NumToSpawn,
		},
	}, w, w, store, ticks, opts...)

	var elector authority.Elector
	switch cfg.Authority.Mode {
	case config.AuthorityDatabase:
		elector = authority.NewAdvisoryLock(database.Pool(), cfg.Authority.LockKey, cfg.Authority.RetryInterval, controller)
	default:
		elector = authority.NewStatic(controller)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ticks.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	if syncer != nil {
		g.Go(func() error {
			if err := syncer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("worker flag syncer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := elector.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("authority elector: %w", err)
		}
		return nil
	})

	err = g.Wait()

	// characters belong to this process's world; never leave them behind
	controller.DespawnAll()

	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	slog.Info("spawn server stopped")
	return nil
}

// loadMarkers places markers from the database, or from config when no
// database is configured.
func loadMarkers(ctx context.Context, cfg config.SpawnServer, database *db.DB, w *world.World) error {
	var markers []*model.Marker
	if database != nil {
		loaded, err := db.NewMarkerRepository(database.Pool()).LoadAll(ctx)
		if err != nil {
			return err
		}
		markers = loaded
	} else {
		for i, m := range cfg.Markers {
			loc := model.NewLocation(m.X, m.Y, m.Z, m.Heading)
			markers = append(markers, model.NewMarker(int64(i+1), model.MarkerKind(m.Kind), loc))
		}
	}

	for _, m := range markers {
		if err := w.AddMarker(m); err != nil {
			slog.Warn("skipping placement marker", "markerID", m.MarkerID(), "error", err)
		}
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
