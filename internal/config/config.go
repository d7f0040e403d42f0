package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/aispawner/internal/flags"
)

// Flag sources.
const (
	FlagSourceStatic   = "static"
	FlagSourceFile     = "file"
	FlagSourceDatabase = "database"
)

// Authority modes.
const (
	AuthorityStatic   = "static"
	AuthorityDatabase = "database"
)

// SpawnServer holds all configuration for the spawn server.
type SpawnServer struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"` // frame interval (default: 100ms)

	Database  DatabaseConfig  `yaml:"database"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Flags     FlagsConfig     `yaml:"flags"`
	Authority AuthorityConfig `yaml:"authority"`

	// Markers are seeded into the world when the database is not used.
	Markers []MarkerEntry `yaml:"markers"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// SpawnerConfig describes the AI spawner.
type SpawnerConfig struct {
	Name       string        `yaml:"name"`
	MarkerKind string        `yaml:"marker_kind"`
	Template   TemplateEntry `yaml:"template"`

	// 0 disables parameter refresh; the defaults below stay in effect.
	UpdateParametersInterval time.Duration `yaml:"update_parameters_interval"`
	MinSecondsBetweenSpawns  float64       `yaml:"min_seconds_between_spawns"`
	NumToSpawn               int32         `yaml:"num_to_spawn"`

	RandomSeed uint64 `yaml:"random_seed"` // 0 = seed from runtime
}

// TemplateEntry describes the spawned character.
type TemplateEntry struct {
	ID   int32  `yaml:"id"`
	Name string `yaml:"name"`
}

// FlagsConfig selects where worker flags come from.
type FlagsConfig struct {
	Source       string            `yaml:"source"` // static | file | database
	File         string            `yaml:"file"`
	SyncInterval time.Duration     `yaml:"sync_interval"`
	Static       map[string]string `yaml:"static"`
}

// AuthorityConfig selects how the authoritative process is elected.
type AuthorityConfig struct {
	Mode          string        `yaml:"mode"` // static | database
	LockKey       int64         `yaml:"lock_key"`
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// MarkerEntry is a placement marker declared in config.
type MarkerEntry struct {
	Kind    string `yaml:"kind"`
	X       int32  `yaml:"x"`
	Y       int32  `yaml:"y"`
	Z       int32  `yaml:"z"`
	Heading uint16 `yaml:"heading"`
}

// UsesDatabase reports whether any component needs PostgreSQL.
func (c SpawnServer) UsesDatabase() bool {
	return c.Flags.Source == FlagSourceDatabase || c.Authority.Mode == AuthorityDatabase
}

// Validate checks the config for values the server cannot run with.
func (c SpawnServer) Validate() error {
	var errs []error

	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.Spawner.Name == "" {
		errs = append(errs, errors.New("spawner.name is required"))
	}
	if c.Spawner.MarkerKind == "" {
		errs = append(errs, errors.New("spawner.marker_kind is required"))
	}
	if c.Spawner.UpdateParametersInterval < 0 {
		errs = append(errs, errors.New("spawner.update_parameters_interval must not be negative"))
	}

	switch c.Flags.Source {
	case FlagSourceStatic:
	case FlagSourceFile:
		if c.Flags.File == "" {
			errs = append(errs, errors.New("flags.file is required for file source"))
		}
	case FlagSourceDatabase:
	default:
		errs = append(errs, fmt.Errorf("unknown flags.source %q", c.Flags.Source))
	}
	if c.Flags.Source != FlagSourceStatic && c.Flags.SyncInterval <= 0 {
		errs = append(errs, errors.New("flags.sync_interval must be positive"))
	}

	switch c.Authority.Mode {
	case AuthorityStatic:
	case AuthorityDatabase:
		if c.Authority.RetryInterval <= 0 {
			errs = append(errs, errors.New("authority.retry_interval must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown authority.mode %q", c.Authority.Mode))
	}

	return errors.Join(errs...)
}

// DefaultSpawnServer returns SpawnServer config with sensible defaults.
func DefaultSpawnServer() SpawnServer {
	return SpawnServer{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "aispawner",
			Password: "aispawner",
			DBName:   "aispawner",
			SSLMode:  "disable",
		},
		Spawner: SpawnerConfig{
			Name:       "ai_spawner",
			MarkerKind: "player_start",
			Template: TemplateEntry{
				ID:   1000,
				Name: "AI Character",
			},
			UpdateParametersInterval: 5 * time.Second,
			MinSecondsBetweenSpawns:  1,
		},
		// static flags mirror the spawner defaults so the first refresh keeps them
		Flags: FlagsConfig{
			Source:       FlagSourceStatic,
			SyncInterval: 5 * time.Second,
			Static: map[string]string{
				flags.SpawningEnabled:         "true",
				flags.MinSecondsBetweenSpawns: "1",
				flags.NumToSpawn:              "0",
			},
		},
		Authority: AuthorityConfig{
			Mode:          AuthorityStatic,
			LockKey:       7001,
			RetryInterval: 2 * time.Second,
		},
	}
}

// LoadSpawnServer loads spawn server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSpawnServer(path string) (SpawnServer, error) {
	cfg := DefaultSpawnServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
