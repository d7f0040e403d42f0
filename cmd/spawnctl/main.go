// Command spawnctl manages the spawn server's database state: worker flags
// that tune spawning at runtime and the placement markers characters spawn at.
//
// Usage:
//
//	spawnctl flag set ai_num_to_spawn 10
//	spawnctl marker add player_start 17000 170000 -3500
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/aispawner/internal/config"
	"github.com/udisondev/aispawner/internal/db"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "spawnctl",
		Short:        "Manage worker flags and placement markers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config/spawnserver.yaml", "spawn server config file")

	connect := func(cmd *cobra.Command) (*db.DB, error) {
		cfg, err := config.LoadSpawnServer(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := db.RunMigrations(cmd.Context(), cfg.Database.DSN()); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return db.New(cmd.Context(), cfg.Database.DSN())
	}

	root.AddCommand(
		newFlagCmd(connect),
		newMarkerCmd(connect),
	)
	return root
}

type connectFunc func(cmd *cobra.Command) (*db.DB, error)
