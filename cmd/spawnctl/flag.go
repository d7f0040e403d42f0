package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/udisondev/aispawner/internal/db"
)

type flagRepository interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

func newFlagCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Worker flag subcommands",
	}

	withRepo := func(fn func(cmd *cobra.Command, repo flagRepository, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer database.Close()
			return fn(cmd, db.NewFlagRepository(database.Pool()), args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all worker flags",
			Args:  cobra.NoArgs,
			RunE: withRepo(func(cmd *cobra.Command, repo flagRepository, _ []string) error {
				return listFlags(cmd.Context(), repo, cmd.OutOrStdout())
			}),
		},
		&cobra.Command{
			Use:   "get [name]",
			Short: "Print a worker flag value",
			Args:  cobra.ExactArgs(1),
			RunE: withRepo(func(cmd *cobra.Command, repo flagRepository, args []string) error {
				value, err := repo.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			}),
		},
		&cobra.Command{
			Use:     "set [name] [value]",
			Short:   "Create or update a worker flag",
			Example: "spawnctl flag set ai_spawning_enabled false",
			Args:    cobra.ExactArgs(2),
			RunE: withRepo(func(cmd *cobra.Command, repo flagRepository, args []string) error {
				return repo.Set(cmd.Context(), args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "unset [name]",
			Short: "Remove a worker flag",
			Args:  cobra.ExactArgs(1),
			RunE: withRepo(func(cmd *cobra.Command, repo flagRepository, args []string) error {
				return repo.Delete(cmd.Context(), args[0])
			}),
		},
	)
	return cmd
}

// listFlags prints flags sorted by name.
func listFlags(ctx context.Context, repo flagRepository, out io.Writer) error {
	values, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%s=%s\n", name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
