package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/udisondev/aispawner/internal/db"
	"github.com/udisondev/aispawner/internal/model"
)

type markerRepository interface {
	LoadAll(ctx context.Context) ([]*model.Marker, error)
	Create(ctx context.Context, kind model.MarkerKind, loc model.Location) (int64, error)
}

func newMarkerCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marker",
		Short: "Placement marker subcommands",
	}

	withRepo := func(fn func(cmd *cobra.Command, repo markerRepository, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			database, err := connect(cmd)
			if err != nil {
				return err
			}
			defer database.Close()
			return fn(cmd, db.NewMarkerRepository(database.Pool()), args)
		}
	}

	var heading uint16
	add := &cobra.Command{
		Use:     "add [kind] [x] [y] [z]",
		Short:   "Add a placement marker",
		Example: "spawnctl marker add player_start 17000 170000 -3500 --heading 16384",
		Args:    cobra.ExactArgs(4),
		RunE: withRepo(func(cmd *cobra.Command, repo markerRepository, args []string) error {
			return addMarker(cmd.Context(), repo, cmd.OutOrStdout(), args, heading)
		}),
	}
	add.Flags().Uint16Var(&heading, "heading", 0, "marker heading (0-65535)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List placement markers",
			Args:  cobra.NoArgs,
			RunE: withRepo(func(cmd *cobra.Command, repo markerRepository, _ []string) error {
				return listMarkers(cmd.Context(), repo, cmd.OutOrStdout())
			}),
		},
		add,
	)
	return cmd
}

func addMarker(ctx context.Context, repo markerRepository, out io.Writer, args []string, heading uint16) error {
	var coords [3]int32
	for i, arg := range args[1:4] {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("parsing coordinate %q: %w", arg, err)
		}
		coords[i] = int32(v)
	}

	loc := model.NewLocation(coords[0], coords[1], coords[2], heading)
	id, err := repo.Create(ctx, model.MarkerKind(args[0]), loc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "marker %d added at %s\n", id, loc)
	return err
}

func listMarkers(ctx context.Context, repo markerRepository, out io.Writer) error {
	markers, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range markers {
		if _, err := fmt.Fprintf(out, "%d\t%s\t%s\n", m.MarkerID(), m.Kind(), m.Location()); err != nil {
			return err
		}
	}
	return nil
}
