package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/talentrail/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema (up, down, status)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app) error {
					return migrateUp(cmd.Context(), a, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app) error {
					return withProvider(a, func(p *goose.Provider) error {
						res, err := p.Down(cmd.Context())
						if err != nil {
							return fmt.Errorf("migrate down: %w", err)
						}
						fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s (%s)\n", res.Source.Path, res.Duration)
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(a *app) error {
					return migrateStatus(cmd.Context(), a, cmd.OutOrStdout())
				})
			},
		},
	)
	return cmd
}

// withApp runs fn with a connected app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// withProvider runs fn with a goose provider over the app's pool. The
// database/sql handle wrapping the pool is closed when fn returns; the pool
// itself stays open for the caller.
func withProvider(a *app, fn func(p *goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(a.pool)
	defer db.Close()

	p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	return fn(p)
}

// migrateUp applies pending migrations, writing one line per applied file to
// out when out is non-nil.
func migrateUp(ctx context.Context, a *app, out io.Writer) error {
	return withProvider(a, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			a.logger.Info("migration applied", "file", r.Source.Path, "duration", r.Duration.String())
			if out != nil {
				fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration)
			}
		}
		if len(results) == 0 {
			a.logger.Info("schema up to date")
		}
		return nil
	})
}

func migrateStatus(ctx context.Context, a *app, out io.Writer) error {
	return withProvider(a, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return w.Flush()
	})
}
