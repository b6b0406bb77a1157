// Command migrate applies the embedded goose migrations to the configured
// database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/use-of-force/internal/adapter/postgres"
	"github.com/heartmarshall/use-of-force/internal/app"
	"github.com/heartmarshall/use-of-force/internal/config"
)

var configPath string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the report and report_edit schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.PathEnv), "YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, logger, err := setup()
				if err != nil {
					return err
				}
				return postgres.MigrateUp(cmd.Context(), logger, cfg.Database.DSN)
			},
		},
		newCmd("down", "Roll back the most recent migration", func(ctx context.Context, log *slog.Logger, p *goose.Provider) error {
			r, err := p.Down(ctx)
			if r != nil {
				log.InfoContext(ctx, "migration rolled back", slog.Int64("version", r.Source.Version))
			}
			return err
		}),
		newCmd("status", "Print the state of every migration", func(ctx context.Context, _ *slog.Logger, p *goose.Provider) error {
			statuses, err := p.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				fmt.Printf("%-6d %-10s %s\n", s.Source.Version, s.State, s.Source.Path)
			}
			return nil
		}),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, app.NewLogger(cfg.Log).With("cmd", "migrate"), nil
}

func newCmd(use, short string, run func(ctx context.Context, log *slog.Logger, p *goose.Provider) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			provider, db, err := postgres.OpenMigrator(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return run(cmd.Context(), logger, provider)
		},
	}
}
