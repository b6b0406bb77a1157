// Command edit-history prints the rendered edit history of a report, as
// coordinators see it, for support and audit requests.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/use-of-force/internal/adapter/cache"
	"github.com/heartmarshall/use-of-force/internal/adapter/postgres"
	"github.com/heartmarshall/use-of-force/internal/app"
	"github.com/heartmarshall/use-of-force/internal/config"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
)

type options struct {
	configPath string
	reportID   int64
	username   string
	asJSON     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "edit-history",
		Short:         "Print the edit history of a use of force report",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.reportID <= 0 {
				return fmt.Errorf("--report-id is required")
			}
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file (default $"+config.PathEnv+" or ./config.yaml)")
	cmd.Flags().Int64Var(&opts.reportID, "report-id", 0, "report to print")
	cmd.Flags().StringVar(&opts.username, "username", "", "staff username prison and location names are resolved for")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print rows as JSON")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if opts.configPath == "" {
		opts.configPath = os.Getenv(config.PathEnv)
	}
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg.Log).With("cmd", "edit-history")

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	var names *cache.NameCache
	if redisClient != nil {
		defer redisClient.Close()
		names = cache.NewNameCache(redisClient, cfg.Redis.NameTTL)
	}

	svc := app.NewEditService(logger, cfg, pool, names, nil)

	rows, err := svc.BuildEditHistory(ctx, opts.reportID, edit.LookupContext{Username: opts.username})
	if err != nil {
		return fmt.Errorf("build edit history: %w", err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return printRows(out, rows)
}

func printRows(out io.Writer, rows []edit.HistoryRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no edits")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tEDITOR\tWHAT CHANGED\tFROM\tTO\tREASON")
	for _, row := range rows {
		for i := range row.WhatChanged {
			date, editor, reason := "", "", ""
			if i == 0 {
				date, editor, reason = row.EditDateDisplay, row.EditorName, row.Reason
				if row.Degraded {
					reason += " (names unavailable)"
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				date, editor, row.WhatChanged[i], oneLine(row.ChangedFrom[i]), oneLine(row.ChangedTo[i]), reason)
		}
		if row.AdditionalInfo != "" {
			fmt.Fprintf(tw, "\t\tAdditional information\t\t%s\t\n", oneLine(row.AdditionalInfo))
		}
	}
	return tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
