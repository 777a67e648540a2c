package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/roster/pkg/adapters/fs"
	"github.com/aretw0/roster/pkg/adapters/lifecycle"
	"github.com/aretw0/roster/pkg/script"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [pattern...]",
	Short: "Re-run event scripts whenever they change",
	Long:  `Run the matching scripts once, then again each time one of them is written, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, patterns, err := resolvePatterns(args)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = outputFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		paths, err := script.Discover(patterns...)
		if err != nil {
			return err
		}
		if len(paths) > 0 {
			if reports, err := runScripts(ctx, cfg, paths); err != nil {
				slog.Error("initial run failed", "error", err)
			} else if err := printReports(out, cfg.Output, reports); err != nil {
				return err
			}
		}

		raw := make(chan fs.Event, 16)
		watcher := fs.NewWatcher(fs.Config{
			Patterns: patterns,
			Debounce: watchDebounce,
			Logger:   slog.Default(),
		}, raw)
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = watcher.Stop(stopCtx)
		}()

		source := lifecycle.NewSource(raw)
		if err := source.Start(ctx); err != nil {
			return err
		}

		slog.Info("watching", "patterns", patterns)
		for e := range source.Events() {
			ev, ok := e.(fs.Event)
			if !ok {
				continue
			}
			slog.Info("script changed", "event", ev.String())
			reports, err := runScripts(ctx, cfg, []string{ev.Path})
			if err != nil {
				slog.Error("run failed", "path", ev.Path, "error", err)
				continue
			}
			if err := printReports(out, cfg.Output, reports); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, yaml, json)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 50*time.Millisecond, "Quiet period before re-running a changed script")
}
