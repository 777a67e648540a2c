package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/pkg/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [pattern...]",
	Short: "Replay event scripts",
	Long: `Replay one or more event scripts and print the final table of each.
Patterns support ** globs. Without arguments, the scripts listed in roster.yaml
(or **/*.roster.yaml and **/*.roster.json) under the workspace root are used.`,
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

		paths, err := script.Discover(patterns...)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no scripts match %v", patterns)
		}

		reports, err := runScripts(cmd.Context(), cfg, paths)
		if err != nil {
			return err
		}
		if err := printReports(cmd.OutOrStdout(), cfg.Output, reports); err != nil {
			return err
		}

		failed := 0
		for _, r := range reports {
			if !r.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d script(s) failed expectations", failed, len(reports))
		}
		return nil
	},
}

// loadWorkspace finds the workspace root from the CWD and loads its roster.yaml.
// Without a root, the CWD and default config are used.
func loadWorkspace() (roster.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return roster.Config{}, "", fmt.Errorf("failed to get CWD: %w", err)
	}

	root, err := roster.FindRoot(cwd)
	if err != nil {
		slog.Debug("no workspace root, using defaults", "cwd", cwd)
		root = cwd
	}
	cfg, err := roster.LoadConfig(root)
	return cfg, root, err
}

// resolvePatterns returns the explicit patterns, or the configured ones relative
// to the workspace root.
func resolvePatterns(args []string) (roster.Config, []string, error) {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return cfg, nil, err
	}

	if len(args) > 0 {
		return cfg, args, nil
	}
	patterns := make([]string, 0, len(cfg.Scripts))
	for _, p := range cfg.Scripts {
		patterns = append(patterns, filepath.Join(root, p))
	}
	return cfg, patterns, nil
}

func runScripts(ctx context.Context, cfg roster.Config, paths []string) ([]*script.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runner := roster.NewRunner(slog.Default(), cfg.Options()...)

	reports := make([]*script.Report, 0, len(paths))
	for _, path := range paths {
		s, err := script.Load(path)
		if err != nil {
			return nil, err
		}
		report, err := runner.Run(ctx, s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func printReports(w io.Writer, format string, reports []*script.Report) error {
	switch format {
	case roster.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	case roster.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d steps, %d skipped)\n", r.Script, r.Steps, r.Skipped)
		if err := r.Render(w); err != nil {
			return err
		}
		for _, f := range r.Failures {
			fmt.Fprintf(w, "FAIL %s\n", f)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&outputFormat, "output", "o", roster.OutputTable, "Output format (table, yaml, json)")
}
