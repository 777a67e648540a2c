package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [script]",
	Short: "Run a script and print the internal state of its session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadWorkspace()
		if err != nil {
			return err
		}

		reports, err := runScripts(cmd.Context(), cfg, args)
		if err != nil {
			return err
		}

		state := make(map[string]any)
		for _, comp := range reports[0].Components() {
			if intro, ok := comp.(introspection.Introspectable); ok {
				state[comp.ComponentType()] = intro.State()
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
