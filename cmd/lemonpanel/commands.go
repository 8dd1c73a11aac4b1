// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	verbose        bool
	jsonOutput     bool
	quietOutput    bool
	baseURLFlag    string
	timeoutSeconds int

	rootCmd = &cobra.Command{
		Use:   "lemonpanel [command text]",
		Short: "A control panel for a local Lemonade inference server",
		Long: `Lemonpanel talks to a locally running Lemonade server: check its
				health and stats, browse the model catalog, and pull or delete
				models. With no arguments it renders the full status dashboard.`,
		Args: cobra.ArbitraryArgs,
		Run:  runPanel, // Defined in cmd_panel.go
	}

	// --- Status ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check the server's health endpoint",
		Run:   runHealth, // Defined in cmd_panel.go
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics from the last request",
		Run:   runStats, // Defined in cmd_panel.go
	}
	systemCmd = &cobra.Command{
		Use:   "system",
		Short: "Show host hardware and software details",
		Run:   runSystem, // Defined in cmd_panel.go
	}
	liveCmd = &cobra.Command{
		Use:   "live",
		Short: "Check the server's liveness endpoint",
		Run:   runLive, // Defined in cmd_panel.go
	}
	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List the server's model catalog",
		Run:   runModels, // Defined in cmd_panel.go
	}

	// --- Model Actions ---
	pullCmd = &cobra.Command{
		Use:   "pull [model_id]",
		Short: "Download a model; prompts with the catalog when no id is given",
		Args:  cobra.MaximumNArgs(1),
		Run:   runPull, // Defined in cmd_panel.go
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [model_id]",
		Short: "Remove a downloaded model; prompts with installed models when no id is given",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDelete, // Defined in cmd_panel.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quietOutput, "quiet", "q", false,
		"Suppress output, exit code only")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "",
		"Lemonade server base URL (overrides config and environment)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0,
		"Request timeout in seconds (overrides config and environment)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(deleteCmd)
}
