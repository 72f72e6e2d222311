package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hrassistant/internal/tui"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "hrassistant",
	Short: "HR assistant with policy Q&A and leave management",
	Long: `An interactive HR assistant. Employees log in with spreadsheet-backed
credentials, ask questions about company policies, check their leave
balance, and apply for leave.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file (default ./config.yaml, then ~/.config/hrassistant/config.yaml)")
	rootCmd.AddCommand(askCmd)
}

func runTUI(ctx context.Context) error {
	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.Assistant.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingest corpus: %w", err)
	}

	m := tui.New(app.Assistant, app.Auth, summary, app.Config.Auth.MaxLoginAttempts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	return nil
}
