package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagUsername string
	flagPassword string
)

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Run a single authenticated query and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.Auth.Authenticate(ctx, flagUsername, flagPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if _, err := app.Assistant.Ingest(ctx); err != nil {
			return fmt.Errorf("ingest corpus: %w", err)
		}
		reply := app.Assistant.HandleQuery(ctx, user, strings.Join(args, " "))
		fmt.Println(reply)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "username")
	askCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "password")
	_ = askCmd.MarkFlagRequired("username")
	_ = askCmd.MarkFlagRequired("password")
}
