package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/shared/db"
	"github.com/tessera-app/tessera/store"
)

// resolveCmd flattens a stored prompt and prints the display text. Useful for
// checking what a compound actually renders to without going through the API.
func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <prompt-id>",
		Short: "Resolve a prompt into its display text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := db.Connect(ctx, db.Config{URL: cfg.Database.URL, Timezone: "UTC"})
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			s := store.New(pool)
			text, err := composition.ResolvePrompt(ctx, args[0], s)
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}
}
