package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the zip cache table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.container.SQLStore()
			if store == nil {
				return fmt.Errorf("migrate needs a SQL driver, got %q", a.container.Config().Database.Driver)
			}

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}
			n, err := store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "zip_cache_entries ready, %d entries\n", n)
			return nil
		},
		Annotations: needsContainer,
	}
}
