package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Insert known addresses from a JSON array",
		Long: `seed reads a JSON array of addresses ({"zip_code", "street", "city", "region",
  "neighborhood"}) and inserts the ones that are not cached yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var entries []zipcache.AddressFields
			if err := json.Unmarshal(data, &entries); err != nil {
				return errors.Wrap(err, errors.CategoryBadInput, "seed file is not a JSON array of addresses").
					WithMetadata(map[string]any{"path": args[0]})
			}

			n, err := a.container.Resolver().Seed(cmd.Context(), entries...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d entries\n", n, len(entries))
			return nil
		},
		Annotations: needsContainer,
	}
}
