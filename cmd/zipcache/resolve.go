package main

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-zipcache/zipcache"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type resolveResult struct {
	ZipCode string                  `json:"zip_code"`
	Address *zipcache.AddressFields `json:"address,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func newResolveCmd(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "resolve <zip-code>...",
		Short: "Resolve one or more postal codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolver := a.container.Resolver()
			results := make([]resolveResult, len(args))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i, code := range args {
				g.Go(func() error {
					results[i] = resolveResult{ZipCode: code}
					entry, err := resolver.Resolve(gctx, code)
					if err != nil {
						results[i].Error = err.Error()
						// an unavailable store fails every other lookup too
						if zipcache.IsUnavailable(err) {
							return err
						}
						return nil
					}
					fields := entry.Fields()
					results[i].Address = &fields
					return nil
				})
			}
			groupErr := g.Wait()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}

			if groupErr != nil {
				return groupErr
			}
			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d zip codes could not be resolved", failed, len(results))
			}
			return nil
		},
		Annotations: needsContainer,
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "maximum concurrent resolutions")
	return cmd
}
