package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/status-im/coin-browser/coinranking"
	"github.com/status-im/coin-browser/listing"
)

type listFlags struct {
	pages     int
	sortBy    string
	desc      bool
	favorites bool
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch pages of coins and print them as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			var field listing.SortField
			if flags.sortBy != "" {
				var err error
				if field, err = listing.ParseSortField(flags.sortBy); err != nil {
					return err
				}
			}

			app, err := startApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer app.Registry.StopAll()

			engine := app.Listing
			for i := 0; i < flags.pages; i++ {
				if err := engine.FetchNextPage(cmd.Context()); err != nil && !errors.Is(err, coinranking.ErrStaleResponse) {
					if len(engine.Coins()) == 0 {
						return errors.New(engine.ErrorMessage())
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "stopped after %d page(s): %s\n", i, engine.ErrorMessage())
					break
				}
			}

			if field != listing.SortNone {
				engine.Sort(field, !flags.desc)
			}

			coins := engine.DisplayedCoins()
			if flags.favorites {
				coins = engine.FavoriteCoins()
			}
			renderCoins(cmd.OutOrStdout(), coins, engine.IsFavorite)
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "", "sort by price, change or name")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort in descending order")
	cmd.Flags().BoolVar(&flags.favorites, "favorites", false, "only show favorite coins")
	return cmd
}
