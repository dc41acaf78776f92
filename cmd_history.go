package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/status-im/coin-browser/coinranking"
	"github.com/status-im/coin-browser/core"
	"github.com/status-im/coin-browser/detail"
)

func newHistoryCmd(root *rootFlags) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "history <coin-id>",
		Short: "Print the price history and stats of a coin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer app.Registry.StopAll()

			coin := coinranking.Coin{ID: args[0], Name: args[0], Sparkline: []string{}}
			// the listing knows more about the coin when it is on the first page
			if err := app.Listing.FetchNextPage(cmd.Context()); err == nil {
				for _, c := range app.Listing.Coins() {
					if c.ID == coin.ID {
						coin = c
						break
					}
				}
			}

			engine := detail.NewEngine(coin, app.Repository, app.Favorites.Contains(coin.ID), toggleFavorite(app), app.Logger)

			if err := engine.FetchHistory(cmd.Context(), period); err != nil {
				return fmt.Errorf("%s", engine.ErrorMessage())
			}

			renderDetail(cmd.OutOrStdout(), engine.Snapshot())
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", string(coinranking.DefaultPeriod), "one of 1h, 3h, 12h, 24h, 7d, 30d, 3m, 1y, 3y, 5y")
	return cmd
}

// toggleFavorite toggles in the app's favorites store and logs failures
func toggleFavorite(app *core.App) detail.ToggleFunc {
	return func(id string) (bool, error) {
		isFavorite, err := app.Favorites.Toggle(id)
		if err != nil {
			app.Logger.Warn("failed to toggle favorite", zap.String("coin_id", id), zap.Error(err))
		}
		return isFavorite, err
	}
}

func newFavoriteCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <coin-id>",
		Short: "Toggle a coin in the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer app.Registry.StopAll()

			isFavorite, err := toggleFavorite(app)(args[0])
			if err != nil {
				return err
			}
			if isFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "%s added to favorites\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", args[0])
			}
			return nil
		},
	}
}
