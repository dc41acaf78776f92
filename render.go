package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/status-im/coin-browser/coinranking"
	"github.com/status-im/coin-browser/detail"
)

func renderCoins(w io.Writer, coins []coinranking.Coin, isFavorite func(id string) bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Symbol", "Price", "24h %", "Fav"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoWrapText(false)

	for i, coin := range coins {
		fav := ""
		if isFavorite(coin.ID) {
			fav = "*"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			coin.Name,
			coin.Symbol,
			coin.PriceValue().StringFixed(2),
			coin.ChangeValue().StringFixed(2),
			fav,
		})
	}

	table.Render()
}

func renderDetail(w io.Writer, snapshot detail.Snapshot) {
	fmt.Fprintf(w, "%s (%s) over %s\n", snapshot.Coin.Name, snapshot.Coin.Symbol, snapshot.SelectedPeriod)

	stats := snapshot.Stats
	rank := detail.NotAvailable
	if stats.Rank != nil {
		rank = strconv.Itoa(*stats.Rank)
	}
	listed := detail.NotAvailable
	if stats.ListingDate != nil {
		listed = stats.ListingDate.Format("2006-01-02")
	}

	summary := tablewriter.NewWriter(w)
	summary.SetColumnSeparator("")
	summary.SetBorder(false)
	summary.AppendBulk([][]string{
		{"High", strconv.FormatFloat(stats.High24h, 'f', 2, 64)},
		{"Low", strconv.FormatFloat(stats.Low24h, 'f', 2, 64)},
		{"Rank", rank},
		{"Volume 24h", stats.Volume24h},
		{"Market cap", stats.MarketCap},
		{"BTC price", stats.BtcPrice},
		{"Listed", listed},
	})
	summary.Render()

	history := tablewriter.NewWriter(w)
	history.SetHeader([]string{"Time", "Price"})
	for _, point := range snapshot.History {
		history.Append([]string{
			point.Time().UTC().Format(time.RFC3339),
			point.PriceValue().StringFixed(2),
		})
	}
	history.Render()
}
