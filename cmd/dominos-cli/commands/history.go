package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyItems bool
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of orders to show")
	historyCmd.Flags().BoolVar(&historyItems, "items", false, "show the basket lines of each order")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Prints previously recorded orders.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := openOrderLog()
		defer log.Close()

		entries, err := log.Recent(ctx, historyLimit)
		if err != nil {
			fail(err)
		}
		if len(entries) == 0 {
			fmt.Println("no orders recorded")
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Store", "Postcode", "Total", "Placed"})
		for _, entry := range entries {
			t.AppendRow(table.Row{
				entry.ID, entry.StoreName, entry.Postcode, entry.Total,
				entry.PlacedAt.Local().Format(time.DateTime),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if !historyItems {
			return
		}
		for _, entry := range entries {
			items, err := log.Items(ctx, entry.ID)
			if err != nil {
				fail(err)
			}
			fmt.Printf("order %d:\n", entry.ID)
			for _, item := range items {
				fmt.Printf("  %dx %s (%s) %s\n", item.Quantity, item.Name, item.SizeID, item.Price)
			}
		}
	},
}
