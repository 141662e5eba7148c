package commands

import (
	"fmt"
	"os"

	"dominos-uk/lib/dominos"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu <postcode>",
	Short: "Prints the menu of the nearest store that delivers to a postcode.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		postcode := args[0]
		client := newClient()

		store, err := client.GetNearestStore(ctx, postcode)
		if err != nil {
			fail(err)
		}
		if store == nil {
			fmt.Fprintf(os.Stderr, "no store can deliver to %s\n", postcode)
			os.Exit(1)
		}

		err = client.SetDeliverySystem(ctx, store, postcode, dominos.Delivery)
		if err != nil {
			fail(err)
		}
		menu, err := client.GetMenu(ctx, store)
		if err != nil {
			fail(err)
		}

		fmt.Printf("%s (%d products)\n", store.Name, menu.Len())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Type", "Name", "Price"})
		for _, item := range menu.Items() {
			t.AppendRow(table.Row{item.Type, item.Name, item.Price})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
