package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(storesCmd)
}

var storesCmd = &cobra.Command{
	Use:   "stores <search term>",
	Short: "Searches for stores by town or street name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		stores, err := client.GetStores(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			fail(err)
		}
		if len(stores) == 0 {
			fmt.Println("no stores found")
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Open", "Collection"})
		for _, s := range stores {
			t.AppendRow(table.Row{s.ID, s.Name, s.IsOpen, s.CollectionAvailable})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
