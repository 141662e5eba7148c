package commands

import (
	"fmt"
	"os"
	"strings"

	"dominos-uk/lib/dominos"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	orderSize       string
	orderQuantity   int
	orderToppings   []string
	orderCollection bool
	orderCheckout   bool
)

func init() {
	orderCmd.Flags().StringVar(&orderSize, "size", "medium", "pizza size: personal, small, medium or large")
	orderCmd.Flags().IntVar(&orderQuantity, "quantity", 1, "how many to add")
	orderCmd.Flags().StringArrayVar(&orderToppings, "topping", nil, "extra topping by name, repeatable")
	orderCmd.Flags().BoolVar(&orderCollection, "collection", false, "collect from the closest store instead of delivery")
	orderCmd.Flags().BoolVar(&orderCheckout, "checkout", false, "submit the order, cash on delivery")
	rootCmd.AddCommand(orderCmd)
}

var orderCmd = &cobra.Command{
	Use:   "order <postcode> <product name>",
	Short: "Adds a product to a fresh basket for the given postcode.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		postcode := args[0]
		name := strings.Join(args[1:], " ")

		size, err := dominos.ParseVariant(orderSize)
		if err != nil {
			fail(err)
		}

		client := newClient()
		method := dominos.Delivery
		var store *dominos.Store
		if orderCollection {
			method = dominos.Collection
			stores, err := client.GetStores(ctx, postcode)
			if err != nil {
				fail(err)
			}
			if len(stores) == 0 {
				fmt.Fprintf(os.Stderr, "no store near %s\n", postcode)
				os.Exit(1)
			}
			store = &stores[0]
		} else {
			store, err = client.GetNearestStore(ctx, postcode)
			if err != nil {
				fail(err)
			}
			if store == nil {
				fmt.Fprintf(os.Stderr, "no store can deliver to %s\n", postcode)
				os.Exit(1)
			}
		}

		err = client.SetDeliverySystem(ctx, store, postcode, method)
		if err != nil {
			fail(err)
		}
		menu, err := client.GetMenu(ctx, store)
		if err != nil {
			fail(err)
		}

		item, ok := menu.ProductByName(name)
		if !ok {
			if suggestion := menu.Suggest(name); suggestion != "" {
				fail(fmt.Errorf("%q is not on the menu, did you mean %q?", name, suggestion))
			}
			fail(fmt.Errorf("%q is not on the menu", name))
		}

		if len(orderToppings) > 0 {
			ingredients, err := client.GetAvailableIngredients(ctx, item, size, store)
			if err != nil {
				fail(err)
			}
			err = ingredients.AddToPizza(item, orderToppings...)
			if err != nil {
				fail(err)
			}
		}

		err = client.AddItemToBasket(ctx, item, size, dominos.BasketOptions{Quantity: orderQuantity})
		if err != nil {
			fail(err)
		}
		basket, err := client.GetBasket(ctx)
		if err != nil {
			fail(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Size", "Qty", "Price"})
		for _, line := range basket.Items {
			t.AppendRow(table.Row{line.Name, line.SizeID, line.Quantity, line.Price})
		}
		t.AppendFooter(table.Row{"", "", "Total", basket.TotalPrice})
		t.SetStyle(table.StyleRounded)
		t.Render()

		log := openOrderLog()
		defer log.Close()
		_, err = log.Record(ctx, store, postcode, basket)
		if err != nil {
			fail(err)
		}

		if orderCheckout {
			err = client.SetPaymentMethod(ctx, dominos.CashOnDelivery)
			if err != nil {
				fail(err)
			}
			err = client.ProcessPayment(ctx)
			if err != nil {
				fail(err)
			}
			fmt.Println("order submitted, cash on delivery")
		}
	},
}
