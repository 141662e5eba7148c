// Package dominos is a client for the unofficial Dominos UK ordering API.
//
// The remote API is session oriented. A session is bootstrapped by
// /Store/Reset, which issues the XSRF token every mutating call must carry,
// and /Journey/Initialize binds the session to a store and fulfilment method
// before the catalog or basket endpoints mean anything. Calls therefore have
// to happen in order, one at a time, against a single Client per ordering
// session:
//
//	client, _ := dominos.NewClient(dominos.ClientOptions{})
//	store, _ := client.GetNearestStore(ctx, "NW1 2AS")
//	_ = client.SetDeliverySystem(ctx, store, "NW1 2AS", dominos.Delivery)
//	menu, _ := client.GetMenu(ctx, store)
//	wedges, _ := menu.ProductByName("potato wedges")
//	_ = client.AddItemToBasket(ctx, wedges, dominos.Large, dominos.BasketOptions{Quantity: 2})
//	basket, _ := client.GetBasket(ctx)
//
// Bind every result to a name before feeding it into the next call; the
// server mutates session state as a side effect of each request, so
// chaining calls inside a single expression is not supported. A Client is
// not safe for concurrent use, use one Client per ordering session.
package dominos
