package dominos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testToken = "xsrf-test-token"

// fakeRemote mimics the session behavior of the live website: it issues the
// XSRF token on /Store/Reset, refuses mutating calls without it, and keeps
// basket state per server instance.
type fakeRemote struct {
	t *testing.T

	journeyStoreID string
	journeyMethod  string
	basket         []fakeBasketLine
	nextBasketID   int

	lastPizzaIngredients []int
	paymentMethod        int
	paid                 bool
}

type fakeBasketLine struct {
	BasketItemID int    `json:"basketItemId"`
	ProductID    int    `json:"productId"`
	Name         string `json:"name"`
	SizeID       int    `json:"sizeId"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
}

func newTestClient(t *testing.T) (*fakeRemote, *Client) {
	remote := &fakeRemote{t: t, nextBasketID: 1}
	server := httptest.NewServer(remote)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)
	return remote, client
}

const fakeMenu = `[
	{"subcategories": [{"products": [
		{
			"productId": 101, "name": "Margherita", "price": "£11.99", "type": "Pizza",
			"productSkus": [
				{"productSkuId": 5101, "ingredients": [50, 51]},
				{"productSkuId": 5102, "ingredients": [50, 51]},
				{"productSkuId": 5103, "ingredients": [50, 51]},
				{"productSkuId": 5104, "ingredients": [50, 51]}
			]
		},
		{
			"productId": 102, "name": "Vegi Supreme™", "price": "£13.99", "type": "Pizza",
			"productSkus": [
				{"productSkuId": 5111, "ingredients": [50, 51, 60, 61]},
				{"productSkuId": 5112, "ingredients": [50, 51, 60, 61]},
				{"productSkuId": 5113, "ingredients": [50, 51, 60, 61]},
				{"productSkuId": 5114, "ingredients": [50, 51, 60, 61]}
			]
		}
	]}]},
	{"subcategories": [{"products": [
		{
			"productId": 201, "name": "Potato Wedges", "price": "£4.49", "type": "Side",
			"productSkus": [{"productSkuId": 5201, "ingredients": []}]
		},
		{
			"productId": 202, "name": "Cola", "price": "£2.49", "type": "Drink",
			"productSkus": [{"productSkuId": 5202, "ingredients": []}]
		}
	]}]}
]`

const fakeIngredients = `{
	"halfOne": {
		"availableCrusts": [{"id": 1, "name": "Classic Crust"}],
		"availableCheeses": [{"id": 42, "name": "Mozzarella"}],
		"availableSauces": [{"id": 36, "name": "Tomato Sauce"}],
		"availableToppings": [
			{"id": 124, "name": "Mushrooms"},
			{"id": 125, "name": "Onions"},
			{"id": 126, "name": "Sweetcorn™"}
		]
	}
}`

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/Store/Reset":
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: testToken, Path: "/"})
	case "/Home/SessionExpire":
		f.journeyStoreID = ""
		f.journeyMethod = ""
		f.basket = nil
	case "/storefindermap/storesearch":
		f.storeSearch(w, r)
	case "/Journey/Initialize":
		f.initializeJourney(w, r)
	case "/ProductCatalog/GetStoreCatalog":
		if !f.requireJourney(w) {
			return
		}
		fmt.Fprint(w, fakeMenu)
	case "/PizzaCustomisation/PizzaViewModelBySize":
		fmt.Fprint(w, fakeIngredients)
	case "/Basket/AddPizza":
		f.addPizza(w, r)
	case "/Basket/AddProduct":
		f.addProduct(w, r)
	case "/Basket/RemoveBasketItem":
		f.removeBasketItem(w, r)
	case "/CheckoutBasket/GetBasket":
		f.getBasket(w, r)
	case "/PaymentOptions/SetPaymentMethod":
		if !f.requireToken(w, r) || !f.requireJourney(w) {
			return
		}
		var body struct {
			PaymentMethod int `json:"paymentMethod"`
		}
		f.decode(r, &body)
		f.paymentMethod = body.PaymentMethod
	case "/PaymentOptions/Proceed":
		if !f.requireToken(w, r) || !f.requireJourney(w) {
			return
		}
		f.paid = true
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeRemote) storeSearch(w http.ResponseWriter, r *http.Request) {
	camden := map[string]any{
		"id": "s1", "name": "Camden", "isOpen": true,
		"isCollectionAvailable": true, "menuVersion": "v42",
	}
	clerkenwell := map[string]any{
		"id": "s2", "name": "Clerkenwell", "isOpen": true,
		"isCollectionAvailable": true, "menuVersion": "v17",
	}
	headingley := map[string]any{
		"id": "s3", "name": "Headingley", "isOpen": false,
		"isCollectionAvailable": true, "menuVersion": "v11",
	}

	var response map[string]any
	switch r.URL.Query().Get("SearchText") {
	case "NW1 2AS":
		response = map[string]any{
			"localStore":                    camden,
			"localStoreCanDeliverToAddress": true,
			"collectionStores":              []any{camden},
		}
	case "EC1 0AA":
		// the closest store exists but will not deliver to this address
		response = map[string]any{
			"localStore":                    clerkenwell,
			"localStoreCanDeliverToAddress": false,
			"collectionStores":              []any{clerkenwell},
		}
	case "leeds":
		response = map[string]any{
			"collectionStores": []any{clerkenwell, headingley},
		}
	default:
		response = map[string]any{}
	}
	f.encode(w, response)
}

func (f *fakeRemote) initializeJourney(w http.ResponseWriter, r *http.Request) {
	if !f.requireToken(w, r) {
		return
	}
	var body struct {
		FulfilmentMethod string `json:"fulfilmentMethod"`
		Postcode         string `json:"postcode"`
		StoreID          string `json:"storeid"`
	}
	f.decode(r, &body)
	if body.StoreID == "" {
		http.Error(w, "missing storeid", http.StatusBadRequest)
		return
	}
	f.journeyStoreID = body.StoreID
	f.journeyMethod = body.FulfilmentMethod
}

func (f *fakeRemote) addPizza(w http.ResponseWriter, r *http.Request) {
	if !f.requireToken(w, r) || !f.requireJourney(w) {
		return
	}
	var body struct {
		Quantity    int   `json:"quantity"`
		SizeID      int   `json:"sizeId"`
		ProductID   int   `json:"productId"`
		Ingredients []int `json:"ingredients"`
	}
	f.decode(r, &body)

	f.lastPizzaIngredients = body.Ingredients
	names := map[int]string{101: "Margherita", 102: "Vegi Supreme"}
	f.appendLine(fakeBasketLine{
		ProductID: body.ProductID,
		Name:      names[body.ProductID],
		SizeID:    body.SizeID,
		Quantity:  body.Quantity,
		Price:     "£11.99",
	})
}

func (f *fakeRemote) addProduct(w http.ResponseWriter, r *http.Request) {
	if !f.requireToken(w, r) || !f.requireJourney(w) {
		return
	}
	var body struct {
		ProductSkuID int `json:"productSkuId"`
		Quantity     int `json:"quantity"`
	}
	f.decode(r, &body)

	products := map[int]fakeBasketLine{
		5201: {ProductID: 201, Name: "Potato Wedges", Price: "£4.49"},
		5202: {ProductID: 202, Name: "Cola", Price: "£2.49"},
	}
	line, ok := products[body.ProductSkuID]
	if !ok {
		http.Error(w, "unknown sku", http.StatusBadRequest)
		return
	}
	line.SizeID = 0
	line.Quantity = body.Quantity
	f.appendLine(line)
}

func (f *fakeRemote) removeBasketItem(w http.ResponseWriter, r *http.Request) {
	if !f.requireToken(w, r) || !f.requireJourney(w) {
		return
	}
	var body struct {
		BasketItemID int `json:"basketItemId"`
	}
	f.decode(r, &body)

	for idx, line := range f.basket {
		if line.BasketItemID == body.BasketItemID {
			f.basket = append(f.basket[:idx], f.basket[idx+1:]...)
			return
		}
	}
	http.Error(w, "no such basket item", http.StatusBadRequest)
}

func (f *fakeRemote) getBasket(w http.ResponseWriter, r *http.Request) {
	if !f.requireToken(w, r) || !f.requireJourney(w) {
		return
	}
	items := []any{}
	for _, line := range f.basket {
		items = append(items, line)
	}
	f.encode(w, map[string]any{
		"totalPrice": fmt.Sprintf("£%d.00", len(f.basket)*10),
		"items":      items,
	})
}

func (f *fakeRemote) appendLine(line fakeBasketLine) {
	line.BasketItemID = f.nextBasketID
	f.nextBasketID++
	f.basket = append(f.basket, line)
}

func (f *fakeRemote) requireToken(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-XSRF-TOKEN") != testToken {
		http.Error(w, "missing xsrf token", http.StatusForbidden)
		return false
	}
	return true
}

func (f *fakeRemote) requireJourney(w http.ResponseWriter) bool {
	if f.journeyStoreID == "" {
		http.Error(w, "journey not initialized", http.StatusPreconditionFailed)
		return false
	}
	return true
}

func (f *fakeRemote) decode(r *http.Request, out any) {
	err := json.NewDecoder(r.Body).Decode(out)
	require.NoError(f.t, err)
}

func (f *fakeRemote) encode(w http.ResponseWriter, v any) {
	err := json.NewEncoder(w).Encode(v)
	require.NoError(f.t, err)
}
