package dominos

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"dominos-uk/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("dominos")

const DefaultBaseURL = "https://www.dominos.co.uk"

const xsrfCookie = "XSRF-TOKEN"

type fulfilment struct {
	storeID  string
	method   FulfilmentMethod
	postcode string
}

// Client talks to the Dominos UK website on behalf of a single ordering
// session. It is not safe for concurrent use; see the package documentation
// for the call ordering contract.
type Client struct {
	http *resty.Client

	// session state captured as side effects of earlier calls
	token   string
	journey *fulfilment
}

type ClientOptions struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(timeout)
	client.SetHeader("content-type", "application/json; charset=utf-8")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	// the remote throttles aggressively past roughly five requests a second
	limiter := rate.NewLimiter(5, 5)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "dominos/http")

	return &Client{http: client}, nil
}

// ResetStore clears any store selected on the remote and captures the XSRF
// token that all subsequent mutating calls must carry. It runs implicitly
// before the first store search, calling it again discards the current
// journey.
func (c *Client) ResetStore(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ResetStore")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get("/Store/Reset")
	if err != nil {
		return err
	}
	if err := checkStatus(res); err != nil {
		return err
	}

	token := c.sessionToken(res)
	if token == "" {
		return &PreconditionError{Op: "ResetStore", Reason: "remote issued no " + xsrfCookie + " cookie"}
	}
	c.token = token
	c.http.SetHeader("X-XSRF-TOKEN", token)
	c.journey = nil
	return nil
}

// NewSession expires the current session on the remote and drops all local
// session state. The next call bootstraps a fresh session.
func (c *Client) NewSession(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "NewSession")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get("/Home/SessionExpire")
	if err != nil {
		return err
	}
	if err := checkStatus(res); err != nil {
		return err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	c.http.SetCookieJar(jar)
	c.http.Header.Del("X-XSRF-TOKEN")
	c.token = ""
	c.journey = nil
	return nil
}

// GetStores searches for stores with a generic search term, a town or street
// name rather than a postcode. No match yields an empty slice.
func (c *Client) GetStores(ctx context.Context, searchTerm string) ([]Store, error) {
	ctx, span := tracer.Start(ctx, "GetStores")
	defer span.End()

	list, err := c.searchStores(ctx, searchTerm)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "store search", "term", searchTerm, "matches", len(list.CollectionStores))
	return list.CollectionStores, nil
}

// GetNearestStore resolves a postcode to the single closest store able to
// deliver to it. A nil store without an error means the postcode only
// reaches collection-only stores, or none at all.
func (c *Client) GetNearestStore(ctx context.Context, postcode string) (*Store, error) {
	ctx, span := tracer.Start(ctx, "GetNearestStore")
	defer span.End()

	list, err := c.searchStores(ctx, postcode)
	if err != nil {
		return nil, err
	}
	if list.LocalStore == nil || !list.LocalStore.DeliveryAvailable {
		return nil, nil
	}
	return list.LocalStore, nil
}

func (c *Client) searchStores(ctx context.Context, term string) (*StoreList, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("SearchText", term).
		Get("/storefindermap/storesearch")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return decodeStoreList(res.Body())
}

// SetDeliverySystem initializes the delivery system on the remote, binding
// the session to the given store, postcode and fulfilment method. It must
// succeed before GetMenu or any basket operation is meaningful.
func (c *Client) SetDeliverySystem(ctx context.Context, store *Store, postcode string, method FulfilmentMethod) error {
	ctx, span := tracer.Start(ctx, "SetDeliverySystem")
	defer span.End()

	if store == nil {
		return &ValidationError{Field: "store", Reason: "no store given"}
	}
	if method == Delivery && !store.DeliveryAvailable {
		return &PreconditionError{
			Op:     "SetDeliverySystem",
			Reason: "store " + store.Name + " cannot deliver to " + postcode,
		}
	}
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"fulfilmentMethod": method.String(),
			"postcode":         postcode,
			"storeid":          store.ID,
		}).
		Post("/Journey/Initialize")
	if err != nil {
		return err
	}
	if err := checkStatus(res); err != nil {
		return err
	}

	c.journey = &fulfilment{storeID: store.ID, method: method, postcode: postcode}
	return nil
}

// GetMenu fetches the catalog of the given store. The delivery system must
// have been initialized for the same store first.
func (c *Client) GetMenu(ctx context.Context, store *Store) (*Menu, error) {
	ctx, span := tracer.Start(ctx, "GetMenu")
	defer span.End()

	if store == nil {
		return nil, &ValidationError{Field: "store", Reason: "no store given"}
	}
	if c.journey == nil {
		return nil, &PreconditionError{Op: "GetMenu", Reason: "delivery system not initialized, call SetDeliverySystem first"}
	}
	if c.journey.storeID != store.ID {
		return nil, &PreconditionError{Op: "GetMenu", Reason: "delivery system initialized for a different store"}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"collectionOnly": strconv.FormatBool(!store.DeliveryAvailable),
			"menuVersion":    store.MenuVersion,
			"storeId":        store.ID,
		}).
		Get("/ProductCatalog/GetStoreCatalog")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return decodeMenu(res.Body())
}

// GetAvailableIngredients fetches the ingredients that can be added to or
// removed from the given item, scoped to a size and store.
func (c *Client) GetAvailableIngredients(ctx context.Context, item *Item, variant Variant, store *Store) (*IngredientList, error) {
	ctx, span := tracer.Start(ctx, "GetAvailableIngredients")
	defer span.End()

	if item == nil {
		return nil, &ValidationError{Field: "item", Reason: "no item given"}
	}
	if store == nil {
		return nil, &ValidationError{Field: "store", Reason: "no store given"}
	}
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"isoCode": "en-GB",
			"sizeId":  strconv.Itoa(int(variant)),
			"id":      strconv.Itoa(item.ID),
			"storeId": store.ID,
		}).
		Get("/PizzaCustomisation/PizzaViewModelBySize")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return decodeIngredientList(res.Body())
}

// BasketOptions tunes AddItemToBasket. A zero Quantity means one.
type BasketOptions struct {
	Quantity int
}

// AddItemToBasket appends the item to the session basket. Pizzas honor the
// requested variant and carry the item's pending ingredient changes, sides
// are always added in their personal variant no matter what was asked for.
func (c *Client) AddItemToBasket(ctx context.Context, item *Item, variant Variant, opts BasketOptions) error {
	ctx, span := tracer.Start(ctx, "AddItemToBasket")
	defer span.End()

	if item == nil {
		return &ValidationError{Field: "item", Reason: "no item given"}
	}
	quantity := opts.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if err := c.requireJourney("AddItemToBasket"); err != nil {
		return err
	}

	switch item.Type {
	case ItemTypePizza:
		if !variant.valid() {
			return &ValidationError{Field: "variant", Reason: variant.String() + " is not orderable"}
		}
		return c.addPizza(ctx, item, variant, quantity)
	case ItemTypeSide:
		return c.addSide(ctx, item, quantity)
	}
	return &ValidationError{Field: "item", Reason: "cannot order items of type " + item.Type}
}

func (c *Client) addPizza(ctx context.Context, item *Item, variant Variant, quantity int) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"stepId":             0,
			"quantity":           quantity,
			"sizeId":             int(variant),
			"productId":          item.ID,
			"ingredients":        item.Ingredients(),
			"productIdHalfTwo":   0,
			"ingredientsHalfTwo": []int{},
			"recipeReferrer":     0,
		}).
		Post("/Basket/AddPizza")
	if err != nil {
		return err
	}
	return checkStatus(res)
}

func (c *Client) addSide(ctx context.Context, item *Item, quantity int) error {
	sku, ok := item.SKU(Personal)
	if !ok {
		return &ValidationError{Field: "item", Reason: item.Name + " has no personal variant"}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"productSkuId":       sku.ProductSkuID,
			"quantity":           quantity,
			"ComplimentaryItems": []int{},
		}).
		Post("/Basket/AddProduct")
	if err != nil {
		return err
	}
	return checkStatus(res)
}

// RemoveItemFromBasket removes one basket entry by its basket item id, as
// reported by GetBasket.
func (c *Client) RemoveItemFromBasket(ctx context.Context, basketItemID int) error {
	ctx, span := tracer.Start(ctx, "RemoveItemFromBasket")
	defer span.End()

	if err := c.requireJourney("RemoveItemFromBasket"); err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"basketItemId":     basketItemID,
			"wizardItemDelete": false,
		}).
		Post("/Basket/RemoveBasketItem")
	if err != nil {
		return err
	}
	return checkStatus(res)
}

// GetBasket fetches a snapshot of the session basket.
func (c *Client) GetBasket(ctx context.Context) (*Basket, error) {
	ctx, span := tracer.Start(ctx, "GetBasket")
	defer span.End()

	if err := c.requireJourney("GetBasket"); err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get("/CheckoutBasket/GetBasket")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return decodeBasket(res.Body())
}

// SetPaymentMethod selects how the order will be paid for.
func (c *Client) SetPaymentMethod(ctx context.Context, method PaymentMethod) error {
	ctx, span := tracer.Start(ctx, "SetPaymentMethod")
	defer span.End()

	if err := c.requireJourney("SetPaymentMethod"); err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"paymentMethod": int(method)}).
		Post("/PaymentOptions/SetPaymentMethod")
	if err != nil {
		return err
	}
	return checkStatus(res)
}

// ProcessPayment submits the order with the payment method selected earlier.
func (c *Client) ProcessPayment(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ProcessPayment")
	defer span.End()

	if err := c.requireJourney("ProcessPayment"); err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"method": "submit"}).
		Post("/PaymentOptions/Proceed")
	if err != nil {
		return err
	}
	return checkStatus(res)
}

func (c *Client) ensureSession(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	return c.ResetStore(ctx)
}

func (c *Client) requireJourney(op string) error {
	if c.token == "" {
		return &PreconditionError{Op: op, Reason: "no session token, search for a store first"}
	}
	if c.journey == nil {
		return &PreconditionError{Op: op, Reason: "delivery system not initialized, call SetDeliverySystem first"}
	}
	return nil
}

func (c *Client) sessionToken(res *resty.Response) string {
	for _, cookie := range res.Cookies() {
		if cookie.Name == xsrfCookie {
			return cookie.Value
		}
	}
	// the CDN occasionally sets the cookie on a redirect hop, in which case
	// it only shows up in the jar
	for _, cookie := range c.http.GetClient().Jar.Cookies(res.RawResponse.Request.URL) {
		if cookie.Name == xsrfCookie {
			return cookie.Value
		}
	}
	return ""
}

func checkStatus(res *resty.Response) error {
	if res.StatusCode() == http.StatusOK {
		return nil
	}
	return &StatusError{Code: res.StatusCode(), URL: res.Request.URL}
}
