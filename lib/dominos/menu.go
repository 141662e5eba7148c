package dominos

import (
	"encoding/json"
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	ItemTypePizza = "Pizza"
	ItemTypeSide  = "Side"
)

// ids 36 and 42 are the tomato sauce and mozzarella baked into every
// standard UK recipe
var pizzaBase = []int{36, 42}

// SKU is one orderable variant of an Item.
type SKU struct {
	ProductSkuID int
	Ingredients  []int
}

// Item is a single product on a store's menu. Pizzas additionally carry a
// mutable list of pending ingredient changes that AddItemToBasket applies.
type Item struct {
	ID    int
	Name  string
	Price string
	Type  string

	skus      []SKU
	additions []int
	removals  []int
}

// SKU returns the item's variant for the given size.
func (i *Item) SKU(v Variant) (SKU, bool) {
	if int(v) < 0 || int(v) >= len(i.skus) {
		return SKU{}, false
	}
	return i.skus[v], true
}

// AddIngredients queues ingredient additions in argument order. Passing the
// same id twice means an extra portion of that ingredient, duplicates are
// kept.
func (i *Item) AddIngredients(ids ...int) {
	i.additions = append(i.additions, ids...)
}

// RemoveIngredients queues ingredient removals, symmetric to
// AddIngredients: each queued id strips one occurrence from the recipe.
func (i *Item) RemoveIngredients(ids ...int) {
	i.removals = append(i.removals, ids...)
}

// Ingredients resolves the recipe that would be ordered right now: the
// pizza base, the default ingredients of the smallest variant, then the
// queued additions, minus one occurrence per queued removal.
func (i *Item) Ingredients() []int {
	var ids []int
	ids = append(ids, pizzaBase...)
	if len(i.skus) > 0 {
		ids = append(ids, i.skus[0].Ingredients...)
	}
	ids = append(ids, i.additions...)
	for _, id := range i.removals {
		ids = removeOne(ids, id)
	}
	return ids
}

func removeOne(ids []int, id int) []int {
	for idx, have := range ids {
		if have == id {
			return append(ids[:idx], ids[idx+1:]...)
		}
	}
	return ids
}

// Menu is the catalog of one store. Name lookups are case-insensitive exact
// matches over an index built once at decode time.
type Menu struct {
	items  []*Item
	byName map[string]*Item
}

func (m *Menu) Items() []*Item {
	return m.items
}

func (m *Menu) Len() int {
	return len(m.items)
}

// ProductByID returns the item with the given product id.
func (m *Menu) ProductByID(id int) (*Item, bool) {
	for _, item := range m.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// ProductByName returns the first item whose name matches case
// insensitively. The name has to be spelled correctly; when it is not,
// Suggest gives the closest candidate.
func (m *Menu) ProductByName(name string) (*Item, bool) {
	item, ok := m.byName[strings.ToLower(name)]
	return item, ok
}

// Suggest returns the menu name most similar to the given one, or "" when
// nothing comes close.
func (m *Menu) Suggest(name string) string {
	var names []string
	for _, item := range m.items {
		names = append(names, item.Name)
	}
	return closestName(name, names)
}

func closestName(name string, candidates []string) string {
	var best string
	var bestSimilarity float64
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(candidate), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = candidate
		}
	}
	if bestSimilarity < 0.8 {
		return ""
	}
	return best
}

type skuJSON struct {
	ProductSkuID int   `json:"productSkuId"`
	Ingredients  []int `json:"ingredients"`
}

type itemJSON struct {
	ProductID   int       `json:"productId"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Type        string    `json:"type"`
	ProductSkus []skuJSON `json:"productSkus"`
}

type menuCategoryJSON struct {
	Subcategories []struct {
		Products []itemJSON `json:"products"`
	} `json:"subcategories"`
}

func decodeMenu(body []byte) (*Menu, error) {
	var wire []menuCategoryJSON
	err := json.Unmarshal(body, &wire)
	if err != nil {
		return nil, err
	}

	menu := &Menu{byName: map[string]*Item{}}
	for _, category := range wire {
		for _, subcategory := range category.Subcategories {
			for _, product := range subcategory.Products {
				item := &Item{
					ID:    product.ProductID,
					Name:  stripSymbols(product.Name),
					Price: product.Price,
					Type:  product.Type,
				}
				for _, sku := range product.ProductSkus {
					item.skus = append(item.skus, SKU{
						ProductSkuID: sku.ProductSkuID,
						Ingredients:  sku.Ingredients,
					})
				}

				menu.items = append(menu.items, item)
				key := strings.ToLower(item.Name)
				if _, taken := menu.byName[key]; !taken {
					menu.byName[key] = item
				}
			}
		}
	}
	return menu, nil
}

// product names come with trademark glyphs attached, drop anything outside
// ascii
func stripSymbols(name string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, name)
}
