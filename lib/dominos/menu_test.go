package dominos

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMenuLookup(t *testing.T) {
	menu, err := decodeMenu([]byte(fakeMenu))
	require.NoError(t, err)
	require.Equal(t, 4, menu.Len())

	upper, ok := menu.ProductByName("POTATO WEDGES")
	require.True(t, ok)
	lower, ok := menu.ProductByName("potato wedges")
	require.True(t, ok)
	require.Same(t, upper, lower)
	require.Equal(t, 201, upper.ID)

	_, ok = menu.ProductByName("garlic bread")
	require.False(t, ok)

	byID, ok := menu.ProductByID(101)
	require.True(t, ok)
	require.Equal(t, "Margherita", byID.Name)
	_, ok = menu.ProductByID(999)
	require.False(t, ok)
}

func TestMenuStripsTrademarkGlyphs(t *testing.T) {
	menu, err := decodeMenu([]byte(fakeMenu))
	require.NoError(t, err)

	item, ok := menu.ProductByName("vegi supreme")
	require.True(t, ok)
	require.Equal(t, "Vegi Supreme", item.Name)
}

func TestMenuSuggest(t *testing.T) {
	menu, err := decodeMenu([]byte(fakeMenu))
	require.NoError(t, err)

	require.Equal(t, "Margherita", menu.Suggest("margarita"))
	require.Equal(t, "", menu.Suggest("sushi platter"))
}

func TestItemIngredientMutation(t *testing.T) {
	item := &Item{
		ID:   101,
		Type: ItemTypePizza,
		skus: []SKU{{ProductSkuID: 5101, Ingredients: []int{50, 51}}},
	}

	// a repeated id is an extra portion, not an error
	item.AddIngredients(124, 124)
	item.AddIngredients(125)
	diff := cmp.Diff([]int{36, 42, 50, 51, 124, 124, 125}, item.Ingredients())
	require.Empty(t, diff)

	// each queued removal strips a single occurrence
	item.RemoveIngredients(124)
	diff = cmp.Diff([]int{36, 42, 50, 51, 124, 125}, item.Ingredients())
	require.Empty(t, diff)

	// removing an ingredient that is not on the pizza changes nothing
	item.RemoveIngredients(999)
	diff = cmp.Diff([]int{36, 42, 50, 51, 124, 125}, item.Ingredients())
	require.Empty(t, diff)
}

func TestItemSKU(t *testing.T) {
	menu, err := decodeMenu([]byte(fakeMenu))
	require.NoError(t, err)

	pizza, _ := menu.ProductByName("margherita")
	sku, ok := pizza.SKU(Large)
	require.True(t, ok)
	require.Equal(t, 5104, sku.ProductSkuID)

	wedges, _ := menu.ProductByName("potato wedges")
	_, ok = wedges.SKU(Large)
	require.False(t, ok)
	sku, ok = wedges.SKU(Personal)
	require.True(t, ok)
	require.Equal(t, 5201, sku.ProductSkuID)
}
