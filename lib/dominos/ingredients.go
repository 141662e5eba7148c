package dominos

import (
	"encoding/json"
	"strings"
)

// Ingredient is one customisation option for a pizza.
type Ingredient struct {
	ID   int
	Name string
}

// IngredientList holds the ingredients available for one item, size and
// store combination, indexed for case-insensitive name lookup.
type IngredientList struct {
	ingredients []Ingredient
	byName      map[string]Ingredient
}

func (l *IngredientList) Ingredients() []Ingredient {
	return l.ingredients
}

// ByName returns the ingredient with a case-insensitive exact name match.
func (l *IngredientList) ByName(name string) (Ingredient, bool) {
	ingredient, ok := l.byName[strings.ToLower(name)]
	return ingredient, ok
}

// Suggest returns the ingredient name most similar to the given one, or ""
// when nothing comes close.
func (l *IngredientList) Suggest(name string) string {
	var names []string
	for _, ingredient := range l.ingredients {
		names = append(names, ingredient.Name)
	}
	return closestName(name, names)
}

// AddToPizza resolves each name and queues the matching ingredient on the
// item, preserving caller order and duplicates (a repeated name is an extra
// portion). Nothing is queued when any name fails to resolve.
func (l *IngredientList) AddToPizza(item *Item, names ...string) error {
	var ids []int
	for _, name := range names {
		ingredient, ok := l.ByName(name)
		if !ok {
			return &NotFoundError{Kind: "ingredient", Name: name, Suggestion: l.Suggest(name)}
		}
		ids = append(ids, ingredient.ID)
	}
	item.AddIngredients(ids...)
	return nil
}

type ingredientJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// the customisation view model splits ingredients into four groups, the
// lookup index flattens them
type ingredientViewJSON struct {
	HalfOne struct {
		AvailableCrusts   []ingredientJSON `json:"availableCrusts"`
		AvailableCheeses  []ingredientJSON `json:"availableCheeses"`
		AvailableSauces   []ingredientJSON `json:"availableSauces"`
		AvailableToppings []ingredientJSON `json:"availableToppings"`
	} `json:"halfOne"`
}

func decodeIngredientList(body []byte) (*IngredientList, error) {
	var wire ingredientViewJSON
	err := json.Unmarshal(body, &wire)
	if err != nil {
		return nil, err
	}

	groups := [][]ingredientJSON{
		wire.HalfOne.AvailableCrusts,
		wire.HalfOne.AvailableCheeses,
		wire.HalfOne.AvailableSauces,
		wire.HalfOne.AvailableToppings,
	}

	list := &IngredientList{byName: map[string]Ingredient{}}
	for _, group := range groups {
		for _, entry := range group {
			ingredient := Ingredient{ID: entry.ID, Name: stripSymbols(entry.Name)}
			list.ingredients = append(list.ingredients, ingredient)
			key := strings.ToLower(ingredient.Name)
			if _, taken := list.byName[key]; !taken {
				list.byName[key] = ingredient
			}
		}
	}
	return list, nil
}
