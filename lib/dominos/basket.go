package dominos

import "encoding/json"

// BasketItem is one line of the session basket, in insertion order.
type BasketItem struct {
	BasketItemID int     `json:"basketItemId"`
	ProductID    int     `json:"productId"`
	Name         string  `json:"name"`
	SizeID       Variant `json:"sizeId"`
	Quantity     int     `json:"quantity"`
	Price        string  `json:"price"`
}

// Basket mirrors the server-side cart for the current session.
type Basket struct {
	TotalPrice string       `json:"totalPrice"`
	Items      []BasketItem `json:"items"`
}

func decodeBasket(body []byte) (*Basket, error) {
	var basket Basket
	err := json.Unmarshal(body, &basket)
	if err != nil {
		return nil, err
	}
	return &basket, nil
}
