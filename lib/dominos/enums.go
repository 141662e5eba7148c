package dominos

import "fmt"

// Variant selects the size of a product, it doubles as the wire sizeId.
type Variant int

const (
	Personal Variant = iota
	Small
	Medium
	Large
)

func (v Variant) String() string {
	switch v {
	case Personal:
		return "personal"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

func (v Variant) valid() bool {
	return v >= Personal && v <= Large
}

// ParseVariant maps a human readable size name to a Variant.
func ParseVariant(s string) (Variant, error) {
	for v := Personal; v <= Large; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, &ValidationError{Field: "variant", Reason: fmt.Sprintf("unknown size %q", s)}
}

// FulfilmentMethod determines how the order will reach the customer, it is
// fixed for the session by SetDeliverySystem.
type FulfilmentMethod int

const (
	Collection FulfilmentMethod = iota
	Delivery
)

func (m FulfilmentMethod) String() string {
	if m == Collection {
		return "collection"
	}
	return "delivery"
}

// PaymentMethod is the checkout payment selector.
type PaymentMethod int

const (
	CashOnDelivery PaymentMethod = 0
	Card           PaymentMethod = 1
	PayPal         PaymentMethod = 2
	VisaCheckout   PaymentMethod = 4
)
