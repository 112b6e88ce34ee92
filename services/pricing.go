package services

import "github.com/shopspring/decimal"

// Pricing policy constants. Orders above the threshold ship free;
// everything else pays the flat fee. Tax is a single flat rate.
var (
	freeShippingThreshold = decimal.NewFromInt(1500)
	flatShippingFee       = decimal.NewFromInt(99)
	taxRate               = decimal.NewFromFloat(0.18)
)

// Quote is the priced breakdown of an order.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// PriceOrder computes shipping, tax and total for a cart subtotal.
func PriceOrder(subtotal decimal.Decimal) Quote {
	shipping := flatShippingFee
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
