package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceOrderBelowFreeShippingThreshold(t *testing.T) {
	quote := PriceOrder(decimal.NewFromInt(1200))

	assert.True(t, quote.Shipping.Equal(decimal.NewFromInt(99)), "shipping %s", quote.Shipping)
	assert.True(t, quote.Tax.Equal(decimal.NewFromInt(216)), "tax %s", quote.Tax)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(1515)), "total %s", quote.Total)
}

func TestPriceOrderAboveFreeShippingThreshold(t *testing.T) {
	quote := PriceOrder(decimal.NewFromInt(1600))

	assert.True(t, quote.Shipping.IsZero(), "shipping %s", quote.Shipping)
	assert.True(t, quote.Tax.Equal(decimal.NewFromInt(288)), "tax %s", quote.Tax)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(1888)), "total %s", quote.Total)
}

func TestPriceOrderThresholdIsExclusive(t *testing.T) {
	// Exactly at the threshold still pays the flat fee.
	quote := PriceOrder(decimal.NewFromInt(1500))

	assert.True(t, quote.Shipping.Equal(decimal.NewFromInt(99)), "shipping %s", quote.Shipping)
}

func TestPriceOrderFractionalSubtotal(t *testing.T) {
	quote := PriceOrder(decimal.RequireFromString("999.50"))

	assert.True(t, quote.Tax.Equal(decimal.RequireFromString("179.91")), "tax %s", quote.Tax)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1278.41")), "total %s", quote.Total)
}
