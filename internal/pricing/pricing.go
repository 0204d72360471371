// Package pricing computes a cart's derived monetary values. It performs no
// I/O; the cart engine calls it after every line or coupon mutation, before
// persisting the cart.
package pricing

import (
	"github.com/carzuiliam/shopping-api/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Carts with at least this many lines ship for free regardless of subtotal.
const freeShippingLineCount = 5

var (
	freeShippingSubtotal = decimal.NewFromInt(200)
	reducedRateSubtotal  = decimal.NewFromInt(100)
	reducedShippingRate  = decimal.RequireFromString("0.09")
	standardShippingRate = decimal.RequireFromString("0.12")
)

// Totals carries the four derived values of a cart. Total always equals
// Subtotal + Shipping - Discount.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives cart totals from the current lines and the optionally
// applied coupon. All rounding is half away from zero to two places, applied
// at each derived value. An empty cart yields all zeroes.
func Compute(lines []models.CartLine, coupon *models.Coupon) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total)
	}
	subtotal = subtotal.Round(2)

	shipping := shippingFor(len(lines), subtotal)

	discount := decimal.Zero
	if coupon != nil {
		discount = subtotal.Mul(coupon.Rate).Round(2)
	}

	total := subtotal.Add(shipping).Sub(discount).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}

// LineTotal is the frozen unit price multiplied by quantity, rounded to two
// places.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func shippingFor(lineCount int, subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case lineCount >= freeShippingLineCount:
		return decimal.Zero
	case subtotal.GreaterThanOrEqual(freeShippingSubtotal):
		return decimal.Zero
	case subtotal.GreaterThanOrEqual(reducedRateSubtotal):
		return subtotal.Mul(reducedShippingRate).Round(2)
	default:
		// An empty cart lands here and yields 12% of zero.
		return subtotal.Mul(standardShippingRate).Round(2)
	}
}
