package domain

import "github.com/shopspring/decimal"

// CartLine is a product snapshot plus a quantity. There is at most one line
// per product id in a cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart holds the line list and the totals derived from it. Totals are always
// recomputed from the lines, never adjusted in place.
type Cart struct {
	Items      []CartLine      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Totals sums quantities and price*quantity over the given lines. Prices are
// summed as decimals so repeated mutations cannot accumulate float error.
func Totals(items []CartLine) (int, decimal.Decimal) {
	count := 0
	sum := decimal.Zero
	for _, line := range items {
		count += line.Quantity
		price := decimal.NewFromFloat(line.Price)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return count, sum
}
