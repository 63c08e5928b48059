package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(id int64, price float64, qty int) CartLine {
	return CartLine{Product: Product{ID: id, Price: price}, Quantity: qty}
}

func TestTotals_SumsQuantitiesAndPrices(t *testing.T) {
	count, sum := Totals([]CartLine{
		line(1, 129.99, 2),
		line(2, 14.99, 1),
	})

	assert.Equal(t, 3, count)
	assert.Equal(t, "274.97", sum.String())
}

func TestTotals_EmptyCart(t *testing.T) {
	count, sum := Totals(nil)

	assert.Equal(t, 0, count)
	assert.True(t, sum.IsZero())
}

func TestTotals_NoFloatDrift(t *testing.T) {
	items := []CartLine{line(1, 0.10, 3)}

	_, sum := Totals(items)

	assert.Equal(t, "0.3", sum.String())
}

func TestDiscountedPrice(t *testing.T) {
	got := DiscountedPrice(129.99, 10)

	assert.Equal(t, "116.99", got.String())
}

func TestDiscountedPrice_NoDiscount(t *testing.T) {
	got := DiscountedPrice(89.50, 0)

	assert.Equal(t, "89.5", got.String())
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, "Out of Stock", StockStatus(0))
	assert.Equal(t, "Only 8 left", StockStatus(8))
	assert.Equal(t, "42 in stock", StockStatus(42))
}

func TestFormatUSD_CarriesSymbol(t *testing.T) {
	got := FormatUSD(decimal.NewFromFloat(1299.99))

	assert.True(t, strings.Contains(got, "$"), "got %q", got)
	assert.True(t, strings.Contains(got, "1,299.99") || strings.Contains(got, "1299.99"), "got %q", got)
}

func TestDisplayName_FallsBackToUsername(t *testing.T) {
	assert.Equal(t, "Store Admin", User{Username: "admin", Name: "Store Admin"}.DisplayName())
	assert.Equal(t, "client", User{Username: "client"}.DisplayName())
}
