package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount the way the storefront displays prices, e.g. "$1,299.99".
func FormatUSD(amount decimal.Decimal) string {
	return usdPrinter.Sprintf("%v", currency.NarrowSymbol(currency.USD.Amount(amount.InexactFloat64())))
}

// DiscountedPrice applies a product's discount percentage to its list price.
func DiscountedPrice(price, discountPercentage float64) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	pct := decimal.NewFromFloat(discountPercentage)
	factor := decimal.NewFromInt(1).Sub(pct.Div(decimal.NewFromInt(100)))
	return p.Mul(factor).Round(2)
}

// StockStatus returns the shelf label for a stock level.
func StockStatus(stock int) string {
	switch {
	case stock == 0:
		return "Out of Stock"
	case stock <= 10:
		return fmt.Sprintf("Only %d left", stock)
	default:
		return fmt.Sprintf("%d in stock", stock)
	}
}
