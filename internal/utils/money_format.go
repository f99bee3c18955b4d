package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary amount with two fraction digits, e.g. "$2.50".
func FormatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
