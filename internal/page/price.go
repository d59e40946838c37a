package page

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var priceSymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice formats amount with the standard number of decimals for the
// currency and English digit grouping: 1234.5 USD -> $1,234.50.
func FormatPrice(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)

	digits := pricePrinter.Sprint(number.Decimal(amount, number.Scale(scale)))
	if sym, ok := priceSymbols[unit.String()]; ok {
		return sym + digits
	}
	return unit.String() + " " + digits
}
