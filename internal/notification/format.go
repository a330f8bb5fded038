package notification

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"BOB": "Bs",
	"USD": "US$",
}

// AmountFormatter renders money amounts for the recipient's locale
type AmountFormatter struct {
	printer *message.Printer
}

// NewAmountFormatter creates a formatter for the given BCP 47 tag, falling
// back to Spanish (Bolivia)
func NewAmountFormatter(tag string) *AmountFormatter {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.MustParse("es-BO")
	}
	return &AmountFormatter{printer: message.NewPrinter(lang)}
}

// Format returns the amount with two decimals and the currency symbol
func (f *AmountFormatter) Format(amount decimal.Decimal, currency string) string {
	value, _ := amount.Round(2).Float64()
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return f.printer.Sprintf("%s %v", symbol, number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
