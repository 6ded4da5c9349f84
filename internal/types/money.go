// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money keeps amounts in minor units (cents) to avoid float drift in totals.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// FromMajor converts a decimal amount such as 1250.5 into Money.
func FromMajor(v float64, cur string) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: strings.ToUpper(cur)}
}

func (m Money) Major() float64 {
	return float64(m.Amount) / 100
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Major(), m.Currency)
}

// Format renders the amount with locale-aware digits and the ISO currency code.
// Unknown currency codes fall back to String.
func (m Money) Format(tag language.Tag) string {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return m.String()
	}
	return message.NewPrinter(tag).Sprint(currency.ISO(unit.Amount(m.Major())))
}
