// Package core holds the domain types and the pure aggregation logic of the
// tracker: transactions, loans, totals, the per-card ledger and the loan
// status engine.
//
// This file contains money parsing, JSON representation and display
// formatting. Amounts are stored as integer cents; the decimal form only
// appears at the boundaries (parsing input, JSON persistence, display).
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents. The currency it is denominated in
// travels separately on the record that carries it; sums across currencies
// are naive by design and never converted.
type Money struct {
	Cents int64
}

// currencySymbols maps the supported currency codes to display symbols.
// Codes outside this set degrade to printing the code itself.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"PEN": "S/",
}

// SupportedCurrencies returns the closed set of currency codes the session
// currency may take.
func SupportedCurrencies() []string {
	return []string{"USD", "EUR", "GBP", "JPY", "PEN"}
}

// IsSupportedCurrency reports whether code is one of the selectable session
// currencies. Records may still carry other codes; formatting tolerates them.
func IsSupportedCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// FormatAmount renders an amount for display: currency symbol, a space, and
// the magnitude with exactly two decimals in es-ES punctuation (decimal
// comma, thousands dot). Unknown currency codes are used verbatim as the
// symbol. No sign is prefixed for positive amounts; negative amounts keep
// their leading minus on the number.
func FormatAmount(m Money, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return symbol + " " + formatGroupedES(m.Cents)
}

// formatGroupedES formats cents as an es-ES decimal string. The locale only
// groups thousands from five integer digits upward (1234,56 but 12.345,67).
func formatGroupedES(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	digits := strconv.FormatInt(cents/100, 10)
	if len(digits) > 4 {
		var b strings.Builder
		pre := len(digits) % 3
		if pre > 0 {
			b.WriteString(digits[:pre])
		}
		for i := pre; i < len(digits); i += 3 {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(digits[i : i+3])
		}
		digits = b.String()
	}
	out := digits + "," + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + out
	}
	return out
}

// DecimalString returns the plain dot-decimal form with two decimals, as
// written to CSV exports and JSON persistence.
func (m Money) DecimalString() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON writes the amount as a plain decimal number so the persisted
// layout stays compatible with records written as floating point.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.DecimalString()), nil
}

// UnmarshalJSON accepts a decimal number and converts it to cents with
// half-up rounding.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.Cents = int64(math.Round(v * 100))
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted. Only strictly positive amounts are valid.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
