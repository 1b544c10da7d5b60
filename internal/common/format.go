package common

import (
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
)

// FormatCurrency renders an amount in the given ISO currency code,
// e.g. FormatCurrency(1234.5, "MYR") -> "RM1,234.50".
func FormatCurrency(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	minor := int64(math.Round(amount * math.Pow10(cur.Fraction)))
	return money.New(minor, code).Display()
}

// FormatPercent renders a percentage with two decimals and a sign for gains.
func FormatPercent(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatDate renders a timestamp as a short human-readable date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// FormatDateTime renders a timestamp with time of day.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}
