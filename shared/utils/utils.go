package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered in place of a value that could not be loaded.
const Placeholder = "—"

var printer = message.NewPrinter(language.Korean)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatAmount renders a won amount with thousands separators, e.g. ₩1,234,567.
// The won has no minor unit, so fractions are rounded away.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(0).IntPart()
	if rounded < 0 {
		return "-₩" + printer.Sprintf("%d", -rounded)
	}
	return "₩" + printer.Sprintf("%d", rounded)
}

// FormatCount renders a count with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders a backend timestamp as "2006-01-02 15:04". Values that
// do not parse are returned unchanged.
func FormatDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return value
}

// NormalizeAccountNumber trims the whitespace operators paste around an account number.
func NormalizeAccountNumber(accountNumber string) string {
	return strings.TrimSpace(accountNumber)
}

// ParseID parses a positive numeric backend id.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ParseNonNegative parses a page index; anything invalid becomes fallback.
func ParseNonNegative(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
