package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// InvalidDate is what an unparseable timestamp renders as.
const InvalidDate = "Invalid Date"

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// timestampLayouts covers what the backend emits: RFC 3339 and Python's naive isoformat.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

var priceTiers = map[string]string{
	"budget":   "$",
	"standard": "$$",
	"premium":  "$$$",
}

// ParseTimestamp accepts any of the backend's timestamp layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp as "Mar 2, 2025".
func FormatDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("Jan 2, 2006")
}

// FormatShortDate renders a timestamp as "3/2/2025".
func FormatShortDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("1/2/2006")
}

// FormatCurrency renders a USD amount with grouping: 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	return sign + "$" + usPrinter.Sprint(number.Decimal(amount, number.Scale(2)))
}

// CapitalizeFirst upper-cases the first letter and leaves the rest alone.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatPriceTier maps budget/standard/premium to dollar signs; unknown tiers pass through.
func FormatPriceTier(tier string) string {
	if v, ok := priceTiers[tier]; ok {
		return v
	}
	return tier
}

// Percent turns a 0..1 ratio into a rounded whole percentage.
func Percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// FormatNumber prints a float without trailing zeros: 70 -> "70", 66.7 -> "66.7".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
