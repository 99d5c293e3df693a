// Package money holds the numeric-leniency and formatting rules the
// ledger and report pipeline share. Values arriving from the hours card
// are display strings ("₪1,234.56"), so parsing never fails hard: a value
// that cannot be read contributes zero and aggregation keeps going.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var stripper = strings.NewReplacer("₪", "", ",", "")

// Clean coerces a loosely typed ledger value into a float64. Currency
// glyphs and thousands separators are stripped first; nil, empty and
// unparseable values all resolve to zero.
func Clean(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return cleanString(v)
	default:
		return cleanString(fmt.Sprint(v))
	}
}

func cleanString(s string) float64 {
	cleaned := strings.TrimSpace(stripper.Replace(s))
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// Plain2 renders two decimals without grouping, used for balance and
// day-count figures.
func Plain2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Grouped2 renders two decimals with thousands grouping, used for the
// cumulative monetary figures.
func Grouped2(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Whole renders a statutory form amount: rounded to whole units with
// thousands grouping, and an empty string when the amount is zero.
func Whole(v float64) string {
	if v == 0 {
		return ""
	}
	return printer.Sprintf("%.0f", v)
}
