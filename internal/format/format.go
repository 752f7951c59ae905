package format

import (
	"fmt"
	"math"
	"strings"
)

// Price formats a decimal catalog price as dollars with two decimals.
// Example: Price(1299.5) => "$1,299.50"
func Price(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(math.Round(v * 100))
	major := cents / 100
	minor := cents % 100
	out := "$" + thousandSep(major) + fmt.Sprintf(".%02d", minor)
	if neg {
		return "-" + out
	}
	return out
}

// Percent formats a discount percentage for display, trimming a trailing
// ".0". Example: Percent(12.5) => "12.5%", Percent(15) => "15%"
func Percent(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}
