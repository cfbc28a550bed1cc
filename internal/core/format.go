// Package core provides the transaction record model and display formatting
// helpers shared by the dashboard views.
package core

import (
	"math"
	"strconv"
	"strings"
)

// FormatUSD renders an amount as a dollar string with thousands separators,
// e.g. "$1,234.56". NaN and infinities format as "$NaN" / "$Infinity" rather
// than erroring: malformed metrics render, they never crash a view.
func FormatUSD(v float64) string {
	if math.IsNaN(v) {
		return "$NaN"
	}
	if math.IsInf(v, 1) {
		return "$Infinity"
	}
	if math.IsInf(v, -1) {
		return "-$Infinity"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	// Round half-up to cents before splitting.
	cents := int64(math.Floor(v*100 + 0.5))
	whole := cents / 100
	rem := cents % 100
	s := "$" + groupThousands(strconv.FormatInt(whole, 10)) + "." + pad2(rem)
	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent renders a ratio already scaled to percent, one decimal place,
// e.g. "42.7%". NaN and infinities pass through as "NaN%" / "Infinity%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "NaN%"
	}
	if math.IsInf(v, 1) {
		return "Infinity%"
	}
	if math.IsInf(v, -1) {
		return "-Infinity%"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := groupThousands(strconv.Itoa(n))
	if neg {
		return "-" + s
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
