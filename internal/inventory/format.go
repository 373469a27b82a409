package inventory

import (
	"fmt"
	"strings"
)

// notAvailable replaces averages whose denominator is zero. Degenerate
// arithmetic must render as text, never as NaN or a panic.
const notAvailable = "no disponible"

// formatUnits renders a quantity with thousands separators and no decimals.
func formatUnits(v float64) string {
	return groupThousands(fmt.Sprintf("%.0f", v))
}

// formatMoney renders an amount with thousands separators and two decimals.
func formatMoney(v float64) string {
	return groupThousands(fmt.Sprintf("%.2f", v))
}

// groupThousands inserts comma separators into the integer part of an
// already formatted number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
