package services

import (
	"fmt"
	"strconv"
)

// FormatRs renders a whole-rupee amount the way the quotation prints it:
// "Rs 1,23,456" with Indian digit grouping (last 3 digits together, then
// pairs). Negative amounts keep the sign in front of "Rs".
func FormatRs(amount int) string {
	if amount < 0 {
		return "-" + FormatRs(-amount)
	}
	return "Rs " + indianGrouping(strconv.Itoa(amount))
}

// FormatPercent renders a discount percentage without trailing zeros.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%s %%", trimFloat(p))
}

// indianGrouping inserts commas per the Indian numbering system: the
// rightmost 3 digits form the first group, then every 2 digits.
func indianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
