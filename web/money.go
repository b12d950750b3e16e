package web

import (
	"fmt"
	"strconv"
)

// FormatMoney renders a balance for display. Values of a million or more
// collapse to "N.NM", a thousand or more to "N.NK", everything else is the
// plain integer. Display only, amounts are never parsed back.
func FormatMoney(value int64) string {
	switch {
	case value >= 1000000:
		return fmt.Sprintf("%.1fM", float64(value)/1000000)
	case value >= 1000:
		return fmt.Sprintf("%.1fK", float64(value)/1000)
	default:
		return strconv.FormatInt(value, 10)
	}
}
