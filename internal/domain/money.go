package domain

import (
	"fmt"
	"strconv"
)

// Money amounts are carried as int64 currency units throughout the system so
// payout splits reconcile exactly, with no float drift.

// FormatAmount renders an amount with thousand separators, e.g. 75050 -> "75,050".
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	return fmt.Sprintf("%s%s", sign, out)
}
