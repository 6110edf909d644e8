// Package format holds locale-aware formatting helpers (Vietnamese display
// conventions). Pure functions, no state.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the display layout used across sheets and exports.
const DateLayout = "02/01/2006"

// FormatNumber groups digits with dots: 1234567 -> "1.234.567".
func FormatNumber(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatVND renders a whole-đồng amount: 1234567 -> "1.234.567 đ".
func FormatVND(v int64) string {
	return FormatNumber(v) + " đ"
}

// FormatDate renders dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts dd/MM/yyyy or ISO yyyy-MM-dd.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date: " + s)
}

// Month returns the 1-12 month number of a date.
func Month(t time.Time) int {
	return int(t.Month())
}

// PercentLabel renders a percentage with one decimal: 45 -> "45.0%".
func PercentLabel(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
