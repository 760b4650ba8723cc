package market

import (
	"strconv"
	"strings"
	"time"
)

// SlugPrefix and SlugSuffix frame every derived market slug.
const (
	SlugPrefix = "bitcoin-up-or-down"
	SlugSuffix = "et"
)

// Slug returns the market identifier for the hour containing t, read in t's
// own location.
func Slug(t time.Time) string {
	var b strings.Builder
	b.WriteString(SlugPrefix)
	b.WriteByte('-')
	b.WriteString(strings.ToLower(t.Month().String()))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(t.Day()))
	b.WriteByte('-')
	b.WriteString(HourLabel(t.Hour()))
	b.WriteByte('-')
	b.WriteString(SlugSuffix)
	return b.String()
}

// HourLabel formats a 0-23 hour on a 12-hour clock: 0 is 12am, 12 is 12pm.
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return strconv.Itoa(hour) + "am"
	case hour == 12:
		return "12pm"
	default:
		return strconv.Itoa(hour-12) + "pm"
	}
}
