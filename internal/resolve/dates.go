package resolve

import (
	"fmt"
	"time"
)

// SystemDateContext builds the date variables injected into every
// snapshot ahead of stored lookups. They shadow same-named stored
// variables.
func SystemDateContext(now time.Time) map[string]string {
	return map[string]string{
		"currentday":        ordinal(now.Day()),
		"currentdaynum":     fmt.Sprintf("%d", now.Day()),
		"currentdayordinal": ordinal(now.Day()),

		"currentmonth": now.Format("January"),
		"monthabbr":    now.Format("Jan"),
		"monthnum":     fmt.Sprintf("%d", int(now.Month())),

		"year":  now.Format("2006"),
		"year2": now.Format("06"),

		"weekday":     now.Format("Monday"),
		"weekdayabbr": now.Format("Mon"),

		"today":      now.Format("January 02, 2006"),
		"todayshort": now.Format("01/02/2006"),
	}
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 10 || n%100 > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
