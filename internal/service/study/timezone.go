package study

import "time"

// DateLayout is the calendar date format used for day bookkeeping.
const DateLayout = "2006-01-02"

// DateString formats the local calendar date of t as YYYY-MM-DD.
func DateString(t time.Time, tz *time.Location) string {
	return t.In(tz).Format(DateLayout)
}

// ParseTimezone parses a timezone name. Empty means the system zone; unknown
// names fall back to UTC.
func ParseTimezone(tz string) *time.Location {
	if tz == "" || tz == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
