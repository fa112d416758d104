package dto

import "time"

// TimestampLayout is the user-facing date-time form, minute granularity.
const TimestampLayout = "2006-01-02 15:04"

// ParseTimestamp reads the user-facing form in local time.
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, value, time.Local)
}

// FormatTimestamp renders the user-facing form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
