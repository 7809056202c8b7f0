package utils

import "time"

// FromUnixSeconds returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatUnixRFC3339 renders an epoch-seconds column.
func FormatUnixRFC3339(t int64) string {
	return FormatRFC3339(FromUnixSeconds(t))
}
