package repository

import (
	"fmt"
	"time"
)

// timestampLayouts are the formats timestamps are read back in. SQLite's
// CURRENT_TIMESTAMP default produces the last one.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseTime parses a stored timestamp string into UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}

// FormatTime renders t the way ParseTime reads it back.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
