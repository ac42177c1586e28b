package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// dateOnly is the storage format for event dates. Dates carry no time of
// day; storing only the calendar date keeps the (title, date) uniqueness
// key stable across time zones.
const dateOnly = "2006-01-02"

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// parseDate parses a stored calendar date into midnight UTC.
func parseDate(value, fieldName string) (time.Time, error) {
	t, err := time.ParseInLocation(dateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// joinList and splitList store string slices in a single TEXT column.
// Values never contain newlines, so a newline separator is unambiguous.
func joinList(items []string) string {
	return strings.Join(items, "\n")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, "\n")
}
