package tinyamp

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Plausibility window for event dates. Scraped pages carry stale reposts and
// copyright years; anything outside this range relative to "now" is treated
// the same as an unparseable date.
const (
	PastWindowMonths   = 6
	FutureWindowMonths = 12
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseEventDate parses a free-text date expression into a calendar date
// (midnight UTC). It tries, in order: "Month D, YYYY" and "Month D YYYY"
// with optional ordinal suffixes, "M/D/YYYY", "M.D.YYYY", "YYYY-M-D", and
// finally generic parsing. A date that parses but falls outside
// [now-6mo, now+12mo] is rejected with the same outcome as a parse failure.
func ParseEventDate(text string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, Errorf(EINVALID, "empty date text")
	}

	parsers := []func(string) (time.Time, bool){
		parseMonthNameDate,
		parseSlashDate,
		parseDottedDate,
		parseISODate,
	}

	var d time.Time
	ok := false
	for _, parse := range parsers {
		if d, ok = parse(s); ok {
			break
		}
	}

	if !ok {
		// Generic fallback only after all explicit patterns fail.
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, Errorf(EINVALID, "unrecognized date %q", text)
		}
		d = civilDate(t.Year(), t.Month(), t.Day())
	}

	if !WithinEventWindow(d, now) {
		return time.Time{}, Errorf(EINVALID, "date %s outside plausible event window", d.Format("2006-01-02"))
	}

	return d, nil
}

// WithinEventWindow reports whether d falls inside the plausible range
// [now-6mo, now+12mo].
func WithinEventWindow(d, now time.Time) bool {
	earliest := civilDate(now.Year(), now.Month(), now.Day()).AddDate(0, -PastWindowMonths, 0)
	latest := civilDate(now.Year(), now.Month(), now.Day()).AddDate(0, FutureWindowMonths, 0)
	return !d.Before(earliest) && !d.After(latest)
}

// parseMonthNameDate handles "July 29, 2025", "July 29 2025", "Jul 29th 2025".
func parseMonthNameDate(s string) (time.Time, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) < 3 {
		return time.Time{}, false
	}

	// Scan for a month-name token followed by day and year tokens, so dates
	// embedded in longer text ("Show August 20 2025 at ...") still parse.
	for i := 0; i+2 < len(fields); i++ {
		month, ok := monthFromToken(fields[i])
		if !ok {
			continue
		}
		day, ok := dayFromToken(fields[i+1])
		if !ok {
			continue
		}
		year, ok := yearFromToken(fields[i+2])
		if !ok {
			continue
		}
		return makeDate(year, month, day)
	}

	return time.Time{}, false
}

func parseSlashDate(s string) (time.Time, bool) {
	return parseNumericDate(s, "/")
}

func parseDottedDate(s string) (time.Time, bool) {
	return parseNumericDate(s, ".")
}

// parseNumericDate handles M<sep>D<sep>YYYY.
func parseNumericDate(s, sep string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 1000 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return makeDate(year, time.Month(month), day)
}

// parseISODate handles YYYY-M-D.
func parseISODate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 1000 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return makeDate(year, time.Month(month), day)
}

func monthFromToken(tok string) (time.Month, bool) {
	t := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(tok), "."))
	if len(t) < 3 {
		return 0, false
	}
	full := map[string]bool{
		"january": true, "february": true, "march": true, "april": true,
		"may": true, "june": true, "july": true, "august": true,
		"september": true, "october": true, "november": true, "december": true,
		"sept": true,
	}
	if len(t) > 3 && !full[t] {
		return 0, false
	}
	m, ok := monthsByName[t[:3]]
	return m, ok
}

func dayFromToken(tok string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(tok))
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		t = strings.TrimSuffix(t, suffix)
	}
	day, err := strconv.Atoi(t)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func yearFromToken(tok string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}

// makeDate builds a calendar date and rejects overflow like June 31.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := civilDate(year, month, day)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
