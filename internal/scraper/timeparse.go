package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)?$`)

// normalizeClock parses a raw time token like "14:30", "2:30pm" or
// "02:30 PM" into an hour and minute. pm adds 12 hours unless the hour is
// already >= 12; 12am maps to hour 0. Returns ok=false for anything else
// (including the "All Day"/"TBD" sentinels).
func normalizeClock(token string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(token)))
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}

	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour, minute, true
}

// dateLayouts covers the date formats the calendar sites render. Layouts
// without a year parse to year 0 and get the current year filled in.
var dateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Mon Jan 2",
	"Jan 2",
	"2 Jan",
	"01/02/2006",
}

func parseDateToken(token string, now time.Time) (year int, month time.Month, day int, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, 0, 0, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, token)
		if err != nil {
			continue
		}
		year = t.Year()
		if year == 0 {
			year = now.Year()
		}
		return year, t.Month(), t.Day(), true
	}

	return 0, 0, 0, false
}

// combineDatetime merges a raw date token and raw time token into an
// absolute timestamp. Malformed or absent tokens fall back to now: a bad
// date keeps today's date, a bad time keeps the current clock time.
func combineDatetime(dateToken, timeToken string, now time.Time) time.Time {
	year, month, day := now.Year(), now.Month(), now.Day()
	if y, m, d, ok := parseDateToken(dateToken, now); ok {
		year, month, day = y, m, d
	}

	hour, minute := now.Hour(), now.Minute()
	if h, min, ok := normalizeClock(timeToken); ok {
		hour, minute = h, min
	}

	return time.Date(year, month, day, hour, minute, 0, 0, now.Location())
}
