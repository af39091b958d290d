package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern pairs a statement date regex with the function that turns its
// match into a calendar date. Patterns are tried in slice order.
type datePattern struct {
	name  string
	re    *regexp.Regexp
	parse func(match string) (time.Time, error)
}

const monthNames = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t|tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`

// Date formats seen in PhonePe statements, in priority order.
var datePatterns = []datePattern{
	{
		// Feb 20, 2026 / February 20 2026
		name:  "month-day-year",
		re:    regexp.MustCompile(`(?i)\b` + monthNames + `\s+\d{1,2},?\s+\d{4}\b`),
		parse: parseMonthDayYear,
	},
	{
		// 20 Feb 2026
		name:  "day-month-year",
		re:    regexp.MustCompile(`(?i)\b\d{1,2}\s+` + monthNames + `\s+\d{4}\b`),
		parse: parseDayMonthYear,
	},
	{
		// 2026-02-20
		name:  "iso",
		re:    regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		parse: parseISO,
	},
	{
		// 20/02/26 or 20/02/2026
		name:  "slash",
		re:    regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		parse: parseSlash,
	},
}

// detectDate returns the date of the first pattern that matches line.
// matched is true whenever a pattern matched, even if the text turned out not
// to be a real calendar date; in that case ok is false and later patterns are
// not consulted.
func detectDate(line string) (date time.Time, matched, ok bool) {
	for _, p := range datePatterns {
		m := p.re.FindString(line)
		if m == "" {
			continue
		}
		d, err := p.parse(m)
		if err != nil {
			return time.Time{}, true, false
		}
		return d, true, true
	}
	return time.Time{}, false, false
}

// stripDates removes every date-like substring of every supported format.
func stripDates(s string) string {
	for _, p := range datePatterns {
		s = p.re.ReplaceAllString(s, " ")
	}
	return s
}

func parseMonthDayYear(m string) (time.Time, error) {
	f := strings.Fields(strings.ReplaceAll(m, ",", " "))
	if len(f) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", m)
	}
	return buildDate(f[2], f[0], f[1])
}

func parseDayMonthYear(m string) (time.Time, error) {
	f := strings.Fields(m)
	if len(f) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", m)
	}
	return buildDate(f[2], f[1], f[0])
}

func parseISO(m string) (time.Time, error) {
	return time.Parse("2006-01-02", m)
}

func parseSlash(m string) (time.Time, error) {
	parts := strings.Split(m, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", m)
	}
	year := parts[2]
	switch len(year) {
	case 2:
		year = "20" + year
	case 4:
	default:
		return time.Time{}, fmt.Errorf("unsupported year in %q", m)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	return validDate(year, month, parts[0])
}

// buildDate resolves a month name (abbreviated or full) to a date.
func buildDate(year, monthName, day string) (time.Time, error) {
	name := strings.TrimSuffix(monthName, ".")
	if len(name) < 3 {
		return time.Time{}, fmt.Errorf("unknown month %q", monthName)
	}
	mon, err := time.Parse("Jan", strings.ToUpper(name[:1])+strings.ToLower(name[1:3]))
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown month %q", monthName)
	}
	return validDate(year, int(mon.Month()), day)
}

// validDate rejects dates that time.Date would silently normalise,
// such as 30 February.
func validDate(year string, month int, day string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, err
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != month || t.Day() != d {
		return time.Time{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", y, month, d)
	}
	return t, nil
}
