// Package dateutils provides the date parsing and normalization primitives
// shared by all statement parsers.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutStatement is the canonical textual form every parsed date is
// normalized to.
const DateLayoutStatement = "02/01/2006"

// Spanish 3-letter month abbreviations as they appear in card statements
// (e.g. "05-Ene-25").
var spanishMonths = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,
}

var (
	slashDate   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	dashDate    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	spanishDate = regexp.MustCompile(`(?i)^(\d{1,2})-([a-záé]{3})-(\d{2})$`)
)

// NormalizeDate converts any supported date token (DD/MM/YYYY, DD/MM/YY,
// DD-MM-YYYY, DD-MMM-YY with Spanish month abbreviations) to DD/MM/YYYY.
// Two-digit years are expanded by prefixing "20". The result always resolves
// to a real calendar date.
func NormalizeDate(raw string) (string, error) {
	token := strings.TrimSpace(raw)

	var day, month, year int
	switch {
	case slashDate.MatchString(token):
		m := slashDate.FindStringSubmatch(token)
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year = expandYear(m[3])
	case dashDate.MatchString(token):
		m := dashDate.FindStringSubmatch(token)
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year = expandYear(m[3])
	case spanishDate.MatchString(token):
		m := spanishDate.FindStringSubmatch(token)
		mon, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			return "", fmt.Errorf("unknown month abbreviation %q in date %q", m[2], raw)
		}
		day, _ = strconv.Atoi(m[1])
		month = int(mon)
		year = expandYear(m[3])
	default:
		return "", fmt.Errorf("unrecognized date format: %q", raw)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", fmt.Errorf("date %q does not resolve to a real calendar date", raw)
	}

	return t.Format(DateLayoutStatement), nil
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		return 2000 + y
	}
	return y
}

// ParseStatementDate parses a normalized DD/MM/YYYY string back to time.Time.
func ParseStatementDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayoutStatement, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", date, err)
	}
	return t, nil
}

// AdjustToStatementMonth rewrites an installment transaction date so it falls
// in the statement's billing month: the original day of month is preserved,
// the month and year are taken from the statement date. When the original day
// does not exist in the target month the last day of that month is used.
func AdjustToStatementMonth(original, statement string) (string, error) {
	orig, err := ParseStatementDate(original)
	if err != nil {
		return "", err
	}
	stmt, err := ParseStatementDate(statement)
	if err != nil {
		return "", err
	}

	day := orig.Day()
	if last := lastDayOfMonth(stmt); day > last {
		day = last
	}

	adjusted := time.Date(stmt.Year(), stmt.Month(), day, 0, 0, 0, 0, time.UTC)
	return adjusted.Format(DateLayoutStatement), nil
}

func lastDayOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// AddPeriod advances a date by one canonical period of the given frequency.
// Month, quarter and year additions are calendar-aware rather than fixed day
// counts.
func AddPeriod(t time.Time, frequency string) time.Time {
	switch frequency {
	case "weekly":
		return t.AddDate(0, 0, 7)
	case "biweekly":
		return t.AddDate(0, 0, 14)
	case "monthly":
		return t.AddDate(0, 1, 0)
	case "quarterly":
		return t.AddDate(0, 3, 0)
	case "yearly":
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}
