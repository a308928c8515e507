package utils

import (
	"regexp"
	"strings"
	"time"
)

// MonthKeyLayout is the canonical year-month key format, e.g. "2024-03".
const MonthKeyLayout = "2006-01"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthKey formats a time as a YYYY-MM key in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// CurrentMonthKey returns the YYYY-MM key for the current calendar month.
func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// IsValidMonthKey reports whether s is a well-formed YYYY-MM key.
func IsValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// NormalizeMonthFilter resolves a month filter that may be either a YYYY-MM
// key or an English month name ("march") into a key within the given year.
// Year defaults to the current year when empty. The second return value is
// false when the input matches neither form.
func NormalizeMonthFilter(month, year string) (string, bool) {
	if IsValidMonthKey(month) {
		return month, true
	}

	name := strings.ToLower(strings.TrimSpace(month))
	if name == "" {
		return "", false
	}
	name = strings.ToUpper(name[:1]) + name[1:]

	parsed, err := time.Parse("January", name)
	if err != nil {
		return "", false
	}

	y := time.Now().UTC().Year()
	if year != "" {
		parsedYear, err := time.Parse("2006", year)
		if err != nil {
			return "", false
		}
		y = parsedYear.Year()
	}

	return time.Date(y, parsed.Month(), 1, 0, 0, 0, 0, time.UTC).Format(MonthKeyLayout), true
}

// NormalizePaymentMethod maps raw payment method labels onto the canonical
// reporting buckets used by the analytics summaries.
func NormalizePaymentMethod(method string) string {
	switch method {
	case "Cash":
		return "cash"
	case "UPI", "Online":
		return "online"
	case "Bank Transfer":
		return "bank_transfer"
	case "Cheque":
		return "cheque"
	default:
		return "other"
	}
}
