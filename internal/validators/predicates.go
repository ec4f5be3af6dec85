package validators

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9+()\-.\s]{7,}$`)
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// IsValidEmail reports whether value has a local@domain.tld shape.
func IsValidEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsValidPhone reports whether value has at least 7 characters, all of them
// digits or common phone punctuation.
func IsValidPhone(value string) bool {
	return phoneRegex.MatchString(value)
}

// IsValidSSN reports whether value contains exactly 4 or exactly 9 digits
// once separators are removed.
func IsValidSSN(value string) bool {
	n := len(Digits(value))
	return n == 4 || n == 9
}

// IsValidDOB reports whether value is a calendar date whose year is after
// 1900 and not after the year of now (UTC).
func IsValidDOB(value string, now time.Time) bool {
	date, ok := ParseDate(value)
	if !ok {
		return false
	}
	year := date.UTC().Year()
	return year > 1900 && year <= now.UTC().Year()
}

// ParseDate parses a date written in one of the accepted layouts.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Digits returns only the ASCII digits of value.
func Digits(value string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
}
