package service

import (
	"strings"

	"github.com/MKhiriev/go-identity-portal/internal/validators"
)

// Masks returned when a sensitive value cannot be shown at all.
const (
	UnknownSSNMask = "***-**-____"
	UnknownDOBMask = "****-**-**"
)

// RedactedStreet replaces the street line in every admin record.
const RedactedStreet = "REDACTED"

// MaskSSN keeps only the last four digits of value, padding with
// underscores when fewer are present.
func MaskSSN(value string) string {
	digits := validators.Digits(value)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "***-**-" + strings.Repeat("_", 4-len(digits)) + digits
}

// MaskDOB hides the last two digits of the birth year: 1990-03-15 becomes
// 19**-03-15. Unparseable values yield [UnknownDOBMask].
func MaskDOB(value string) string {
	date, ok := validators.ParseDate(value)
	if !ok {
		return UnknownDOBMask
	}
	date = date.UTC()
	year := date.Format("2006")
	return year[:2] + "**" + date.Format("-01-02")
}
