// Package field computes the derived attributes of a label record from its
// primary inputs: the secondary identifier extracted from the NSN, the
// calendar-accurate expiry date, and the resolved re-qualification date.
//
// All functions are pure. Date arithmetic uses calendar month addition with
// month-end clamping, never a fixed 30-day approximation, and all date
// display formats are locale-independent.
package field

import (
	"strings"
	"time"
	"unicode"

	"github.com/valorem-chem/milabel/pkg/errors"
)

// nsnLength is the length of a primary identifier (NSN) once separators are
// stripped.
const nsnLength = 13

// niinLength is the length of the secondary identifier (NIIN): the trailing
// digits of the NSN.
const niinLength = 9

// StripSeparators removes every non-alphanumeric rune from s. Structured
// identifiers are written with dashes or spaces between segments; the
// machine-readable form carries none of them.
func StripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractSecondaryID derives the 9-character secondary identifier from a
// primary identifier. Separators are stripped first; the remaining string
// must be exactly 13 characters or an INVALID_IDENTIFIER error is returned.
func ExtractSecondaryID(primary string) (string, error) {
	stripped := StripSeparators(primary)
	if len(stripped) != nsnLength {
		return "", errors.New(errors.ErrCodeInvalidIdentifier,
			"primary identifier %q has %d characters after separator strip, want %d",
			primary, len(stripped), nsnLength)
	}
	return stripped[nsnLength-niinLength:], nil
}

// AddCalendarMonths returns t shifted by the given number of calendar
// months. The day of month is preserved except when the target month is
// shorter, in which case it clamps to the last day (Jan 31 + 1 month is
// Feb 28 or 29, never Mar 2).
//
// time.AddDate is not used here: it normalizes overflowing days into the
// next month instead of clamping.
func AddCalendarMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)
	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return time.Date(ny, nm, d, 0, 0, 0, 0, t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ComputeExpiry returns the expiry date: manufacture date plus the shelf
// life in months.
func ComputeExpiry(manufacture time.Time, shelfLifeMonths int) time.Time {
	return AddCalendarMonths(manufacture, shelfLifeMonths)
}

// ResolveRequalification returns the re-qualification date: the manual
// override when one is supplied, otherwise the expiry date. The caller is
// responsible for surfacing a compliance warning when an override arrives
// without a test report reference.
func ResolveRequalification(expiry time.Time, override *time.Time) time.Time {
	if override != nil && !override.IsZero() {
		return *override
	}
	return expiry
}

// FormatYYMMDD renders a date as the 6-digit barcode payload form.
func FormatYYMMDD(t time.Time) string {
	return t.Format("060102")
}

// FormatMonthYear renders a date as the uppercased month-year display form,
// e.g. "NOV 2025".
func FormatMonthYear(t time.Time) string {
	return strings.ToUpper(t.Format("Jan 2006"))
}

// FormatDayMonthYear renders a date as the uppercased short display form,
// e.g. "15 NOV 27".
func FormatDayMonthYear(t time.Time) string {
	return strings.ToUpper(t.Format("02 Jan 06"))
}
