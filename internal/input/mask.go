// Package input implements the keystroke masks and submit-time checks for
// the constrained text fields (dates, times, weight). Masking runs on every
// keystroke and always re-derives the formatted value from the digit stream,
// so deleting characters never leaves stale separators behind.
package input

import (
	"strconv"
	"strings"
)

const (
	// DateLength is the canonical length of a masked date (YYYY-MM-DD).
	DateLength = 10
	// TimeLength is the canonical length of a masked time (HH:MM).
	TimeLength = 5
)

// ValidationError reports a field whose content cannot be submitted. It is
// shown inline to the user and never sent anywhere.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskDate reformats raw field text as a partial YYYY-MM-DD value. Dashes are
// inserted after the 4th and 6th digit of the digit stream and the result is
// truncated to 10 characters.
func MaskDate(raw string) string {
	d := digits(raw)
	if len(d) > 8 {
		d = d[:8]
	}
	switch {
	case len(d) <= 4:
		return d
	case len(d) <= 6:
		return d[:4] + "-" + d[4:]
	default:
		return d[:4] + "-" + d[4:6] + "-" + d[6:]
	}
}

// MaskTime reformats raw field text as a partial HH:MM value, inserting the
// colon after the 2nd digit and truncating to 5 characters.
func MaskTime(raw string) string {
	d := digits(raw)
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) <= 2 {
		return d
	}
	return d[:2] + ":" + d[2:]
}

// ValidateDate rejects a masked date whose length is not exactly 10. Callers
// must not issue a network request when an error is returned.
func ValidateDate(masked string) error {
	if len(masked) != DateLength {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateTime rejects a masked time whose length is not exactly 5.
func ValidateTime(masked string) error {
	if len(masked) != TimeLength {
		return &ValidationError{Field: "time", Reason: "must be HH:MM"}
	}
	return nil
}

// ParseWeight converts raw field text to kilograms. Unparseable input yields
// 0 rather than an error so typing is never blocked; required-field checks
// run against the raw text before this fallback matters.
func ParseWeight(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return w
}

// CombineDateTime joins validated date and time fields into the ISO wire
// value the appointments API expects.
func CombineDateTime(date, tm string) string {
	return date + "T" + tm + ":00"
}

// SplitDateTime breaks an ISO date-time back into the date and time field
// values used to prefill the edit form. Values too short to split come back
// empty rather than panicking on malformed server data.
func SplitDateTime(iso string) (date, tm string) {
	i := strings.IndexByte(iso, 'T')
	if i < 0 {
		return iso, ""
	}
	date = iso[:i]
	rest := iso[i+1:]
	if len(rest) > TimeLength {
		rest = rest[:TimeLength]
	}
	return date, rest
}
