// Package identity canonicalizes attendee contact fields so the ledger's
// uniqueness checks compare like with like.
package identity

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPhone = errors.New("invalid phone format")
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s]{7,20}$`)
)

// NormalizeEmail trims and lower-cases raw and validates the result against
// local@domain.tld. Lower-casing is the canonical rule: two sign-ups that
// differ only in case land on the same unique index entry.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePhone strips formatting characters down to digits, keeping a
// leading + when present. The digit count must stay within [7, 20].
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 7 || len(digits) > 20 {
		return "", ErrInvalidPhone
	}

	if strings.HasPrefix(phone, "+") {
		return "+" + digits, nil
	}
	return digits, nil
}
