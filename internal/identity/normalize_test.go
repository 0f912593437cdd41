package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM  ", "alice@example.com"},
		{"a.b+tag@sub.domain.org", "a.b+tag@sub.domain.org"},
	}
	for _, c := range cases {
		got, err := NormalizeEmail(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestNormalizeEmail_Invalid(t *testing.T) {
	cases := []string{
		"",
		"not-an-email",
		"missing@tld",
		"two@@example.com",
		"white space@example.com",
		"@example.com",
	}
	for _, c := range cases {
		_, err := NormalizeEmail(c)
		assert.ErrorIs(t, err, ErrInvalidEmail, c)
	}
}

func TestNormalizePhone_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+6591234567", "+6591234567"},
		{"  +65 9123 4567 ", "+6591234567"},
		{"(65) 9123-4567", "6591234567"},
		{"91234567", "91234567"},
	}
	for _, c := range cases {
		got, err := NormalizePhone(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	cases := []string{
		"",
		"12345",               // too few digits
		"123456789012345678901", // too many characters
		"+65-abc-1234",        // letters
		"() --- ",             // enough chars, no digits
	}
	for _, c := range cases {
		_, err := NormalizePhone(c)
		assert.ErrorIs(t, err, ErrInvalidPhone, c)
	}
}

// A phone padded with separators can pass the character window while its
// digit count stays out of range.
func TestNormalizePhone_DigitCountBounds(t *testing.T) {
	_, err := NormalizePhone("1-2-3-4-5-6")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	got, err := NormalizePhone("1-2-3-4-5-6-7")
	assert.NoError(t, err)
	assert.Equal(t, "1234567", got)
}
