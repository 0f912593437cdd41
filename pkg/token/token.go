// Package token generates the random identifiers used by registrations and
// QR credentials.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// NewRegistrationID returns a short random registration id such as
// "reg_ab12cd34ef56". Callers must collision-check against the store and
// regenerate on a hit.
func NewRegistrationID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return "reg_" + hex.EncodeToString(b), nil
}

// NewQRToken returns a URL-safe credential token carrying the registration id
// as a debuggable prefix plus 16 bytes of entropy.
func NewQRToken(registrationID string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return fmt.Sprintf("qr_%s_%s", registrationID, base64.RawURLEncoding.EncodeToString(b)), nil
}
