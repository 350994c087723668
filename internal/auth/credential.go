package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// digestPrefix marks digests produced by the current scheme. Bare 64-hex
// digests are legacy SHA-256 values from older exports and keep verifying.
const digestPrefix = "sha3:"

// ErrInvalidPIN indicates the PIN is not exactly four digits.
var ErrInvalidPIN = errors.New("auth: pin must be exactly 4 digits")

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidPIN reports whether pin is exactly four digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// HashPIN returns the deterministic one-way digest of a 4-digit PIN.
func HashPIN(pin string) (string, error) {
	if !ValidPIN(pin) {
		return "", ErrInvalidPIN
	}
	return digest(pin), nil
}

// VerifyPIN recomputes the digest for pin and compares it against the stored
// one. Comparison is constant-time. The submitted PIN is never logged or
// stored by any caller.
func VerifyPIN(pin, stored string) bool {
	if stored == "" {
		return false
	}
	var computed string
	if strings.HasPrefix(stored, digestPrefix) {
		computed = digest(pin)
	} else {
		// Legacy SHA-256 hex digest, kept verbatim through imports.
		sum := sha256.Sum256([]byte(pin))
		computed = hex.EncodeToString(sum[:])
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

// MigrateLegacy converts a historical plaintext PIN into a stored digest.
// It returns the digest to keep and whether anything changed; calling it
// again on the result is a no-op.
func MigrateLegacy(stored, legacyPIN string) (string, bool) {
	if legacyPIN == "" {
		return stored, false
	}
	return digest(legacyPIN), true
}

func digest(pin string) string {
	sum := sha3.Sum256([]byte(pin))
	return digestPrefix + hex.EncodeToString(sum[:])
}
