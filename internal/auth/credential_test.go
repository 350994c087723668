package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPINDeterministic(t *testing.T) {
	first, err := HashPIN("1234")
	require.NoError(t, err)
	second, err := HashPIN("1234")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.True(t, VerifyPIN("1234", first))
	require.False(t, VerifyPIN("1235", first))
	require.False(t, VerifyPIN("0000", first))
}

func TestHashPINRejectsMalformed(t *testing.T) {
	for _, pin := range []string{"", "123", "12345", "12a4", "12 4", "١٢٣٤"} {
		_, err := HashPIN(pin)
		require.ErrorIs(t, err, ErrInvalidPIN, "pin %q", pin)
	}
}

func TestVerifyPINLegacySHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("9999"))
	legacy := hex.EncodeToString(sum[:])
	require.True(t, VerifyPIN("9999", legacy))
	require.False(t, VerifyPIN("9998", legacy))
}

func TestVerifyPINEmptyDigest(t *testing.T) {
	require.False(t, VerifyPIN("1234", ""))
}

func TestMigrateLegacy(t *testing.T) {
	digest, changed := MigrateLegacy("", "1234")
	require.True(t, changed)
	require.True(t, VerifyPIN("1234", digest))

	// Idempotent once the plaintext is gone.
	same, changed := MigrateLegacy(digest, "")
	require.False(t, changed)
	require.Equal(t, digest, same)

	// A lingering plaintext always wins over a stale digest.
	redone, changed := MigrateLegacy(digest, "5678")
	require.True(t, changed)
	require.True(t, VerifyPIN("5678", redone))
}
