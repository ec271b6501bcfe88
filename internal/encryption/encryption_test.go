package encryption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestService_RoundTrip tests encrypt/decrypt with a real key
func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewService("unit-test-master-key")
	require.NoError(t, err)

	for _, plaintext := range []string{"", "secret-token", "açaí com granola"} {
		encrypted, err := svc.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := svc.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

// TestService_NonDeterministic tests that each encryption uses a fresh nonce
func TestService_NonDeterministic(t *testing.T) {
	t.Parallel()

	svc, err := NewService("unit-test-master-key")
	require.NoError(t, err)

	first, err := svc.Encrypt("same input")
	require.NoError(t, err)
	second, err := svc.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

// TestService_TamperDetection tests that modified ciphertext fails to decrypt
func TestService_TamperDetection(t *testing.T) {
	t.Parallel()

	svc, err := NewService("unit-test-master-key")
	require.NoError(t, err)

	encrypted, err := svc.Encrypt("secret-token")
	require.NoError(t, err)

	// Flip the last hex digit
	tampered := encrypted[:len(encrypted)-1]
	if encrypted[len(encrypted)-1] == '0' {
		tampered += "1"
	} else {
		tampered += "0"
	}

	_, err = svc.Decrypt(tampered)
	assert.Error(t, err)

	_, err = svc.Decrypt("not-hex!")
	assert.Error(t, err)

	_, err = svc.Decrypt("abcd")
	assert.Error(t, err, "ciphertext shorter than the nonce must be rejected")
}

// TestService_WrongKey tests that a different key cannot decrypt
func TestService_WrongKey(t *testing.T) {
	t.Parallel()

	first, err := NewService("key-one")
	require.NoError(t, err)
	second, err := NewService("key-two")
	require.NoError(t, err)

	encrypted, err := first.Encrypt("secret-token")
	require.NoError(t, err)

	_, err = second.Decrypt(encrypted)
	assert.Error(t, err)
}

// TestNoopService tests the passthrough used when no key is configured
func TestNoopService(t *testing.T) {
	t.Parallel()

	svc, err := NewService("")
	require.NoError(t, err)

	encrypted, err := svc.Encrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", encrypted)

	decrypted, err := svc.Decrypt("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", decrypted)
}

// TestService_Hash tests that hashing is stable and key-independent
func TestService_Hash(t *testing.T) {
	t.Parallel()

	keyed, err := NewService("unit-test-master-key")
	require.NoError(t, err)
	noop, err := NewService("")
	require.NoError(t, err)

	assert.Equal(t, keyed.Hash("value"), keyed.Hash("value"))
	assert.Equal(t, keyed.Hash("value"), noop.Hash("value"))
	assert.NotEqual(t, keyed.Hash("value"), keyed.Hash("other"))
}
