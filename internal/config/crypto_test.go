package config_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCryptoRejectsShortKey(t *testing.T) {
	os.Setenv("CRYPTO_KEY", "short")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("InitCrypto should panic for a key that is not 32 bytes")
		}
	}()

	config.InitCrypto()
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("RoundTrip", func(t *testing.T) {
		plaintext := []byte("%PDF-1.7 pretend resume bytes")

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if ciphertext == string(plaintext) {
			t.Fatal("ciphertext equals plaintext")
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if !bytes.Equal(decrypted, plaintext) {
			t.Errorf("decrypted %q does not match original %q", decrypted, plaintext)
		}
	})

	t.Run("TamperedCiphertext", func(t *testing.T) {
		ciphertext, err := config.Encrypt([]byte("payload"))
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if _, err := config.Decrypt("AAAA" + ciphertext[4:]); err == nil {
			t.Error("Decrypt should fail on tampered ciphertext")
		}
	})

	t.Run("NotBase64", func(t *testing.T) {
		if _, err := config.Decrypt("not-base64!!"); err == nil {
			t.Error("Decrypt should fail on invalid encoding")
		}
	})
}
