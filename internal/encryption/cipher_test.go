package encryption_test

import (
	"errors"
	"testing"

	"github.com/liamba05/Fynnance/internal/encryption"
)

func newCipher(t *testing.T, keys string) *encryption.FieldCipher {
	t.Helper()
	c, err := encryption.NewFieldCipher(keys)
	if err != nil {
		t.Fatalf("NewFieldCipher() returned unexpected error: %v", err)
	}
	return c
}

func mustKey(t *testing.T) string {
	t.Helper()
	k, err := encryption.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() returned unexpected error: %v", err)
	}
	return k
}

// TestFieldCipher tests field encryption and key rotation.
//
// WHY: Income and credit score are stored encrypted. Stored values must never
// be plaintext, and rotating in a new key must not lock out existing rows.
func TestFieldCipher(t *testing.T) {
	t.Run("round trips and hides plaintext", func(t *testing.T) {
		c := newCipher(t, mustKey(t))

		tok, err := c.Encrypt("85000")
		if err != nil {
			t.Fatalf("Encrypt() returned unexpected error: %v", err)
		}
		if tok == "85000" {
			t.Fatal("Expected ciphertext to differ from plaintext")
		}

		got, err := c.Decrypt(tok)
		if err != nil {
			t.Fatalf("Decrypt() returned unexpected error: %v", err)
		}
		if got != "85000" {
			t.Errorf("Expected 85000, got %q", got)
		}
	})

	t.Run("old key still decrypts after rotation", func(t *testing.T) {
		oldKey, newKey := mustKey(t), mustKey(t)
		tok, _ := newCipher(t, oldKey).Encrypt("720")

		rotated := newCipher(t, newKey+","+oldKey)
		got, err := rotated.Decrypt(tok)

		if err != nil || got != "720" {
			t.Errorf("Expected 720 via rotated key set, got %q, %v", got, err)
		}
	})

	t.Run("foreign token is rejected", func(t *testing.T) {
		tok, _ := newCipher(t, mustKey(t)).Encrypt("720")

		_, err := newCipher(t, mustKey(t)).Decrypt(tok)

		if !errors.Is(err, encryption.ErrDecrypt) {
			t.Errorf("Expected ErrDecrypt, got %v", err)
		}
	})

	t.Run("missing or malformed key", func(t *testing.T) {
		for _, keys := range []string{"", " , ", "not-a-key"} {
			if _, err := encryption.NewFieldCipher(keys); err == nil {
				t.Errorf("NewFieldCipher(%q) expected error", keys)
			}
		}
	})
}
