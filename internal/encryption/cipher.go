// Package encryption encrypts sensitive user fact fields at rest with Fernet tokens.
package encryption

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// ErrDecrypt indicates a token that was not produced by any configured key or was tampered with.
var ErrDecrypt = errors.New("failed to decrypt field")

// FieldCipher encrypts and decrypts single string values.
// The first key encrypts; every key is tried on decrypt so keys can be rotated.
type FieldCipher struct {
	keys []*fernet.Key
}

// NewFieldCipher builds a cipher from comma-separated base64 Fernet keys.
func NewFieldCipher(encodedKeys string) (*FieldCipher, error) {
	var parts []string
	for _, p := range strings.Split(encodedKeys, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no encryption key configured")
	}
	keys, err := fernet.DecodeKeys(parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &FieldCipher{keys: keys}, nil
}

// GenerateKey returns a new base64 encoded Fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// Encrypt returns the Fernet token for plaintext.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt field: %w", err)
	}
	return string(tok), nil
}

// Decrypt returns the plaintext of token. Tokens do not expire.
func (c *FieldCipher) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, c.keys)
	if msg == nil {
		return "", ErrDecrypt
	}
	return string(msg), nil
}
