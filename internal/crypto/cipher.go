// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/avoronin/credvault/models"
)

// secretCipher is the private implementation of [SecretCipher].
// AES-256-GCM with a random 12-byte nonce prepended to the ciphertext:
// blob = nonce ‖ ciphertext, stored base64 (standard encoding) so the
// database only ever sees text.
type secretCipher struct{}

// NewSecretCipher constructs a stateless [SecretCipher].
func NewSecretCipher() SecretCipher {
	return &secretCipher{}
}

// Encrypt implements [SecretCipher]. Returns an error if the key material is
// malformed, cipher construction fails, or the random nonce read fails.
func (c *secretCipher) Encrypt(key KeyMaterial, plaintext []byte) (models.CipheredValue, error) {
	gcm, err := buildGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Decrypt can split it out again.
	blob := gcm.Seal(nonce, nonce, plaintext, nil)

	return models.CipheredValue(base64.StdEncoding.EncodeToString(blob)), nil
}

// Decrypt implements [SecretCipher]. All failure modes — bad base64, a blob
// shorter than the nonce, a wrong key, a flipped ciphertext byte — come back
// wrapped in [ErrDecryptionFailed] so that callers have a single condition
// to match. The underlying cause is attached for logs; it never contains key
// material or plaintext.
func (c *secretCipher) Decrypt(key KeyMaterial, value models.CipheredValue) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(string(value))
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecryptionFailed, err)
	}

	gcm, err := buildGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	// Split the blob into nonce and actual ciphertext.
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong key or corrupted ciphertext; GCM cannot tell which.
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// buildGCM decodes the key material and assembles the AES-GCM AEAD.
func buildGCM(key KeyMaterial) (cipher.AEAD, error) {
	raw, err := key.Bytes()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
