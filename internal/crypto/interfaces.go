// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the credential encryption subsystem: owner-scoped
// key derivation and authenticated encryption of secret values.
//
// Scheme of work:
//
//	key        = KeyDeriver.Derive(scheme, ownerID)   (Step 1)
//	ciphertext = SecretCipher.Encrypt(key, plaintext) (Step 2)
//	plaintext  = SecretCipher.Decrypt(key, ciphertext)
//
// Both components are stateless and safe for concurrent use. Neither knows
// anything about the network, the database, or users beyond the numeric
// owner id a key is scoped to.
package crypto

import "github.com/avoronin/credvault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver derives the symmetric key material for one owner scope.
//
// Derivation is deterministic: the same master secret, scheme, and owner id
// always yield the same key, which is what keeps previously written
// ciphertext decryptable without ever storing keys. All records of one owner
// share one derived key per scheme; this owner-wide scope is a documented
// compatibility property, not an accident (see models.KeyScheme).
type KeyDeriver interface {
	// Derive returns the key material for the given scheme and owner.
	// It fails only on an unknown scheme.
	Derive(scheme models.KeyScheme, ownerID int64) (KeyMaterial, error)
}

// SecretCipher performs authenticated encryption and decryption of a single
// opaque byte value under derived key material.
type SecretCipher interface {
	// Encrypt seals plaintext under key with a fresh random nonce and returns
	// a self-contained text-safe ciphertext. Two calls with identical inputs
	// produce different ciphertext.
	Encrypt(key KeyMaterial, plaintext []byte) (models.CipheredValue, error)

	// Decrypt opens a ciphertext produced by Encrypt. It returns
	// ErrDecryptionFailed (wrapped) if the value is malformed, was sealed
	// under a different key, or fails authentication. It never returns
	// partial or unauthenticated plaintext.
	Decrypt(key KeyMaterial, value models.CipheredValue) ([]byte, error)
}
