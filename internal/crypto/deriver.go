// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/hkdf"

	"github.com/avoronin/credvault/models"
)

const (
	// derivedKeyLen is the raw key length produced by every scheme:
	// 32 bytes, a full AES-256 key.
	derivedKeyLen = 32

	// legacyScopeSeparator joins the master secret and the decimal owner id
	// in the legacy scheme. Part of the wire format: changing it changes
	// every derived key.
	legacyScopeSeparator = "-"

	// legacyPadByte fills the tail when master+separator+owner is shorter
	// than derivedKeyLen. 0x20 to stay byte-compatible with existing data.
	legacyPadByte = 0x20

	// hkdfInfoPrefix is the domain-separation prefix of the HKDF info string.
	hkdfInfoPrefix = "credvault/owner/"
)

// KeyMaterial is the derived key representation consumed by SecretCipher:
// the URL-safe base64 form of exactly derivedKeyLen raw key bytes.
type KeyMaterial []byte

// Bytes decodes the key material back into the raw 32-byte key.
func (k KeyMaterial) Bytes() ([]byte, error) {
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(k)))
	n, err := base64.URLEncoding.Decode(raw, k)
	if err != nil {
		return nil, fmt.Errorf("decode key material: %w", err)
	}
	return raw[:n], nil
}

// String implements fmt.Stringer. Key material must never end up in logs or
// error messages, so the value is always masked.
func (k KeyMaterial) String() string {
	return "[masked]"
}

// keyDeriver is the private implementation of [KeyDeriver]. The master
// secret is injected once at construction and never changes for the process
// lifetime; rotating it invalidates all previously encrypted data.
type keyDeriver struct {
	masterSecret []byte
}

// NewKeyDeriver constructs a [KeyDeriver] around the given master secret.
// Returns [ErrMasterSecretRequired] when the secret is empty.
func NewKeyDeriver(masterSecret []byte) (KeyDeriver, error) {
	if len(masterSecret) == 0 {
		return nil, ErrMasterSecretRequired
	}

	secret := make([]byte, len(masterSecret))
	copy(secret, masterSecret)

	return &keyDeriver{masterSecret: secret}, nil
}

// Derive implements [KeyDeriver]. It dispatches to the scheme-specific
// derivation and returns [ErrUnknownKeyScheme] for anything else.
func (k *keyDeriver) Derive(scheme models.KeyScheme, ownerID int64) (KeyMaterial, error) {
	switch scheme {
	case models.KeySchemeOwnerLegacy:
		return k.deriveLegacy(ownerID), nil
	case models.KeySchemeOwnerHKDF:
		return k.deriveHKDF(ownerID)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKeyScheme, scheme)
	}
}

// deriveLegacy reproduces the original derivation exactly: the master secret
// and the decimal owner id joined by legacyScopeSeparator, padded right with
// legacyPadByte to derivedKeyLen (or truncated when longer), then URL-safe
// base64 encoded.
//
// This is not a cryptographically strong KDF — no salt, no stretching — and
// is kept solely for byte-compatibility with existing ciphertext. New data
// should be written under [models.KeySchemeOwnerHKDF].
func (k *keyDeriver) deriveLegacy(ownerID int64) KeyMaterial {
	scoped := make([]byte, 0, len(k.masterSecret)+1+20)
	scoped = append(scoped, k.masterSecret...)
	scoped = append(scoped, legacyScopeSeparator...)
	scoped = strconv.AppendInt(scoped, ownerID, 10)

	raw := make([]byte, derivedKeyLen)
	for i := range raw {
		raw[i] = legacyPadByte
	}
	// copy stops at derivedKeyLen, which is exactly the truncation rule.
	copy(raw, scoped)

	return encodeKey(raw)
}

// deriveHKDF derives the owner key via HKDF-SHA256 keyed by the master
// secret, with a domain-separated info string carrying the owner scope.
// No salt is used so derivation stays a pure function of (secret, owner).
func (k *keyDeriver) deriveHKDF(ownerID int64) (KeyMaterial, error) {
	info := hkdfInfoPrefix + strconv.FormatInt(ownerID, 10)
	reader := hkdf.New(sha256.New, k.masterSecret, nil, []byte(info))

	raw := make([]byte, derivedKeyLen)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}

	return encodeKey(raw), nil
}

// encodeKey wraps raw key bytes into the base64 KeyMaterial container.
func encodeKey(raw []byte) KeyMaterial {
	out := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
	base64.URLEncoding.Encode(out, raw)
	return out
}
