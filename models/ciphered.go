// SPDX-License-Identifier: Apache-2.0

package models

// CipheredValue is a string alias representing encrypted content.
// The actual structure and meaning of the value are unknown to the database:
// it stores base64 text and never sees plaintext.
type CipheredValue string

// KeyScheme identifies the key-derivation scheme the ciphertext of a record
// was produced under. The scheme is persisted with every credential so that
// decryption always uses the derivation the data was written with, even after
// the configured default changes.
type KeyScheme int

const (
	// KeySchemeOwnerLegacy is the compatibility scheme: the master secret and
	// the decimal owner id are joined with a separator, padded/truncated to
	// 32 bytes, and URL-safe base64 encoded. It is not a hardened KDF (no
	// salt, no stretching) and is kept only so previously written ciphertext
	// stays readable. New deployments should prefer KeySchemeOwnerHKDF.
	KeySchemeOwnerLegacy KeyScheme = 1

	// KeySchemeOwnerHKDF derives the owner key via HKDF-SHA256 keyed by the
	// master secret with an owner-scoped info string. Same owner-wide scope
	// as the legacy scheme, hardened derivation.
	KeySchemeOwnerHKDF KeyScheme = 2
)

// Valid reports whether s is a known key scheme.
func (s KeyScheme) Valid() bool {
	return s == KeySchemeOwnerLegacy || s == KeySchemeOwnerHKDF
}
