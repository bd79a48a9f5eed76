// SPDX-License-Identifier: Apache-2.0

package crypto

import "errors"

var (
	// ErrMasterSecretRequired is returned by NewKeyDeriver when the injected
	// master secret is empty. This is a configuration error: the process must
	// refuse to serve without a master secret, since both encryption and
	// decryption depend on it.
	ErrMasterSecretRequired = errors.New("master secret is required")

	// ErrUnknownKeyScheme is returned when a derivation is requested under a
	// key scheme the deriver does not recognise.
	ErrUnknownKeyScheme = errors.New("unknown key derivation scheme")

	// ErrDecryptionFailed is returned (wrapped) by SecretCipher.Decrypt for
	// every decryption failure: malformed encoding, truncated blob, wrong
	// key, or authentication-tag mismatch. Callers match it with errors.Is
	// and must treat the value as unreadable.
	ErrDecryptionFailed = errors.New("decryption failed")
)
