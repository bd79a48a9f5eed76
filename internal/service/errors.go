package service

import "errors"

// Error taxonomy of the vault service. Callers match with [errors.Is]:
// validation, duplicate, and not-found conditions are recoverable and carry
// actionable messages; decryption failures mean the stored ciphertext cannot
// be authenticated under the owner's key. None of these messages ever carry
// ciphertext or key material.
var (
	// ErrInvalidInput wraps a validation failure on a request.
	ErrInvalidInput = errors.New("invalid data provided")

	// ErrDuplicateCredential is returned when an add or update collides with
	// an existing (app name, username) pair of the same owner.
	ErrDuplicateCredential = errors.New("credential for this app and account already exists")

	// ErrCredentialNotFound is returned when the target record is absent or
	// belongs to a different owner. The two cases are deliberately
	// indistinguishable to the caller.
	ErrCredentialNotFound = errors.New("credential was not found")

	// ErrDecryptionFailed is returned when stored ciphertext fails
	// authentication. Fatal for a single-record reveal; on listings it is
	// attached per record instead of aborting the whole result.
	ErrDecryptionFailed = errors.New("stored secret could not be decrypted")
)
