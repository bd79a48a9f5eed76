package service

import (
	"context"

	"github.com/avoronin/credvault/models"
)

// VaultService exposes the credential vault operations with plaintext at the
// boundary and ciphertext at rest. The owner id on every request is the
// authenticated caller's identity, validated upstream; the service only
// authorizes by owner-id equality.
type VaultService interface {
	// AddCredential encrypts and persists a new credential with its extra
	// fields. Fails with ErrInvalidInput on missing app name, username, or
	// secret, and with ErrDuplicateCredential when the (app name, username)
	// pair already exists for the owner.
	AddCredential(ctx context.Context, req models.AddCredentialRequest) (models.Credential, error)

	// GetCredentials returns every credential of the owner, decrypted,
	// ordered by (app name, username). A record whose ciphertext fails
	// authentication is returned with DecryptErr set instead of aborting
	// the listing.
	GetCredentials(ctx context.Context, userID int64) ([]models.DecryptedCredential, error)

	// UpdateCredential applies a partial update. An absent or empty new
	// secret keeps the stored ciphertext unchanged; a provided extra-field
	// set fully replaces the existing one.
	UpdateCredential(ctx context.Context, req models.UpdateCredentialRequest) (models.Credential, error)

	// DeleteCredential removes an owned credential and its extra fields.
	DeleteCredential(ctx context.Context, userID, credentialID int64) error

	// RevealCredential decrypts and returns the secret of one owned
	// credential. Read-only; intended for on-demand reveal/copy.
	RevealCredential(ctx context.Context, userID, credentialID int64) (string, error)
}
