package store

import (
	"context"

	"github.com/avoronin/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_storage_mock.go -package=mock

// CredentialStorage is the persistence boundary of the vault: CRUD over
// credentials and their extra fields with uniqueness enforcement delegated to
// the database (atomic insert-with-uniqueness-check, never application-level
// locking). All methods are owner-scoped where the operation touches an
// existing record.
type CredentialStorage interface {
	// CreateCredential inserts a new credential and returns it with
	// database-assigned id and timestamps. Returns
	// [ErrCredentialAlreadyExists] on a (user_id, app_name, username)
	// uniqueness violation.
	CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error)

	// CreateExtraField inserts a single extra field for an existing
	// credential. Returns [ErrExtraFieldAlreadyExists] on a
	// (credential_id, field_name) uniqueness violation.
	CreateExtraField(ctx context.Context, field models.ExtraField) (models.ExtraField, error)

	// GetCredentialsByOwner returns every credential of the given user,
	// ordered by (app_name, username), with extra fields attached.
	// An empty slice is returned when the user has no records.
	GetCredentialsByOwner(ctx context.Context, userID int64) ([]models.Credential, error)

	// GetCredential returns one credential with its extra fields. Returns
	// [ErrCredentialNotFound] when the record is absent or owned by a
	// different user.
	GetCredential(ctx context.Context, userID, credentialID int64) (models.Credential, error)

	// UpdateCredential applies a partial update. Nil fields of update are
	// left unchanged. Returns [ErrCredentialNotFound] when the record is
	// absent or not owned, [ErrCredentialAlreadyExists] when the new
	// (app_name, username) pair collides with another record of the user.
	UpdateCredential(ctx context.Context, update models.CredentialUpdate) error

	// ReplaceExtraFields deletes every extra field of the credential and
	// inserts the provided set, all inside one transaction.
	ReplaceExtraFields(ctx context.Context, credentialID int64, fields []models.ExtraField) error

	// DeleteCredential removes the credential and cascades to its extra
	// fields. Returns [ErrCredentialNotFound] when the record is absent or
	// not owned.
	DeleteCredential(ctx context.Context, userID, credentialID int64) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
