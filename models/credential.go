// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Credential represents a single stored application credential.
// It is the primary persistence model of the vault. The secret payload is
// stored encrypted and opaque to the database.
type Credential struct {
	// ID is the unique identifier of the record in the database.
	ID int64 `json:"id"`

	// UserID is the owner of this credential. Every operation on the record
	// is authorized by owner-id equality; records of different owners never
	// share derived keys.
	UserID int64 `json:"user_id"`

	// AppName is the human-readable name of the application the credential
	// belongs to (e.g. "Gmail").
	AppName string `json:"app_name"`

	// Username is the account identifier inside the application.
	// The triple (UserID, AppName, Username) is unique.
	Username string `json:"username"`

	// Secret holds the encrypted secret value. The database treats this
	// field as an opaque string.
	Secret CipheredValue `json:"secret"`

	// URL is an optional link to the application.
	URL *string `json:"url,omitempty"`

	// KeyScheme records which key-derivation scheme the Secret (and the
	// record's extra fields) were encrypted under.
	KeyScheme KeyScheme `json:"key_scheme"`

	// ExtraFields contains the named encrypted values owned by this record.
	// They are deleted together with the record.
	ExtraFields []ExtraField `json:"extra_fields,omitempty"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt *time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c *Credential) TableName() string {
	return "credentials"
}

// ExtraField is a named encrypted value owned by exactly one Credential
// (e.g. a PIN or a profile password). The pair (CredentialID, FieldName)
// is unique.
type ExtraField struct {
	// ID is the unique identifier of the field in the database.
	ID int64 `json:"id"`

	// CredentialID is the owning credential record.
	CredentialID int64 `json:"credential_id"`

	// FieldName is the user-chosen name of the field (e.g. "mpin").
	FieldName string `json:"field_name"`

	// Value holds the encrypted field value, opaque to the database.
	Value CipheredValue `json:"value"`

	// CreatedAt is the timestamp when the field was created.
	CreatedAt *time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the ExtraField model.
func (f *ExtraField) TableName() string {
	return "extra_fields"
}

// ExtraFieldInput is one plaintext name/value pair submitted alongside an add
// or update request. Inputs are an ordered sequence rather than a map so that
// insertion order is preserved and duplicate names surface as a storage
// uniqueness violation instead of silently collapsing.
type ExtraFieldInput struct {
	FieldName string `json:"field_name"`
	Value     string `json:"field_value"`
}

// WellFormed reports whether the pair carries both a name and a value.
// Pairs failing this check are skipped silently by the service.
func (in ExtraFieldInput) WellFormed() bool {
	return in.FieldName != "" && in.Value != ""
}

// AddCredentialRequest carries the plaintext input of a credential creation.
type AddCredentialRequest struct {
	UserID      int64
	AppName     string
	Username    string
	Secret      string
	URL         *string
	ExtraFields []ExtraFieldInput
}

// UpdateCredentialRequest carries a partial update of an existing credential.
// Nil pointer fields mean "leave unchanged". A nil or empty Secret keeps the
// stored ciphertext as-is. A non-nil ExtraFields fully replaces the record's
// field set (never merges); an empty non-nil slice removes all fields.
type UpdateCredentialRequest struct {
	UserID       int64
	CredentialID int64
	AppName      *string
	Username     *string
	URL          *string
	Secret       *string
	ExtraFields  []ExtraFieldInput
}

// DecryptedCredential is the plaintext view of a Credential returned by
// listing operations. DecryptErr is set when the stored ciphertext of the
// record (or one of its fields) could not be decrypted; the listing itself
// continues past such records.
type DecryptedCredential struct {
	ID          int64                 `json:"id"`
	UserID      int64                 `json:"user_id"`
	AppName     string                `json:"app_name"`
	Username    string                `json:"username"`
	Secret      string                `json:"secret"`
	URL         *string               `json:"url,omitempty"`
	ExtraFields []DecryptedExtraField `json:"extra_fields,omitempty"`
	CreatedAt   *time.Time            `json:"created_at"`
	UpdatedAt   *time.Time            `json:"updated_at"`

	// DecryptErr marks a record whose ciphertext failed authentication.
	// It is never serialized; callers render such records as unreadable.
	DecryptErr error `json:"-"`
}

// DecryptedExtraField is the plaintext view of one ExtraField.
type DecryptedExtraField struct {
	FieldName string `json:"field_name"`
	Value     string `json:"field_value"`
}

// CredentialUpdate is the storage-level partial update descriptor built by
// the service from an UpdateCredentialRequest. Secret is set only when the
// caller supplied a new plaintext secret.
type CredentialUpdate struct {
	ID       int64
	UserID   int64
	AppName  *string
	Username *string
	URL      *string
	Secret   *CipheredValue
}
