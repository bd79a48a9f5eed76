package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/avoronin/credvault/models"
)

const (
	insertCredential = `INSERT INTO credentials (user_id, app_name, username, secret, url, key_scheme)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, app_name, username, secret, url, key_scheme, created_at, updated_at;`

	insertExtraField = `INSERT INTO extra_fields (credential_id, field_name, value)
		VALUES ($1, $2, $3)
		RETURNING id, credential_id, field_name, value, created_at, updated_at;`

	getCredentialsByOwner = `SELECT id, user_id, app_name, username, secret, url, key_scheme, created_at, updated_at
		FROM credentials
		WHERE user_id = $1
		ORDER BY app_name, username;`

	getCredentialByID = `SELECT id, user_id, app_name, username, secret, url, key_scheme, created_at, updated_at
		FROM credentials
		WHERE user_id = $1 AND id = $2;`

	getExtraFieldsByOwner = `SELECT f.id, f.credential_id, f.field_name, f.value, f.created_at, f.updated_at
		FROM extra_fields f
		JOIN credentials c ON c.id = f.credential_id
		WHERE c.user_id = $1
		ORDER BY f.credential_id, f.field_name;`

	getExtraFieldsByCredential = `SELECT id, credential_id, field_name, value, created_at, updated_at
		FROM extra_fields
		WHERE credential_id = $1
		ORDER BY field_name;`

	deleteExtraFieldsByCredential = `DELETE FROM extra_fields
		WHERE credential_id = $1;`

	deleteCredentialByID = `DELETE FROM credentials
		WHERE user_id = $1 AND id = $2;`
)

// buildUpdateCredentialQuery builds the dynamic partial UPDATE for a
// credential. Only non-nil fields of update end up in the SET clause;
// updated_at is always touched. The WHERE clause pins both id and user_id so
// a record can never be updated across an ownership boundary.
func buildUpdateCredentialQuery(update models.CredentialUpdate) (string, []any, error) {
	builder := sq.Update("credentials").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))

	if update.AppName != nil {
		builder = builder.Set("app_name", *update.AppName)
	}
	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.URL != nil {
		// An explicit empty URL clears the column back to NULL; the field
		// is optional and an empty string has no meaning for it.
		if *update.URL == "" {
			builder = builder.Set("url", nil)
		} else {
			builder = builder.Set("url", *update.URL)
		}
	}
	if update.Secret != nil {
		builder = builder.Set("secret", *update.Secret)
	}

	builder = builder.Where(sq.Eq{"id": update.ID, "user_id": update.UserID})

	return builder.ToSql()
}
