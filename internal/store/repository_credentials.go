package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/models"
)

// credentialRepository is the SQL-backed implementation of
// [CredentialStorage]. It executes all credential CRUD operations against the
// "credentials" and "extra_fields" tables using the embedded [*DB] connection
// and works identically over PostgreSQL and SQLite.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, credential_id, etc.).
type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialStorage] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialStorage {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateCredential inserts one credential row and returns it with the
// database-assigned id and timestamps. A uniqueness violation on
// (user_id, app_name, username) is reported as [ErrCredentialAlreadyExists];
// the insert is atomic, so a concurrent duplicate attempt loses cleanly.
func (r *credentialRepository) CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, insertCredential,
		credential.UserID,
		credential.AppName,
		credential.Username,
		credential.Secret,
		credential.URL,
		credential.KeyScheme,
	)

	var saved models.Credential
	scanErr := row.Scan(
		&saved.ID,
		&saved.UserID,
		&saved.AppName,
		&saved.Username,
		&saved.Secret,
		&saved.URL,
		&saved.KeyScheme,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if scanErr != nil {
		if isUniqueViolation(scanErr) {
			log.Warn().
				Str("func", "credentialRepository.CreateCredential").
				Int64("user_id", credential.UserID).
				Msg("credential with same app name and username already exists")
			return models.Credential{}, fmt.Errorf("%w: %s/%s", ErrCredentialAlreadyExists, credential.AppName, credential.Username)
		}
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotSaved
		}

		log.Err(scanErr).
			Str("func", "credentialRepository.CreateCredential").
			Int64("user_id", credential.UserID).
			Bool("retryable", r.isRetryable(scanErr)).
			Msg("failed to insert credential")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
	}

	return saved, nil
}

// CreateExtraField inserts one extra-field row for an existing credential.
// A uniqueness violation on (credential_id, field_name) is reported as
// [ErrExtraFieldAlreadyExists].
func (r *credentialRepository) CreateExtraField(ctx context.Context, field models.ExtraField) (models.ExtraField, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, insertExtraField,
		field.CredentialID,
		field.FieldName,
		field.Value,
	)

	var saved models.ExtraField
	scanErr := row.Scan(
		&saved.ID,
		&saved.CredentialID,
		&saved.FieldName,
		&saved.Value,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if scanErr != nil {
		if isUniqueViolation(scanErr) {
			log.Warn().
				Str("func", "credentialRepository.CreateExtraField").
				Int64("credential_id", field.CredentialID).
				Str("field_name", field.FieldName).
				Msg("extra field with same name already exists")
			return models.ExtraField{}, fmt.Errorf("%w: %s", ErrExtraFieldAlreadyExists, field.FieldName)
		}

		log.Err(scanErr).
			Str("func", "credentialRepository.CreateExtraField").
			Int64("credential_id", field.CredentialID).
			Bool("retryable", r.isRetryable(scanErr)).
			Msg("failed to insert extra field")
		return models.ExtraField{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
	}

	return saved, nil
}

// GetCredentialsByOwner retrieves every credential of the given user ordered
// by (app_name, username), with extra fields attached in one extra query.
//
// Returns an empty slice when no records are found.
func (r *credentialRepository) GetCredentialsByOwner(ctx context.Context, userID int64) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, getCredentialsByOwner, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "credentialRepository.GetCredentialsByOwner").
			Int64("user_id", userID).
			Bool("retryable", r.isRetryable(queryErr)).
			Msg("failed to execute query for getting user credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	credentials := make([]models.Credential, 0, 50)

	for rows.Next() {
		var credential models.Credential

		scanErr := rows.Scan(
			&credential.ID,
			&credential.UserID,
			&credential.AppName,
			&credential.Username,
			&credential.Secret,
			&credential.URL,
			&credential.KeyScheme,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "credentialRepository.GetCredentialsByOwner").
				Int64("user_id", userID).
				Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		credentials = append(credentials, credential)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "credentialRepository.GetCredentialsByOwner").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if len(credentials) == 0 {
		return credentials, nil
	}

	fieldsByCredential, fieldsErr := r.getExtraFieldsByOwner(ctx, userID)
	if fieldsErr != nil {
		return nil, fieldsErr
	}

	for i := range credentials {
		credentials[i].ExtraFields = fieldsByCredential[credentials[i].ID]
	}

	return credentials, nil
}

// GetCredential retrieves one owner-checked credential with its extra fields.
func (r *credentialRepository) GetCredential(ctx context.Context, userID, credentialID int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getCredentialByID, userID, credentialID)

	var credential models.Credential
	scanErr := row.Scan(
		&credential.ID,
		&credential.UserID,
		&credential.AppName,
		&credential.Username,
		&credential.Secret,
		&credential.URL,
		&credential.KeyScheme,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Credential{}, fmt.Errorf("%w: id %d", ErrCredentialNotFound, credentialID)
		}

		log.Err(scanErr).
			Str("func", "credentialRepository.GetCredential").
			Int64("user_id", userID).
			Int64("credential_id", credentialID).
			Msg("failed to scan credential row")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	fields, fieldsErr := r.getExtraFieldsByCredential(ctx, credentialID)
	if fieldsErr != nil {
		return models.Credential{}, fieldsErr
	}
	credential.ExtraFields = fields

	return credential, nil
}

// UpdateCredential applies a partial update built by [buildUpdateCredentialQuery].
// Zero affected rows means the record does not exist for this owner.
func (r *credentialRepository) UpdateCredential(ctx context.Context, update models.CredentialUpdate) error {
	log := logger.FromContext(ctx)

	query, args, buildErr := buildUpdateCredentialQuery(update)
	if buildErr != nil {
		log.Err(buildErr).
			Str("func", "credentialRepository.UpdateCredential").
			Int64("user_id", update.UserID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	result, execErr := r.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		if isUniqueViolation(execErr) {
			return fmt.Errorf("%w: update collides with an existing record", ErrCredentialAlreadyExists)
		}

		log.Err(execErr).
			Str("func", "credentialRepository.UpdateCredential").
			Int64("user_id", update.UserID).
			Int64("credential_id", update.ID).
			Bool("retryable", r.isRetryable(execErr)).
			Msg("failed to execute update statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affErr := result.RowsAffected()
	if affErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affErr)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrCredentialNotFound, update.ID)
	}

	return nil
}

// ReplaceExtraFields removes every extra field of the credential and inserts
// the submitted set inside one transaction, so a reader never observes a
// half-replaced field set.
func (r *credentialRepository) ReplaceExtraFields(ctx context.Context, credentialID int64, fields []models.ExtraField) error {
	log := logger.FromContext(ctx)

	tx, txErr := r.DB.BeginTx(ctx, nil)
	if txErr != nil {
		log.Err(txErr).
			Str("func", "credentialRepository.ReplaceExtraFields").
			Int64("credential_id", credentialID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, txErr)
	}
	defer tx.Rollback()

	if _, execErr := tx.ExecContext(ctx, deleteExtraFieldsByCredential, credentialID); execErr != nil {
		log.Err(execErr).
			Str("func", "credentialRepository.ReplaceExtraFields").
			Int64("credential_id", credentialID).
			Msg("failed to delete existing extra fields")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	for _, field := range fields {
		_, execErr := tx.ExecContext(ctx, insertExtraField, credentialID, field.FieldName, field.Value)
		if execErr != nil {
			if isUniqueViolation(execErr) {
				return fmt.Errorf("%w: %s", ErrExtraFieldAlreadyExists, field.FieldName)
			}

			log.Err(execErr).
				Str("func", "credentialRepository.ReplaceExtraFields").
				Int64("credential_id", credentialID).
				Str("field_name", field.FieldName).
				Bool("retryable", r.isRetryable(execErr)).
				Msg("failed to insert extra field")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "credentialRepository.ReplaceExtraFields").
			Int64("credential_id", credentialID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// DeleteCredential removes the credential and its extra fields in one
// transaction. The schema also carries ON DELETE CASCADE, but the explicit
// delete keeps the behaviour identical on engines where the pragma is off.
func (r *credentialRepository) DeleteCredential(ctx context.Context, userID, credentialID int64) error {
	log := logger.FromContext(ctx)

	tx, txErr := r.DB.BeginTx(ctx, nil)
	if txErr != nil {
		log.Err(txErr).
			Str("func", "credentialRepository.DeleteCredential").
			Int64("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, txErr)
	}
	defer tx.Rollback()

	if _, execErr := tx.ExecContext(ctx, deleteExtraFieldsByCredential, credentialID); execErr != nil {
		log.Err(execErr).
			Str("func", "credentialRepository.DeleteCredential").
			Int64("credential_id", credentialID).
			Msg("failed to delete extra fields")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	result, execErr := tx.ExecContext(ctx, deleteCredentialByID, userID, credentialID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "credentialRepository.DeleteCredential").
			Int64("user_id", userID).
			Int64("credential_id", credentialID).
			Bool("retryable", r.isRetryable(execErr)).
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affErr := result.RowsAffected()
	if affErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affErr)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrCredentialNotFound, credentialID)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "credentialRepository.DeleteCredential").
			Int64("credential_id", credentialID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// getExtraFieldsByOwner loads every extra field of a user keyed by owning
// credential id.
func (r *credentialRepository) getExtraFieldsByOwner(ctx context.Context, userID int64) (map[int64][]models.ExtraField, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, getExtraFieldsByOwner, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "credentialRepository.getExtraFieldsByOwner").
			Int64("user_id", userID).
			Bool("retryable", r.isRetryable(queryErr)).
			Msg("failed to execute query for getting extra fields")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	byCredential := make(map[int64][]models.ExtraField)

	for rows.Next() {
		var field models.ExtraField

		scanErr := rows.Scan(
			&field.ID,
			&field.CredentialID,
			&field.FieldName,
			&field.Value,
			&field.CreatedAt,
			&field.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "credentialRepository.getExtraFieldsByOwner").
				Int64("user_id", userID).
				Msg("failed to scan extra field row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		byCredential[field.CredentialID] = append(byCredential[field.CredentialID], field)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "credentialRepository.getExtraFieldsByOwner").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return byCredential, nil
}

// getExtraFieldsByCredential loads the extra fields of one credential ordered
// by field name.
func (r *credentialRepository) getExtraFieldsByCredential(ctx context.Context, credentialID int64) ([]models.ExtraField, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, getExtraFieldsByCredential, credentialID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "credentialRepository.getExtraFieldsByCredential").
			Int64("credential_id", credentialID).
			Msg("failed to execute query for getting extra fields")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	fields := make([]models.ExtraField, 0, 4)

	for rows.Next() {
		var field models.ExtraField

		scanErr := rows.Scan(
			&field.ID,
			&field.CredentialID,
			&field.FieldName,
			&field.Value,
			&field.CreatedAt,
			&field.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "credentialRepository.getExtraFieldsByCredential").
				Int64("credential_id", credentialID).
				Msg("failed to scan extra field row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		fields = append(fields, field)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "credentialRepository.getExtraFieldsByCredential").
			Int64("credential_id", credentialID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return fields, nil
}
