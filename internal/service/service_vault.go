// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/avoronin/credvault/internal/crypto"
	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/internal/store"
	"github.com/avoronin/credvault/internal/utils"
	"github.com/avoronin/credvault/internal/validators"
	"github.com/avoronin/credvault/models"
)

// vaultService orchestrates KeyDeriver + SecretCipher over the credential
// repository. It holds no mutable state of its own: keys are re-derived and
// values re-decrypted on every call, so nothing sensitive outlives an
// operation.
type vaultService struct {
	credentials store.CredentialStorage
	keys        crypto.KeyDeriver
	cipher      crypto.SecretCipher
	validator   validators.Validator

	// scheme is applied to newly created records; existing records always
	// decrypt (and re-encrypt) under the scheme stored with them.
	scheme models.KeyScheme

	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

// NewVaultService constructs a [VaultService] over the given collaborators.
func NewVaultService(
	credentials store.CredentialStorage,
	keys crypto.KeyDeriver,
	cipher crypto.SecretCipher,
	scheme models.KeyScheme,
	log *logger.Logger,
) VaultService {
	return &vaultService{
		credentials: credentials,
		keys:        keys,
		cipher:      cipher,
		validator:   validators.NewCredentialValidator(),
		scheme:      scheme,
		uuid:        utils.NewUUIDGenerator(),
		logger:      log,
	}
}

// opContext scopes the logger to one vault operation: a fresh op_id plus the
// owner id travel with the context into the repository layer.
func (v *vaultService) opContext(ctx context.Context, userID int64) context.Context {
	opLogger := v.logger.With().
		Str("op_id", v.uuid.Generate()).
		Int64("user_id", userID).
		Logger()

	return opLogger.WithContext(ctx)
}

// AddCredential implements [VaultService].
//
// The record itself is persisted first; extra fields follow best-effort. A
// field that fails to persist after the record committed is logged as a
// warning and skipped, never rolled back — an imported record with a missing
// PIN beats a lost record. Malformed pairs (empty name or value) are skipped
// silently.
func (v *vaultService) AddCredential(ctx context.Context, req models.AddCredentialRequest) (models.Credential, error) {
	ctx = v.opContext(ctx, req.UserID)
	log := logger.FromContext(ctx)

	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	key, err := v.keys.Derive(v.scheme, req.UserID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("derive owner key: %w", err)
	}

	sealedSecret, err := v.cipher.Encrypt(key, []byte(req.Secret))
	if err != nil {
		return models.Credential{}, fmt.Errorf("encrypt secret: %w", err)
	}

	saved, err := v.credentials.CreateCredential(ctx, models.Credential{
		UserID:    req.UserID,
		AppName:   req.AppName,
		Username:  req.Username,
		Secret:    sealedSecret,
		URL:       req.URL,
		KeyScheme: v.scheme,
	})
	if err != nil {
		return models.Credential{}, mapStorageError(err)
	}

	for _, input := range req.ExtraFields {
		if !input.WellFormed() {
			continue
		}

		sealedValue, encErr := v.cipher.Encrypt(key, []byte(input.Value))
		if encErr != nil {
			log.Warn().Err(encErr).
				Str("func", "vaultService.AddCredential").
				Str("field_name", input.FieldName).
				Msg("extra field was not encrypted, skipping")
			continue
		}

		savedField, saveErr := v.credentials.CreateExtraField(ctx, models.ExtraField{
			CredentialID: saved.ID,
			FieldName:    input.FieldName,
			Value:        sealedValue,
		})
		if saveErr != nil {
			log.Warn().Err(saveErr).
				Str("func", "vaultService.AddCredential").
				Int64("credential_id", saved.ID).
				Str("field_name", input.FieldName).
				Msg("extra field was not saved, credential is kept")
			continue
		}

		saved.ExtraFields = append(saved.ExtraFields, savedField)
	}

	return saved, nil
}

// GetCredentials implements [VaultService].
func (v *vaultService) GetCredentials(ctx context.Context, userID int64) ([]models.DecryptedCredential, error) {
	ctx = v.opContext(ctx, userID)
	log := logger.FromContext(ctx)

	credentials, err := v.credentials.GetCredentialsByOwner(ctx, userID)
	if err != nil {
		return nil, mapStorageError(err)
	}

	decrypted := make([]models.DecryptedCredential, 0, len(credentials))
	for _, credential := range credentials {
		item := v.decryptCredential(credential)
		if item.DecryptErr != nil {
			// Flag the record and keep listing; one corrupt row must not
			// hide the rest of the vault.
			log.Warn().Err(item.DecryptErr).
				Str("func", "vaultService.GetCredentials").
				Int64("credential_id", credential.ID).
				Msg("credential could not be decrypted")
		}
		decrypted = append(decrypted, item)
	}

	return decrypted, nil
}

// UpdateCredential implements [VaultService].
//
// Re-encryption of the secret and of replaced extra fields uses the scheme
// stored on the record, keeping every ciphertext of one record under a single
// scheme.
func (v *vaultService) UpdateCredential(ctx context.Context, req models.UpdateCredentialRequest) (models.Credential, error) {
	ctx = v.opContext(ctx, req.UserID)

	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := v.credentials.GetCredential(ctx, req.UserID, req.CredentialID)
	if err != nil {
		return models.Credential{}, mapStorageError(err)
	}

	key, err := v.keys.Derive(existing.KeyScheme, req.UserID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("derive owner key: %w", err)
	}

	update := models.CredentialUpdate{
		ID:       existing.ID,
		UserID:   req.UserID,
		AppName:  req.AppName,
		Username: req.Username,
		URL:      req.URL,
	}

	// An absent or empty secret keeps the stored ciphertext unchanged.
	if req.Secret != nil && *req.Secret != "" {
		sealedSecret, encErr := v.cipher.Encrypt(key, []byte(*req.Secret))
		if encErr != nil {
			return models.Credential{}, fmt.Errorf("encrypt secret: %w", encErr)
		}
		update.Secret = &sealedSecret
	}

	if err = v.credentials.UpdateCredential(ctx, update); err != nil {
		return models.Credential{}, mapStorageError(err)
	}

	// Full replace semantics: the submitted set substitutes the stored one.
	if req.ExtraFields != nil {
		fields := make([]models.ExtraField, 0, len(req.ExtraFields))
		for _, input := range req.ExtraFields {
			if !input.WellFormed() {
				continue
			}

			sealedValue, encErr := v.cipher.Encrypt(key, []byte(input.Value))
			if encErr != nil {
				return models.Credential{}, fmt.Errorf("encrypt extra field: %w", encErr)
			}

			fields = append(fields, models.ExtraField{
				CredentialID: existing.ID,
				FieldName:    input.FieldName,
				Value:        sealedValue,
			})
		}

		if err = v.credentials.ReplaceExtraFields(ctx, existing.ID, fields); err != nil {
			return models.Credential{}, mapStorageError(err)
		}
	}

	updated, err := v.credentials.GetCredential(ctx, req.UserID, req.CredentialID)
	if err != nil {
		return models.Credential{}, mapStorageError(err)
	}

	return updated, nil
}

// DeleteCredential implements [VaultService].
func (v *vaultService) DeleteCredential(ctx context.Context, userID, credentialID int64) error {
	ctx = v.opContext(ctx, userID)

	return mapStorageError(v.credentials.DeleteCredential(ctx, userID, credentialID))
}

// RevealCredential implements [VaultService].
func (v *vaultService) RevealCredential(ctx context.Context, userID, credentialID int64) (string, error) {
	ctx = v.opContext(ctx, userID)

	credential, err := v.credentials.GetCredential(ctx, userID, credentialID)
	if err != nil {
		return "", mapStorageError(err)
	}

	key, err := v.keys.Derive(credential.KeyScheme, userID)
	if err != nil {
		return "", fmt.Errorf("derive owner key: %w", err)
	}

	plaintext, err := v.cipher.Decrypt(key, credential.Secret)
	if err != nil {
		return "", mapCryptoError(err)
	}

	return string(plaintext), nil
}

// decryptCredential builds the plaintext view of one record. The first
// decryption failure marks the whole record via DecryptErr; identity fields
// stay populated so the caller can still render what the record is, just not
// what it contains.
func (v *vaultService) decryptCredential(credential models.Credential) models.DecryptedCredential {
	item := models.DecryptedCredential{
		ID:        credential.ID,
		UserID:    credential.UserID,
		AppName:   credential.AppName,
		Username:  credential.Username,
		URL:       credential.URL,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}

	key, err := v.keys.Derive(credential.KeyScheme, credential.UserID)
	if err != nil {
		item.DecryptErr = err
		return item
	}

	secret, err := v.cipher.Decrypt(key, credential.Secret)
	if err != nil {
		item.DecryptErr = mapCryptoError(err)
		return item
	}
	item.Secret = string(secret)

	for _, field := range credential.ExtraFields {
		value, fieldErr := v.cipher.Decrypt(key, field.Value)
		if fieldErr != nil {
			item.DecryptErr = mapCryptoError(fieldErr)
			return item
		}

		item.ExtraFields = append(item.ExtraFields, models.DecryptedExtraField{
			FieldName: field.FieldName,
			Value:     string(value),
		})
	}

	return item
}
