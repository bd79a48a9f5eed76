// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoronin/credvault/internal/crypto"
	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/internal/mock"
	"github.com/avoronin/credvault/internal/store"
	"github.com/avoronin/credvault/models"
)

// newTestVaultSvc builds a vaultService over a mocked storage and real
// crypto, so tests exercise genuine encrypt/decrypt round-trips.
func newTestVaultSvc(t *testing.T, ctrl *gomock.Controller) (*vaultService, *mock.MockCredentialStorage, crypto.KeyDeriver, crypto.SecretCipher) {
	t.Helper()

	mockStorage := mock.NewMockCredentialStorage(ctrl)

	keys, err := crypto.NewKeyDeriver([]byte("test-master-secret"))
	require.NoError(t, err)
	cipher := crypto.NewSecretCipher()

	svc := NewVaultService(mockStorage, keys, cipher, models.KeySchemeOwnerLegacy, logger.Nop()).(*vaultService)

	return svc, mockStorage, keys, cipher
}

func strPtr(s string) *string { return &s }

func sealSecret(t *testing.T, keys crypto.KeyDeriver, cipher crypto.SecretCipher, scheme models.KeyScheme, userID int64, plaintext string) models.CipheredValue {
	t.Helper()

	key, err := keys.Derive(scheme, userID)
	require.NoError(t, err)
	sealed, err := cipher.Encrypt(key, []byte(plaintext))
	require.NoError(t, err)

	return sealed
}

// ── AddCredential ────────────────────────────────────────────────────────────

func TestVaultService_AddCredential_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)
	ctx := context.Background()

	req := models.AddCredentialRequest{
		UserID:   7,
		AppName:  "github",
		Username: "octocat",
		Secret:   "hunter2",
		URL:      strPtr("https://github.com"),
	}

	mockStorage.EXPECT().CreateCredential(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, credential models.Credential) (models.Credential, error) {
			assert.Equal(t, req.UserID, credential.UserID)
			assert.Equal(t, req.AppName, credential.AppName)
			assert.Equal(t, req.Username, credential.Username)
			assert.Equal(t, models.KeySchemeOwnerLegacy, credential.KeyScheme)

			// The stored secret must be ciphertext, not the submitted value,
			// and it must decrypt back under the owner key.
			assert.NotEqual(t, models.CipheredValue(req.Secret), credential.Secret)
			key, err := keys.Derive(credential.KeyScheme, credential.UserID)
			require.NoError(t, err)
			plaintext, err := cipher.Decrypt(key, credential.Secret)
			require.NoError(t, err)
			assert.Equal(t, req.Secret, string(plaintext))

			credential.ID = 1
			return credential, nil
		},
	)

	saved, err := svc.AddCredential(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}

func TestVaultService_AddCredential_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestVaultSvc(t, ctrl)

	tests := []struct {
		name string
		req  models.AddCredentialRequest
	}{
		{name: "missing user id", req: models.AddCredentialRequest{AppName: "github", Username: "octocat", Secret: "s"}},
		{name: "empty app name", req: models.AddCredentialRequest{UserID: 7, Username: "octocat", Secret: "s"}},
		{name: "empty username", req: models.AddCredentialRequest{UserID: 7, AppName: "github", Secret: "s"}},
		{name: "empty secret", req: models.AddCredentialRequest{UserID: 7, AppName: "github", Username: "octocat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCredential(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestVaultService_AddCredential_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().CreateCredential(gomock.Any(), gomock.Any()).
		Return(models.Credential{}, store.ErrCredentialAlreadyExists)

	_, err := svc.AddCredential(context.Background(), models.AddCredentialRequest{
		UserID:   7,
		AppName:  "github",
		Username: "octocat",
		Secret:   "hunter2",
	})
	require.ErrorIs(t, err, ErrDuplicateCredential)
}

func TestVaultService_AddCredential_ExtraFieldsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	req := models.AddCredentialRequest{
		UserID:   7,
		AppName:  "github",
		Username: "octocat",
		Secret:   "hunter2",
		ExtraFields: []models.ExtraFieldInput{
			{FieldName: "recovery_email", Value: "me@example.com"},
			{FieldName: "", Value: "orphan"}, // malformed, skipped silently
			{FieldName: "totp_seed", Value: "JBSWY3DP"},
		},
	}

	mockStorage.EXPECT().CreateCredential(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, credential models.Credential) (models.Credential, error) {
			credential.ID = 1
			return credential, nil
		},
	)

	// First well-formed field persists; the second fails — the credential
	// must survive with only the first field attached.
	mockStorage.EXPECT().CreateExtraField(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, field models.ExtraField) (models.ExtraField, error) {
			assert.Equal(t, "recovery_email", field.FieldName)
			field.ID = 10
			return field, nil
		},
	)
	mockStorage.EXPECT().CreateExtraField(gomock.Any(), gomock.Any()).
		Return(models.ExtraField{}, errors.New("db gone away"))

	saved, err := svc.AddCredential(context.Background(), req)
	require.NoError(t, err, "a failed extra field must not fail the credential")
	require.Len(t, saved.ExtraFields, 1)
	assert.Equal(t, "recovery_email", saved.ExtraFields[0].FieldName)
}

// ── GetCredentials ───────────────────────────────────────────────────────────

func TestVaultService_GetCredentials_DecryptsRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "hunter2")
	sealedField := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "me@example.com")

	mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(7)).Return([]models.Credential{
		{
			ID:        1,
			UserID:    7,
			AppName:   "github",
			Username:  "octocat",
			Secret:    sealed,
			KeyScheme: models.KeySchemeOwnerLegacy,
			ExtraFields: []models.ExtraField{
				{ID: 10, CredentialID: 1, FieldName: "recovery_email", Value: sealedField},
			},
		},
	}, nil)

	decrypted, err := svc.GetCredentials(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, decrypted, 1)

	assert.NoError(t, decrypted[0].DecryptErr)
	assert.Equal(t, "hunter2", decrypted[0].Secret)
	require.Len(t, decrypted[0].ExtraFields, 1)
	assert.Equal(t, "me@example.com", decrypted[0].ExtraFields[0].Value)
}

func TestVaultService_GetCredentials_CorruptRecordIsFlaggedNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	good := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "hunter2")

	mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(7)).Return([]models.Credential{
		{ID: 1, UserID: 7, AppName: "broken", Username: "u", Secret: models.CipheredValue("not-a-ciphertext"), KeyScheme: models.KeySchemeOwnerLegacy},
		{ID: 2, UserID: 7, AppName: "github", Username: "octocat", Secret: good, KeyScheme: models.KeySchemeOwnerLegacy},
	}, nil)

	decrypted, err := svc.GetCredentials(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, decrypted, 2, "one corrupt row must not hide the rest")

	assert.ErrorIs(t, decrypted[0].DecryptErr, ErrDecryptionFailed)
	assert.Equal(t, "broken", decrypted[0].AppName, "identity fields stay populated")
	assert.Empty(t, decrypted[0].Secret)

	assert.NoError(t, decrypted[1].DecryptErr)
	assert.Equal(t, "hunter2", decrypted[1].Secret)
}

func TestVaultService_GetCredentials_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(7)).
		Return([]models.Credential{}, nil)

	decrypted, err := svc.GetCredentials(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

// ── UpdateCredential ─────────────────────────────────────────────────────────

func TestVaultService_UpdateCredential_NilSecretKeepsCiphertext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "hunter2")
	existing := models.Credential{
		ID: 1, UserID: 7, AppName: "github", Username: "octocat",
		Secret: sealed, KeyScheme: models.KeySchemeOwnerLegacy,
	}

	gomock.InOrder(
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
		mockStorage.EXPECT().UpdateCredential(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, update models.CredentialUpdate) error {
				assert.Nil(t, update.Secret, "absent secret must not touch the stored ciphertext")
				require.NotNil(t, update.AppName)
				assert.Equal(t, "gitlab", *update.AppName)
				return nil
			},
		),
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
	)

	_, err := svc.UpdateCredential(context.Background(), models.UpdateCredentialRequest{
		UserID:       7,
		CredentialID: 1,
		AppName:      strPtr("gitlab"),
	})
	require.NoError(t, err)
}

func TestVaultService_UpdateCredential_ReencryptsUnderStoredScheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	// The record was written under the HKDF scheme; the service default is
	// the legacy scheme, so the re-encryption must follow the record.
	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerHKDF, 7, "old-secret")
	existing := models.Credential{
		ID: 1, UserID: 7, AppName: "github", Username: "octocat",
		Secret: sealed, KeyScheme: models.KeySchemeOwnerHKDF,
	}

	gomock.InOrder(
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
		mockStorage.EXPECT().UpdateCredential(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, update models.CredentialUpdate) error {
				require.NotNil(t, update.Secret)

				key, err := keys.Derive(models.KeySchemeOwnerHKDF, 7)
				require.NoError(t, err)
				plaintext, err := cipher.Decrypt(key, *update.Secret)
				require.NoError(t, err)
				assert.Equal(t, "new-secret", string(plaintext))
				return nil
			},
		),
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
	)

	_, err := svc.UpdateCredential(context.Background(), models.UpdateCredentialRequest{
		UserID:       7,
		CredentialID: 1,
		Secret:       strPtr("new-secret"),
	})
	require.NoError(t, err)
}

func TestVaultService_UpdateCredential_FullReplaceExtraFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "hunter2")
	existing := models.Credential{
		ID: 1, UserID: 7, AppName: "github", Username: "octocat",
		Secret: sealed, KeyScheme: models.KeySchemeOwnerLegacy,
	}

	gomock.InOrder(
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
		mockStorage.EXPECT().UpdateCredential(gomock.Any(), gomock.Any()).Return(nil),
		mockStorage.EXPECT().ReplaceExtraFields(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, fields []models.ExtraField) error {
				// The malformed pair is dropped; the well-formed one arrives
				// encrypted under the owner key.
				require.Len(t, fields, 1)
				assert.Equal(t, "totp_seed", fields[0].FieldName)

				key, err := keys.Derive(models.KeySchemeOwnerLegacy, 7)
				require.NoError(t, err)
				value, err := cipher.Decrypt(key, fields[0].Value)
				require.NoError(t, err)
				assert.Equal(t, "JBSWY3DP", string(value))
				return nil
			},
		),
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(existing, nil),
	)

	_, err := svc.UpdateCredential(context.Background(), models.UpdateCredentialRequest{
		UserID:       7,
		CredentialID: 1,
		ExtraFields: []models.ExtraFieldInput{
			{FieldName: "totp_seed", Value: "JBSWY3DP"},
			{FieldName: "", Value: "dropped"},
		},
	})
	require.NoError(t, err)
}

func TestVaultService_UpdateCredential_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(99)).
		Return(models.Credential{}, store.ErrCredentialNotFound)

	_, err := svc.UpdateCredential(context.Background(), models.UpdateCredentialRequest{
		UserID:       7,
		CredentialID: 99,
		AppName:      strPtr("gitlab"),
	})
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestVaultService_UpdateCredential_ExplicitEmptyAppNameRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestVaultSvc(t, ctrl)

	_, err := svc.UpdateCredential(context.Background(), models.UpdateCredentialRequest{
		UserID:       7,
		CredentialID: 1,
		AppName:      strPtr(""),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

// ── DeleteCredential ─────────────────────────────────────────────────────────

func TestVaultService_DeleteCredential_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().DeleteCredential(gomock.Any(), int64(7), int64(1)).Return(nil)

	require.NoError(t, svc.DeleteCredential(context.Background(), 7, 1))
}

func TestVaultService_DeleteCredential_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().DeleteCredential(gomock.Any(), int64(7), int64(99)).
		Return(store.ErrCredentialNotFound)

	err := svc.DeleteCredential(context.Background(), 7, 99)
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

// ── RevealCredential ─────────────────────────────────────────────────────────

func TestVaultService_RevealCredential_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 7, "hunter2")

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(models.Credential{
		ID: 1, UserID: 7, Secret: sealed, KeyScheme: models.KeySchemeOwnerLegacy,
	}, nil)

	plaintext, err := svc.RevealCredential(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)
}

func TestVaultService_RevealCredential_HonoursStoredScheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	sealed := sealSecret(t, keys, cipher, models.KeySchemeOwnerHKDF, 7, "hunter2")

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(models.Credential{
		ID: 1, UserID: 7, Secret: sealed, KeyScheme: models.KeySchemeOwnerHKDF,
	}, nil)

	plaintext, err := svc.RevealCredential(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)
}

func TestVaultService_RevealCredential_CorruptCiphertext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(models.Credential{
		ID: 1, UserID: 7, Secret: models.CipheredValue("garbage"), KeyScheme: models.KeySchemeOwnerLegacy,
	}, nil)

	_, err := svc.RevealCredential(context.Background(), 7, 1)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestVaultService_RevealCredential_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(99)).
		Return(models.Credential{}, store.ErrCredentialNotFound)

	_, err := svc.RevealCredential(context.Background(), 7, 99)
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

// ── Crypto failure isolation (mocked deriver/cipher) ─────────────────────────

// newTestVaultSvcMockedCrypto builds a vaultService where the crypto
// collaborators are mocked too, for exercising derivation and encryption
// failure paths that real crypto cannot produce on demand.
func newTestVaultSvcMockedCrypto(t *testing.T, ctrl *gomock.Controller) (*vaultService, *mock.MockCredentialStorage, *mock.MockKeyDeriver, *mock.MockSecretCipher) {
	t.Helper()

	mockStorage := mock.NewMockCredentialStorage(ctrl)
	mockKeys := mock.NewMockKeyDeriver(ctrl)
	mockCipher := mock.NewMockSecretCipher(ctrl)

	svc := NewVaultService(mockStorage, mockKeys, mockCipher, models.KeySchemeOwnerLegacy, logger.Nop()).(*vaultService)

	return svc, mockStorage, mockKeys, mockCipher
}

func TestVaultService_AddCredential_DeriveFailureStoresNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockKeys, _ := newTestVaultSvcMockedCrypto(t, ctrl)

	mockKeys.EXPECT().Derive(models.KeySchemeOwnerLegacy, int64(7)).
		Return(nil, crypto.ErrUnknownKeyScheme)

	// No CreateCredential expectation: a derivation failure must abort
	// before anything reaches storage.
	_, err := svc.AddCredential(context.Background(), models.AddCredentialRequest{
		UserID:   7,
		AppName:  "github",
		Username: "octocat",
		Secret:   "hunter2",
	})
	require.ErrorIs(t, err, crypto.ErrUnknownKeyScheme)
}

func TestVaultService_AddCredential_EncryptFailureStoresNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockKeys, mockCipher := newTestVaultSvcMockedCrypto(t, ctrl)

	key := crypto.KeyMaterial("a2V5LW1hdGVyaWFs")
	mockKeys.EXPECT().Derive(models.KeySchemeOwnerLegacy, int64(7)).Return(key, nil)
	mockCipher.EXPECT().Encrypt(key, []byte("hunter2")).
		Return(models.CipheredValue(""), errors.New("rand source exhausted"))

	_, err := svc.AddCredential(context.Background(), models.AddCredentialRequest{
		UserID:   7,
		AppName:  "github",
		Username: "octocat",
		Secret:   "hunter2",
	})
	require.Error(t, err)
}

func TestVaultService_GetCredentials_DeriveFailureFlagsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, mockKeys, _ := newTestVaultSvcMockedCrypto(t, ctrl)

	// A record carrying a scheme this deployment no longer knows must come
	// back flagged, not vanish and not abort the listing.
	mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(7)).Return([]models.Credential{
		{ID: 1, UserID: 7, AppName: "github", Username: "octocat", Secret: "blob", KeyScheme: models.KeyScheme(9)},
	}, nil)
	mockKeys.EXPECT().Derive(models.KeyScheme(9), int64(7)).
		Return(nil, crypto.ErrUnknownKeyScheme)

	decrypted, err := svc.GetCredentials(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, decrypted, 1)
	assert.ErrorIs(t, decrypted[0].DecryptErr, crypto.ErrUnknownKeyScheme)
	assert.Equal(t, "github", decrypted[0].AppName)
}

func TestVaultService_RevealCredential_MapsDecryptSentinel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, mockKeys, mockCipher := newTestVaultSvcMockedCrypto(t, ctrl)

	key := crypto.KeyMaterial("a2V5LW1hdGVyaWFs")
	stored := models.Credential{ID: 1, UserID: 7, Secret: "blob", KeyScheme: models.KeySchemeOwnerLegacy}

	gomock.InOrder(
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(stored, nil),
		mockKeys.EXPECT().Derive(models.KeySchemeOwnerLegacy, int64(7)).Return(key, nil),
		mockCipher.EXPECT().Decrypt(key, stored.Secret).
			Return(nil, crypto.ErrDecryptionFailed),
	)

	_, err := svc.RevealCredential(context.Background(), 7, 1)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

// ── End-to-end flows over a stateful mock ────────────────────────────────────

func TestVaultService_AddThenListThenReveal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)
	ctx := context.Background()

	var stored models.Credential

	mockStorage.EXPECT().CreateCredential(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, credential models.Credential) (models.Credential, error) {
			credential.ID = 1
			stored = credential
			return credential, nil
		},
	)
	mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(1)).DoAndReturn(
		func(_ context.Context, _ int64) ([]models.Credential, error) {
			return []models.Credential{stored}, nil
		},
	)
	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(1), int64(1)).DoAndReturn(
		func(_ context.Context, _, _ int64) (models.Credential, error) {
			return stored, nil
		},
	)

	_, err := svc.AddCredential(ctx, models.AddCredentialRequest{
		UserID:   1,
		AppName:  "Gmail",
		Username: "alice@x.com",
		Secret:   "Pass123!",
	})
	require.NoError(t, err)

	listed, err := svc.GetCredentials(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "alice@x.com", listed[0].Username)
	assert.Equal(t, "Pass123!", listed[0].Secret)

	plaintext, err := svc.RevealCredential(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pass123!", plaintext)
}

func TestVaultService_DeleteThenReveal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, _, _ := newTestVaultSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockStorage.EXPECT().DeleteCredential(gomock.Any(), int64(1), int64(1)).Return(nil),
		mockStorage.EXPECT().GetCredentialsByOwner(gomock.Any(), int64(1)).
			Return([]models.Credential{}, nil),
		mockStorage.EXPECT().GetCredential(gomock.Any(), int64(1), int64(1)).
			Return(models.Credential{}, store.ErrCredentialNotFound),
	)

	require.NoError(t, svc.DeleteCredential(ctx, 1, 1))

	listed, err := svc.GetCredentials(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.RevealCredential(ctx, 1, 1)
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

// ── Cross-owner isolation ────────────────────────────────────────────────────

func TestVaultService_CrossOwnerCiphertextDoesNotReveal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStorage, keys, cipher := newTestVaultSvc(t, ctrl)

	// Ciphertext sealed for owner 8 surfacing under owner 7 must fail to
	// decrypt, not silently yield plaintext.
	foreign := sealSecret(t, keys, cipher, models.KeySchemeOwnerLegacy, 8, "hunter2")

	mockStorage.EXPECT().GetCredential(gomock.Any(), int64(7), int64(1)).Return(models.Credential{
		ID: 1, UserID: 7, Secret: foreign, KeyScheme: models.KeySchemeOwnerLegacy,
	}, nil)

	_, err := svc.RevealCredential(context.Background(), 7, 1)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}
