package service

import (
	"errors"
	"fmt"

	"github.com/avoronin/credvault/internal/crypto"
	"github.com/avoronin/credvault/internal/store"
)

// mapStorageError translates repository sentinels into the service taxonomy
// so callers only ever match against service errors. Unrecognised errors are
// passed through unchanged.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrCredentialAlreadyExists),
		errors.Is(err, store.ErrExtraFieldAlreadyExists):
		return fmt.Errorf("%w: %w", ErrDuplicateCredential, err)
	case errors.Is(err, store.ErrCredentialNotFound):
		return fmt.Errorf("%w: %w", ErrCredentialNotFound, err)
	default:
		return err
	}
}

// mapCryptoError translates decryption failures into the service taxonomy.
func mapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, crypto.ErrDecryptionFailed) {
		return fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return err
}
