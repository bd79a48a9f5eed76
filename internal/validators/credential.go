// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"fmt"

	"github.com/avoronin/credvault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a request.
	FieldUserID = "user_id"

	// FieldCredentialID targets the record identifier of an update request.
	FieldCredentialID = "credential_id"

	// FieldAppName targets the application name of a credential.
	FieldAppName = "app_name"

	// FieldUsername targets the account identifier of a credential.
	FieldUsername = "username"

	// FieldSecret targets the plaintext secret of an add request.
	FieldSecret = "secret"
)

// CredentialValidator implements the Validator interface for the vault
// request models: AddCredentialRequest and UpdateCredentialRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
//
// Extra-field pairs are deliberately not validated here: pairs missing a name
// or a value are skipped silently by the service, which mirrors the
// permissive handling of dynamic field payloads in the product.
type CredentialValidator struct {
}

// NewCredentialValidator constructs a new CredentialValidator
// and returns it as the Validator interface.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.AddCredentialRequest / *models.AddCredentialRequest
//   - models.UpdateCredentialRequest / *models.UpdateCredentialRequest
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AddCredentialRequest:
		return v.validateAdd(ctx, value, fields...)
	case *models.AddCredentialRequest:
		return v.validateAdd(ctx, *value, fields...)
	case models.UpdateCredentialRequest:
		return v.validateUpdate(ctx, value, fields...)
	case *models.UpdateCredentialRequest:
		return v.validateUpdate(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *CredentialValidator) validateAdd(_ context.Context, req models.AddCredentialRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldAppName, FieldUsername, FieldSecret}
	}

	for _, field := range fields {
		switch field {
		case FieldUserID:
			if req.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldAppName:
			if req.AppName == "" {
				return ErrEmptyAppName
			}
		case FieldUsername:
			if req.Username == "" {
				return ErrEmptyUsername
			}
		case FieldSecret:
			if req.Secret == "" {
				return ErrEmptySecret
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *CredentialValidator) validateUpdate(_ context.Context, req models.UpdateCredentialRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCredentialID, FieldAppName, FieldUsername}
	}

	for _, field := range fields {
		switch field {
		case FieldUserID:
			if req.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldCredentialID:
			if req.CredentialID <= 0 {
				return ErrInvalidCredentialID
			}
		case FieldAppName:
			// nil keeps the stored value; an explicit empty string is invalid
			if req.AppName != nil && *req.AppName == "" {
				return ErrEmptyAppName
			}
		case FieldUsername:
			if req.Username != nil && *req.Username == "" {
				return ErrEmptyUsername
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
