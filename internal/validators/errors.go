package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidCredentialID = errors.New("invalid credential ID")
	ErrEmptyAppName        = errors.New("app name is required")
	ErrEmptyUsername       = errors.New("username is required")
	ErrEmptySecret         = errors.New("secret is required")
)
