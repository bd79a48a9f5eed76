package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid. All of them are fatal at
// process startup.
var (
	// ErrMasterKeyRequired indicates that no master encryption key was
	// supplied by any configuration source. Without it no secret can be
	// encrypted or decrypted, so the service must refuse to start.
	ErrMasterKeyRequired = errors.New("master encryption key is required")

	// ErrInvalidKeyScheme indicates that the configured key-derivation
	// scheme is not one of the known scheme identifiers.
	ErrInvalidKeyScheme = errors.New("invalid key derivation scheme")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
