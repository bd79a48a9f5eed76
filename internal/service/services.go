package service

import (
	"github.com/avoronin/credvault/internal/config"
	"github.com/avoronin/credvault/internal/crypto"
	"github.com/avoronin/credvault/internal/logger"
	"github.com/avoronin/credvault/internal/store"
)

type Services struct {
	VaultService VaultService
}

// NewServices wires the encryption subsystem and the vault service from the
// validated application config. Fails when the master key is unusable
// (empty), which callers must treat as fatal at startup.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	deriver, err := crypto.NewKeyDeriver([]byte(cfg.MasterKey))
	if err != nil {
		return nil, err
	}

	return &Services{
		VaultService: NewVaultService(
			storages.CredentialStorage,
			deriver,
			crypto.NewSecretCipher(),
			cfg.Scheme(),
			logger,
		),
	}, nil
}
