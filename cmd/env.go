package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-cards/cmd/config"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// Env is shared by every subcommand. The root command sets Logger before a
// subcommand runs; the vault and service are opened on first use.
type Env struct {
	Logger  *logrus.Logger
	Service *service.Service
	Vault   *vault.Local
}

// Open initializes the service over the configured vault.
func (e *Env) Open() (*service.Service, error) {
	if e.Service != nil {
		return e.Service, nil
	}
	if e.Logger == nil {
		e.Logger = config.NewLogger(false)
	}
	svc, local, err := config.InitService(e.Logger)
	if err != nil {
		return nil, err
	}
	e.Service, e.Vault = svc, local
	return svc, nil
}

// Close releases the service if it was opened.
func (e *Env) Close() error {
	if e.Service == nil {
		return nil
	}
	return e.Service.Close()
}
