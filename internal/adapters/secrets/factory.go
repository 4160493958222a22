package secrets

import (
	"context"
	"fmt"

	"github.com/leanttro/billing-service/internal/adapters/ports"
	"go.uber.org/zap"
)

// Backend names accepted by NewProvider
const (
	BackendEnv   = "env"
	BackendFile  = "file"
	BackendAWS   = "aws"
	BackendVault = "vault"
)

// ProviderConfig selects and configures a secret backend
type ProviderConfig struct {
	Backend  string
	FileBase string
	AWS      *AWSSecretsManagerConfig
	Vault    *VaultConfig
}

// NewProvider builds the secret provider for cfg.Backend
func NewProvider(ctx context.Context, cfg ProviderConfig, logger *zap.Logger) (ports.SecretProvider, error) {
	switch cfg.Backend {
	case "", BackendEnv:
		return NewEnvSecretProvider(), nil
	case BackendFile:
		return NewLocalSecretManager(cfg.FileBase, logger), nil
	case BackendAWS:
		if cfg.AWS == nil {
			return nil, fmt.Errorf("aws secrets backend selected without configuration")
		}
		return NewAWSSecretsManagerAdapter(ctx, cfg.AWS, logger)
	case BackendVault:
		if cfg.Vault == nil {
			return nil, fmt.Errorf("vault secrets backend selected without configuration")
		}
		return NewVaultAdapter(ctx, cfg.Vault, logger)
	default:
		return nil, fmt.Errorf("unsupported secrets backend: %s", cfg.Backend)
	}
}
