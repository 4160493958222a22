package app

import (
	"context"
	"fmt"

	"github.com/leanttro/billing-service/internal/adapters/secrets"
	"github.com/leanttro/billing-service/internal/config"
	"go.uber.org/zap"
)

// providerConfig maps SECRETS_* settings onto the secrets factory
func providerConfig(cfg config.SecretsConfig) secrets.ProviderConfig {
	pc := secrets.ProviderConfig{
		Backend:  cfg.Backend,
		FileBase: cfg.FileBase,
	}

	switch cfg.Backend {
	case secrets.BackendAWS:
		aws := secrets.DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		aws.Profile = cfg.AWSProfile
		aws.Endpoint = cfg.AWSEndpoint
		pc.AWS = aws
	case secrets.BackendVault:
		vault := secrets.DefaultVaultConfig(cfg.VaultAddress)
		vault.AuthMethod = cfg.VaultAuthMethod
		vault.Token = cfg.VaultToken
		vault.RoleID = cfg.VaultRoleID
		vault.SecretID = cfg.VaultSecretID
		vault.K8sRole = cfg.VaultK8sRole
		vault.Namespace = cfg.VaultNamespace
		vault.MountPath = cfg.VaultMountPath
		pc.Vault = vault
	}
	return pc
}

// resolveDBPassword replaces the configured password with the secret named
// by DB_PASSWORD_SECRET, when one is set.
func resolveDBPassword(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	path := cfg.Secrets.DBPasswordSecret
	if path == "" {
		return nil
	}

	provider, err := secrets.NewProvider(ctx, providerConfig(cfg.Secrets), logger)
	if err != nil {
		return fmt.Errorf("init secrets backend %s: %w", cfg.Secrets.Backend, err)
	}

	secret, err := provider.GetSecret(ctx, path)
	if err != nil {
		return fmt.Errorf("resolve database password: %w", err)
	}

	cfg.Database.Password = secret.Value
	logger.Info("Database password resolved from secrets backend",
		zap.String("backend", cfg.Secrets.Backend),
		zap.String("version", secret.Version),
	)
	return nil
}
