package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
	"github.com/leanttro/billing-service/internal/adapters/ports"
	"go.uber.org/zap"
)

// VaultConfig contains configuration for HashiCorp Vault adapter
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Authentication method: "token", "approle", "kubernetes"
	AuthMethod string

	// Token for token authentication
	Token string

	// AppRole credentials (if using AppRole auth)
	RoleID   string
	SecretID string

	// Kubernetes service account token path (if using Kubernetes auth)
	K8sTokenPath string
	K8sRole      string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	// Key holding the secret inside the KV entry (default: "value")
	Field string

	CacheTTL    time.Duration
	EnableCache bool

	TLSSkipVerify bool
}

// DefaultVaultConfig returns default configuration for Vault adapter
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:      address,
		AuthMethod:   "token",
		K8sTokenPath: "/var/run/secrets/kubernetes.io/serviceaccount/token",
		MountPath:    "secret",
		KVVersion:    "v2",
		Field:        "value",
		CacheTTL:     5 * time.Minute,
		EnableCache:  true,
	}
}

// vaultAdapter implements ports.SecretProvider for HashiCorp Vault KV engines
type vaultAdapter struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewVaultAdapter creates a new HashiCorp Vault adapter and logs in
func NewVaultAdapter(ctx context.Context, cfg *VaultConfig, logger *zap.Logger) (ports.SecretProvider, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSSkipVerify {
		if err := vaultConfig.ConfigureTLS(&vault.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	// Set namespace if using Vault Enterprise
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticateVault(ctx, client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault adapter initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.String("kv_version", cfg.KVVersion),
	)

	return &vaultAdapter{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

// authenticateVault handles authentication with Vault
func authenticateVault(ctx context.Context, client *vault.Client, cfg *VaultConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		return login(ctx, client, "auth/approle/login", map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		})

	case "kubernetes":
		if cfg.K8sTokenPath == "" || cfg.K8sRole == "" {
			return fmt.Errorf("k8s_token_path and k8s_role are required for Kubernetes auth")
		}
		jwt, err := os.ReadFile(cfg.K8sTokenPath)
		if err != nil {
			return fmt.Errorf("failed to read k8s token: %w", err)
		}
		return login(ctx, client, "auth/kubernetes/login", map[string]interface{}{
			"jwt":  strings.TrimSpace(string(jwt)),
			"role": cfg.K8sRole,
		})

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

func login(ctx context.Context, client *vault.Client, path string, data map[string]interface{}) error {
	resp, err := client.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return fmt.Errorf("login at %s failed: %w", path, err)
	}
	if resp == nil || resp.Auth == nil {
		return fmt.Errorf("login at %s returned no auth info", path)
	}
	client.SetToken(resp.Auth.ClientToken)
	return nil
}

// GetSecret reads the configured field of a KV entry
func (a *vaultAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		a.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	fullPath := fmt.Sprintf("%s/%s", a.config.MountPath, path)
	if a.config.KVVersion == "v2" {
		fullPath = fmt.Sprintf("%s/data/%s", a.config.MountPath, path)
	}

	startTime := time.Now()
	secret, err := a.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		a.logger.Error("Failed to retrieve secret from Vault",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to read secret from Vault: %w", err)
	}
	if secret == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSecretNotFound, path)
	}

	a.logger.Info("Secret retrieved successfully",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	data := secret.Data
	result := &ports.Secret{Version: "1"}
	if a.config.KVVersion == "v2" {
		// KV v2 wraps data in "data" field
		inner, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid secret format from Vault")
		}
		data = inner

		if metadata, ok := secret.Data["metadata"].(map[string]interface{}); ok {
			if v, ok := metadata["version"].(json.Number); ok {
				result.Version = v.String()
			}
			if ct, ok := metadata["created_time"].(string); ok {
				result.CreatedAt = ct
			}
		}
	}

	field := a.config.Field
	if field == "" {
		field = "value"
	}
	value, ok := data[field].(string)
	if !ok {
		return nil, fmt.Errorf("secret %s has no string field %q", path, field)
	}
	result.Value = value

	a.cache.set(path, result)
	return result, nil
}
