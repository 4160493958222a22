package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leanttro/billing-service/internal/adapters/ports"
	"go.uber.org/zap"
)

// localSecretManager implements ports.SecretProvider using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret provider rooted at basePath
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretProvider {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads a secret file. Files may hold the plain value or a JSON
// document {"value": "...", "version": "...", "created_at": "..."}.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrSecretNotFound, secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var secretData struct {
		Value     string `json:"value"`
		Version   string `json:"version"`
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		if secretData.Version == "" {
			secretData.Version = "v1"
		}
		return &ports.Secret{
			Value:     secretData.Value,
			Version:   secretData.Version,
			CreatedAt: secretData.CreatedAt,
		}, nil
	}

	// Return as plain text if not JSON
	return &ports.Secret{
		Value:   strings.TrimRight(string(data), "\r\n"),
		Version: "v1",
	}, nil
}
