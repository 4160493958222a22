package ports

import (
	"context"
	"errors"
)

// ErrSecretNotFound is returned when a secret path does not exist in the backend
var ErrSecretNotFound = errors.New("secret not found")

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string // The secret value (e.g., database password)
	Version   string // Secret version identifier
	CreatedAt string // When this version was created, RFC 3339 when known
}

// SecretProvider defines the port for reading secrets at startup.
// Supported backends: environment, local files, AWS Secrets Manager, HashiCorp Vault.
// Path format depends on implementation:
//   - env:   "DB_PASSWORD"
//   - file:  "db/password" relative to the base directory
//   - AWS:   "billing-service/db-password" or full ARN
//   - Vault: "billing-service/db" under the KV mount
type SecretProvider interface {
	// GetSecret retrieves a secret by its path/name.
	// Returns an error wrapping ErrSecretNotFound if the secret does not exist.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
