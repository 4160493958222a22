package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/leanttro/billing-service/internal/adapters/ports"
)

// envSecretProvider reads secrets from environment variables named by path
type envSecretProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvSecretProvider creates a provider backed by the process environment
func NewEnvSecretProvider() ports.SecretProvider {
	return &envSecretProvider{lookup: os.LookupEnv}
}

func (p *envSecretProvider) GetSecret(_ context.Context, path string) (*ports.Secret, error) {
	value, ok := p.lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: environment variable %s", ports.ErrSecretNotFound, path)
	}
	return &ports.Secret{Value: value, Version: "env"}, nil
}
