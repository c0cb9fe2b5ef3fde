package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"

	"github.com/rahulthapa9024/basic-app/internal/config"
)

// Keys read from the secret.
const (
	KeyJWTSecret     = "jwt_secret"
	KeyRedisPassword = "redis_password"
	KeySMTPPassword  = "smtp_password"
)

// Vault reads KV v2 secrets.
type Vault struct {
	api *vault.Client
}

// NewVault creates a client for addr authenticated with token.
// Empty values fall back to VAULT_ADDR and VAULT_TOKEN.
func NewVault(addr, token string) (*Vault, error) {
	cfg := vault.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("vault config: %w", cfg.Error)
	}
	if addr != "" {
		cfg.Address = addr
	}

	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	if token != "" {
		api.SetToken(token)
	}

	return &Vault{api: api}, nil
}

// Read returns the string values of the latest version of the secret at path,
// given as "<mount>/<name>".
func (v *Vault) Read(ctx context.Context, path string) (map[string]string, error) {
	mount, name, ok := strings.Cut(strings.Trim(path, "/"), "/")
	if !ok || name == "" {
		return nil, fmt.Errorf("secret path %q must be <mount>/<name>", path)
	}

	sec, err := v.api.Logical().ReadWithContext(ctx, mount+"/data/"+name)
	if err != nil {
		return nil, fmt.Errorf("vault read %s: %w", path, err)
	}
	if sec == nil || sec.Data == nil {
		return nil, fmt.Errorf("secret %s not found", path)
	}

	data, ok := sec.Data["data"].(map[string]any)
	if !ok {
		return nil, errors.New("secret has no data section")
	}

	out := make(map[string]string, len(data))
	for k, raw := range data {
		if s, ok := raw.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

// Apply overrides configuration secrets with values found at cfg.Vault.SecretPath.
// It is a no-op when no path is configured.
func Apply(ctx context.Context, cfg *config.Config) error {
	if cfg.Vault.SecretPath == "" {
		return nil
	}

	v, err := NewVault(cfg.Vault.Addr, cfg.Vault.Token)
	if err != nil {
		return err
	}

	values, err := v.Read(ctx, cfg.Vault.SecretPath)
	if err != nil {
		return err
	}

	applyValues(cfg, values)
	return nil
}

func applyValues(cfg *config.Config, values map[string]string) {
	if s := values[KeyJWTSecret]; s != "" {
		cfg.JWT.Secret = s
	}
	if s := values[KeyRedisPassword]; s != "" {
		cfg.Redis.Password = s
	}
	if s := values[KeySMTPPassword]; s != "" {
		cfg.SMTP.Password = s
	}
}
