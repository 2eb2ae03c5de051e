package secrets

import (
	"context"
	"fmt"

	"nft_tracker/internal/config"
	"nft_tracker/internal/domain"
	"nft_tracker/pkg/errcodes"
)

const (
	KeyStorefrontAPIKey = "storefront_api_key"
	KeySMTPPassword     = "smtp_password"
)

// Provider returns a secret stored as a flat JSON object.
type Provider interface {
	GetSecret(ctx context.Context, key string) (map[string]string, error)
}

// Apply fills credentials from the secret store. Values present in the secret
// override the environment; missing keys leave the environment value alone.
func Apply(ctx context.Context, provider Provider, name string, cfg *config.Config) error {
	secret, err := provider.GetSecret(ctx, name)
	if err != nil {
		return domain.WrapError(err, errcodes.SecretUnavailable, fmt.Sprintf("secret %s", name))
	}

	if v := secret[KeyStorefrontAPIKey]; v != "" {
		cfg.Storefront.APIKey = v
	}

	if v := secret[KeySMTPPassword]; v != "" {
		cfg.SMTP.Password = v
	}

	return nil
}
