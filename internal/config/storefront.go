package config

import "time"

type Storefront struct {
	BaseURL             string        `env:"STOREFRONT_BASE_URL" envDefault:"https://api.gameshift.dev" validate:"url"`
	Path                string        `env:"STOREFRONT_PATH" envDefault:"/internal/storefront/skus-with-inventory"`
	APIKey              string        `env:"STOREFRONT_API_KEY" json:"-"`
	PageSize            int           `env:"STOREFRONT_PAGE_SIZE" envDefault:"100" validate:"gt=0"`
	Timeout             time.Duration `env:"STOREFRONT_TIMEOUT" envDefault:"15s"`
	LogFieldMaxLen      int           `env:"STOREFRONT_LOG_FIELD_MAX_LEN" envDefault:"4096"`
	ItemType            string        `env:"STOREFRONT_ITEM_TYPE" envDefault:"NewMintUniqueAsset"`
	USDCCurrencyID      string        `env:"STOREFRONT_USDC_CURRENCY_ID" envDefault:"USDC"`
	SecondaryCurrencyID string        `env:"STOREFRONT_SECONDARY_CURRENCY_ID" envDefault:"425fdb36-e222-4e09-be33-b42ce38788ca"`
}
