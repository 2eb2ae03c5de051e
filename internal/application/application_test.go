package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nft_tracker/internal/config"
	"nft_tracker/internal/domain"
	"nft_tracker/pkg/errcodes"
)

func TestCheckCredentials(t *testing.T) {
	ready := config.SMTP{Sender: "tracker@example.com", Password: "secret", Recipients: "ops@example.com"}

	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "Tier change with api key",
			cfg: config.Config{
				Storefront: config.Storefront{APIKey: "key"},
				Tracker:    config.Tracker{Policy: "tier-change"},
			},
		},
		{
			name:    "Missing api key",
			cfg:     config.Config{Tracker: config.Tracker{Policy: "tier-change"}},
			wantErr: true,
		},
		{
			name: "New asset without smtp",
			cfg: config.Config{
				Storefront: config.Storefront{APIKey: "key"},
				Tracker:    config.Tracker{Policy: "new-asset"},
			},
			wantErr: true,
		},
		{
			name: "New asset with smtp",
			cfg: config.Config{
				Storefront: config.Storefront{APIKey: "key"},
				Tracker:    config.Tracker{Policy: "new-asset"},
				SMTP:       ready,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			err := checkCredentials(tc.cfg)
			if !tc.wantErr {
				rq.NoError(err)
				return
			}

			rq.True(domain.HasCode(err, errcodes.InvalidConfig))
		})
	}
}
