package entity

import (
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type AssetRecord struct {
	Name            string           `json:"name"`
	Rarity          string           `json:"rarity"`
	MaxQuantity     *int             `json:"max_quantity"`
	CurrentQuantity int              `json:"current_quantity"`
	PriceUSDC       *decimal.Decimal `json:"price_usdc"`
	PriceSecondary  *decimal.Decimal `json:"price_secondary"`
	Tier            Tier             `json:"tier"`
}

func (a AssetRecord) Unlimited() bool {
	return a.MaxQuantity == nil
}

// Snapshot is the consolidated asset set of one poll cycle, keyed by name.
type Snapshot map[string]AssetRecord

func (s Snapshot) Names() []string {
	names := lo.Keys(s)
	slices.Sort(names)
	return names
}

// Records returns the records ordered by name.
func (s Snapshot) Records() []AssetRecord {
	return lo.Map(s.Names(), func(name string, _ int) AssetRecord {
		return s[name]
	})
}

func (s Snapshot) Tiers() map[string]Tier {
	return lo.MapValues(s, func(record AssetRecord, _ string) Tier {
		return record.Tier
	})
}

func (s Snapshot) CountByTier() map[Tier]int {
	counts := make(map[Tier]int, len(Tiers()))
	for _, record := range s {
		counts[record.Tier]++
	}
	return counts
}

// SnapshotState is a snapshot together with the moment its cycle finished.
type SnapshotState struct {
	Snapshot  Snapshot
	UpdatedAt time.Time
	Cycles    int
}
