package server

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/pkg/rest"
)

func newRESTAsset(record entity.AssetRecord) rest.Asset {
	return rest.Asset{
		Name:            record.Name,
		Rarity:          record.Rarity,
		MaxQuantity:     record.MaxQuantity,
		CurrentQuantity: record.CurrentQuantity,
		PriceUSDC:       decimalString(record.PriceUSDC),
		PriceSecondary:  decimalString(record.PriceSecondary),
		Tier:            record.Tier.String(),
	}
}

func newRESTAssetList(state entity.SnapshotState) rest.AssetList {
	return rest.AssetList{
		UpdatedAt: state.UpdatedAt,
		Cycles:    state.Cycles,
		Assets:    lo.Map(state.Snapshot.Records(), func(r entity.AssetRecord, _ int) rest.Asset { return newRESTAsset(r) }),
	}
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	return lo.ToPtr(d.String())
}
