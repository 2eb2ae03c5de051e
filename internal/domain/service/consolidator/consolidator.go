package consolidator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/entity"
	"nft_tracker/pkg/errcodes"
)

const (
	DefaultItemType            = "NewMintUniqueAsset"
	DefaultUSDCCurrencyID      = "USDC"
	DefaultSecondaryCurrencyID = "425fdb36-e222-4e09-be33-b42ce38788ca" // MCG
)

type Options struct {
	ItemType            string
	USDCCurrencyID      string
	SecondaryCurrencyID string
}

// Consolidator folds storefront SKUs into one record per asset name.
type Consolidator struct {
	opts     Options
	validate *validator.Validate
}

func New(opts Options) *Consolidator {
	if opts.ItemType == "" {
		opts.ItemType = DefaultItemType
	}
	if opts.USDCCurrencyID == "" {
		opts.USDCCurrencyID = DefaultUSDCCurrencyID
	}
	if opts.SecondaryCurrencyID == "" {
		opts.SecondaryCurrencyID = DefaultSecondaryCurrencyID
	}

	return &Consolidator{
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Consolidate builds a fresh snapshot from items. Items of another type are
// skipped; a qualifying item with a missing field fails the whole batch.
func (c *Consolidator) Consolidate(items []entity.RawItem) (entity.Snapshot, error) {
	snapshot := make(entity.Snapshot)

	for i, item := range items {
		if err := c.validate.Var(item.Type, "required"); err != nil {
			return nil, domain.WrapError(err, errcodes.InvalidItem, fmt.Sprintf("item %d: type", i))
		}

		if item.Type != c.opts.ItemType {
			continue
		}

		if err := c.validate.Struct(item); err != nil {
			return nil, domain.WrapError(err, errcodes.InvalidItem, fmt.Sprintf("item %d (%q)", i, item.Name))
		}

		c.merge(snapshot, item)
	}

	return snapshot, nil
}

func (c *Consolidator) merge(snapshot entity.Snapshot, item entity.RawItem) {
	current := *item.Inventory.CurrentQuantity

	record, ok := snapshot[item.Name]
	if !ok {
		record = entity.AssetRecord{
			Name:   item.Name,
			Rarity: item.Inventory.Attributes.Rarity(),
		}
	}

	// Quantities and tier always come from the same item, the last one seen.
	record.MaxQuantity = copyInt(item.Inventory.MaxQuantity)
	record.CurrentQuantity = current
	record.Tier = entity.ClassifyTier(current, record.MaxQuantity)

	amount := *item.Price.NaturalAmount

	switch item.Price.CurrencyID {
	case c.opts.USDCCurrencyID:
		record.PriceUSDC = &amount
	case c.opts.SecondaryCurrencyID:
		record.PriceSecondary = &amount
	}

	snapshot[item.Name] = record
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
