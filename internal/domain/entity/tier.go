package entity

type Tier string

const (
	TierHigh      Tier = "High"
	TierMedium    Tier = "Medium"
	TierLow       Tier = "Low"
	TierSoldOut   Tier = "Sold Out"
	TierUnlimited Tier = "Unlimited"
)

// Tiers lists every tier from most to least available, Unlimited last.
func Tiers() []Tier {
	return []Tier{TierHigh, TierMedium, TierLow, TierSoldOut, TierUnlimited}
}

func (t Tier) String() string {
	return string(t)
}

// ClassifyTier maps the minted share of the supply to a tier. A nil max is
// unlimited supply; a non-positive max has nothing left to mint.
func ClassifyTier(current int, maxQuantity *int) Tier {
	if maxQuantity == nil {
		return TierUnlimited
	}

	if *maxQuantity <= 0 {
		return TierSoldOut
	}

	ratio := float64(current) / float64(*maxQuantity)

	switch {
	case ratio < 0.2:
		return TierHigh
	case ratio < 0.5:
		return TierMedium
	case ratio < 0.8:
		return TierLow
	default:
		return TierSoldOut
	}
}
