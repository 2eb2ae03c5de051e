package value

const (
	TraitRarity   = "Rarity"
	RarityUnknown = "Unknown"
)

type Trait struct {
	TraitType string `json:"traitType"`
	Value     string `json:"value"`
}

// Traits keeps the upstream order; lookups return the first match.
type Traits []Trait

func (t Traits) Lookup(traitType string) (string, bool) {
	for _, trait := range t {
		if trait.TraitType == traitType {
			return trait.Value, true
		}
	}
	return "", false
}

func (t Traits) Rarity() string {
	if rarity, ok := t.Lookup(TraitRarity); ok {
		return rarity
	}
	return RarityUnknown
}
