package changes

import (
	"fmt"
	"slices"

	"nft_tracker/internal/domain/entity"
)

type Policy string

const (
	// PolicyTierChange flags a tier transition of an asset seen in both snapshots.
	PolicyTierChange Policy = "tier-change"
	// PolicyNewAsset flags any name missing from the previous snapshot.
	PolicyNewAsset Policy = "new-asset"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyTierChange, PolicyNewAsset:
		return p, nil
	default:
		return "", fmt.Errorf("unknown notification policy %q", s)
	}
}

func (p Policy) String() string {
	return string(p)
}

type Transition struct {
	Name string
	From entity.Tier
	To   entity.Tier
}

// Report describes the difference between two consecutive snapshots. Flagged
// is decided by the policy alone; both lists are always filled.
type Report struct {
	Policy      Policy
	Flagged     bool
	Transitions []Transition
	Added       []string
	Removed     []string
}

// Detect compares current against previous. Neither snapshot is modified.
func Detect(policy Policy, previous, current entity.Snapshot) Report {
	report := Report{Policy: policy}

	for _, name := range current.Names() {
		prev, ok := previous[name]
		if !ok {
			report.Added = append(report.Added, name)
			continue
		}

		if tier := current[name].Tier; prev.Tier != tier {
			report.Transitions = append(report.Transitions, Transition{Name: name, From: prev.Tier, To: tier})
		}
	}

	for _, name := range previous.Names() {
		if _, ok := current[name]; !ok {
			report.Removed = append(report.Removed, name)
		}
	}

	switch policy {
	case PolicyTierChange:
		report.Flagged = len(report.Transitions) > 0
	case PolicyNewAsset:
		report.Flagged = len(report.Added) > 0
	}

	return report
}

func (r Report) TransitionNames() []string {
	names := make([]string, 0, len(r.Transitions))
	for _, t := range r.Transitions {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

func (r Report) Empty() bool {
	return len(r.Transitions) == 0 && len(r.Added) == 0 && len(r.Removed) == 0
}
