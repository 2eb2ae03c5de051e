package notifier

import (
	"fmt"
	"html"
	"strings"

	"nft_tracker/internal/domain/service/changes"
)

// Subjects returns the asset names a report is about under its policy.
func Subjects(report changes.Report) []string {
	if report.Policy == changes.PolicyNewAsset {
		return report.Added
	}
	return report.TransitionNames()
}

// PlainText lists what changed, one asset per line.
func PlainText(report changes.Report, names []string) string {
	var sb strings.Builder

	if report.Policy == changes.PolicyNewAsset {
		sb.WriteString("New assets detected:\n\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "- %s\n", name)
		}
		return sb.String()
	}

	sb.WriteString("Availability changed:\n\n")
	for _, t := range filterTransitions(report.Transitions, names) {
		fmt.Fprintf(&sb, "- %s: %s -> %s\n", t.Name, t.From, t.To)
	}
	return sb.String()
}

func HTML(report changes.Report) string {
	var sb strings.Builder

	if report.Policy == changes.PolicyNewAsset {
		fmt.Fprintf(&sb, "🆕 <b>New assets: %d</b>\n\n", len(report.Added))
		for _, name := range report.Added {
			fmt.Fprintf(&sb, "• %s\n", html.EscapeString(name))
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "📊 <b>Availability changed: %d</b>\n\n", len(report.Transitions))
	for _, t := range report.Transitions {
		fmt.Fprintf(&sb, "• <b>%s</b>: %s → %s\n", html.EscapeString(t.Name), t.From, t.To)
	}
	return sb.String()
}

func filterTransitions(transitions []changes.Transition, names []string) []changes.Transition {
	keep := make(map[string]struct{}, len(names))
	for _, name := range names {
		keep[name] = struct{}{}
	}

	res := make([]changes.Transition, 0, len(names))
	for _, t := range transitions {
		if _, ok := keep[t.Name]; ok {
			res = append(res, t)
		}
	}
	return res
}
