package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/internal/worker"
)

const (
	StartMessage = "👋 <b>NFT Tracker</b>\n\n" +
		"/status - tracker state\n" +
		"/assets - availability of every asset"
	NoSnapshot = "⏳ No successful poll cycle yet"

	maxAssetLines = 50
)

// Status renders the tracker state for /status.
func Status(status worker.Status) string {
	state := "🔴 stopped"
	if status.Running {
		state = "🟢 running"
	}

	lastUpdate := "never"
	if !status.LastSuccess.IsZero() {
		lastUpdate = status.LastSuccess.Format(time.DateTime)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Tracker status</b>\n\n")
	fmt.Fprintf(&sb, "🔍 <b>Tracker:</b> %s\n", state)
	fmt.Fprintf(&sb, "🔔 <b>Policy:</b> %s\n", status.Policy)
	fmt.Fprintf(&sb, "⏱ <b>Interval:</b> %s\n", status.Interval)
	fmt.Fprintf(&sb, "🕒 <b>Last update:</b> %s\n", lastUpdate)
	fmt.Fprintf(&sb, "📦 <b>Assets:</b> %d\n", status.Assets)
	fmt.Fprintf(&sb, "🔁 <b>Cycles:</b> %d ok, %d failed\n", status.Cycles, status.Failures)

	if status.LastError != "" {
		fmt.Fprintf(&sb, "\n❌ <b>Last error:</b> %s\n", html.EscapeString(status.LastError))
	}

	return sb.String()
}

// Assets renders the latest snapshot for /assets, one line per asset.
func Assets(state entity.SnapshotState) string {
	records := state.Snapshot.Records()

	var sb strings.Builder

	fmt.Fprintf(&sb, "📋 <b>Assets (%d)</b>, updated %s\n\n", len(records), state.UpdatedAt.Format(time.DateTime))

	for i, r := range records {
		if i == maxAssetLines {
			fmt.Fprintf(&sb, "\n…and %d more", len(records)-maxAssetLines)
			break
		}

		quantity := fmt.Sprintf("%d/∞", r.CurrentQuantity)
		if r.MaxQuantity != nil {
			quantity = fmt.Sprintf("%d/%d", r.CurrentQuantity, *r.MaxQuantity)
		}

		fmt.Fprintf(&sb, "%s <b>%s</b>: %s (%s)\n", tierIcon(r.Tier), html.EscapeString(r.Name), r.Tier, quantity)
	}

	return sb.String()
}

func tierIcon(tier entity.Tier) string {
	switch tier {
	case entity.TierHigh:
		return "🟢"
	case entity.TierMedium:
		return "🟡"
	case entity.TierLow:
		return "🟠"
	case entity.TierSoldOut:
		return "🔴"
	default:
		return "⚪"
	}
}
