package view_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/internal/transport/bot/view"
	"nft_tracker/internal/worker"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name     string
		status   worker.Status
		contains []string
		absent   []string
	}{
		{
			name:     "Before first cycle",
			status:   worker.Status{Policy: changes.PolicyTierChange, Interval: 30 * time.Second},
			contains: []string{"🔴 stopped", "tier-change", "30s", "<b>Last update:</b> never"},
			absent:   []string{"Last error"},
		},
		{
			name: "Running with error",
			status: worker.Status{
				Running:     true,
				Policy:      changes.PolicyNewAsset,
				Interval:    time.Minute,
				Cycles:      4,
				Failures:    1,
				Assets:      12,
				LastSuccess: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
				LastError:   "status 502: <html>",
			},
			contains: []string{"🟢 running", "new-asset", "2026-10-14 10:00:00", "<b>Assets:</b> 12", "4 ok, 1 failed", "status 502: &lt;html&gt;"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			text := view.Status(tc.status)
			for _, s := range tc.contains {
				rq.Contains(text, s)
			}
			for _, s := range tc.absent {
				rq.NotContains(text, s)
			}
		})
	}
}

func TestAssets(t *testing.T) {
	rq := require.New(t)

	text := view.Assets(entity.SnapshotState{
		UpdatedAt: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
		Snapshot: entity.Snapshot{
			"Relic":   {Name: "Relic", MaxQuantity: lo.ToPtr(100), CurrentQuantity: 90, Tier: entity.TierSoldOut},
			"A & B":   {Name: "A & B", CurrentQuantity: 5, Tier: entity.TierUnlimited},
			"Chalice": {Name: "Chalice", MaxQuantity: lo.ToPtr(10), CurrentQuantity: 1, Tier: entity.TierHigh},
		},
	})

	rq.Contains(text, "<b>Assets (3)</b>, updated 2026-10-14 10:00:00")
	rq.Contains(text, "⚪ <b>A &amp; B</b>: Unlimited (5/∞)\n")
	rq.Contains(text, "🟢 <b>Chalice</b>: High (1/10)\n")
	rq.Contains(text, "🔴 <b>Relic</b>: Sold Out (90/100)\n")
	rq.Less(strings.Index(text, "Chalice"), strings.Index(text, "Relic"))
}

func TestAssetsTruncated(t *testing.T) {
	rq := require.New(t)

	snapshot := entity.Snapshot{}
	for i := range 60 {
		name := fmt.Sprintf("Asset %02d", i)
		snapshot[name] = entity.AssetRecord{Name: name, Tier: entity.TierUnlimited}
	}

	text := view.Assets(entity.SnapshotState{Snapshot: snapshot})

	rq.Contains(text, "Asset 49")
	rq.NotContains(text, "Asset 50")
	rq.True(strings.HasSuffix(text, "…and 10 more"))
}
