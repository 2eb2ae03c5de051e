package presenter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"nft_tracker/internal/domain/entity"
)

const (
	clearScreen     = "\033[H\033[2J"
	columnTier      = 6
	defaultTitle    = "NFT Tracker"
	emptyCell       = "-"
	unlimitedMaxCol = "Unlimited"
)

type Options struct {
	Title          string
	SecondaryLabel string
	ClearScreen    bool
	NoColor        bool
}

// Table renders snapshots as a colored terminal table.
type Table struct {
	out  io.Writer
	opts Options
}

func NewTable(out io.Writer, opts Options) *Table {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.SecondaryLabel == "" {
		opts.SecondaryLabel = "MCG"
	}

	return &Table{out: out, opts: opts}
}

// Out is the terminal the table is drawn on.
func (t *Table) Out() io.Writer {
	return t.out
}

func (t *Table) Header() table.Row {
	return table.Row{
		"Name",
		"Rarity",
		"Max Quantity",
		"Current Quantity",
		"Price (USDC)",
		fmt.Sprintf("Price (%s)", t.opts.SecondaryLabel),
		"Availability",
	}
}

func (t *Table) Render(snapshot entity.Snapshot, updatedAt time.Time) error {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("%s  (%d assets, updated %s)", t.opts.Title, len(snapshot), updatedAt.Format(time.DateTime)))
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(t.Header())

	for _, record := range snapshot.Records() {
		tw.AppendRow(Row(record))
	}

	if !t.opts.NoColor {
		tw.SetRowPainter(table.RowPainter(paintRow))
	}

	frame := tw.Render() + "\n"
	if t.opts.ClearScreen {
		frame = clearScreen + frame
	}

	if _, err := io.WriteString(t.out, frame); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}

	return nil
}

// Error prints a visible error line below the last frame.
func (t *Table) Error(err error) {
	line := "Failed: " + err.Error()
	if !t.opts.NoColor {
		line = text.Colors{text.FgHiRed, text.Bold}.Sprint(line)
	}

	fmt.Fprintln(t.out, line) //nolint:errcheck
}

func Row(record entity.AssetRecord) table.Row {
	maxQuantity := unlimitedMaxCol
	if record.MaxQuantity != nil {
		maxQuantity = strconv.Itoa(*record.MaxQuantity)
	}

	return table.Row{
		record.Name,
		record.Rarity,
		maxQuantity,
		record.CurrentQuantity,
		formatPrice(record.PriceUSDC),
		formatPrice(record.PriceSecondary),
		record.Tier.String(),
	}
}

func formatPrice(price *decimal.Decimal) string {
	if price == nil {
		return emptyCell
	}
	return price.String()
}

// TierColors returns the row colors for tier; Unlimited stays neutral.
func TierColors(tier entity.Tier) text.Colors {
	switch tier {
	case entity.TierHigh:
		return text.Colors{text.BgGreen, text.FgBlack}
	case entity.TierMedium:
		return text.Colors{text.BgYellow, text.FgBlack}
	case entity.TierLow:
		return text.Colors{text.BgHiYellow, text.FgBlack}
	case entity.TierSoldOut:
		return text.Colors{text.BgRed, text.FgHiWhite}
	default:
		return nil
	}
}

func paintRow(row table.Row) text.Colors {
	if len(row) <= columnTier {
		return nil
	}

	tier, ok := row[columnTier].(string)
	if !ok {
		return nil
	}

	return TierColors(entity.Tier(tier))
}
