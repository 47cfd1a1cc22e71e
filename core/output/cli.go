package output

import (
	"fmt"
	"io"

	"plancost/core/pipeline"
	"plancost/core/types"
)

const rule = "─────────────────────────────────────────────────────────────────────"

// CLIFormatter renders a human-readable terminal report
type CLIFormatter struct {
	// ShowRows prints per-room summary rows in addition to totals
	ShowRows bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render produces the terminal report
func (f *CLIFormatter) Render(w io.Writer, result *pipeline.Result) error {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                    FLOOR PLAN ESTIMATION REPORT                   ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w, "")

	fmt.Fprintf(w, "Drawing:     %s\n", result.Path)
	fmt.Fprintf(w, "Drawing ID:  %s\n", result.DrawingID)
	fmt.Fprintf(w, "Version:     %s\n", result.Info.Version)
	unit := string(result.Scale.Unit)
	if result.Scale.Inferred {
		unit += " (detected)"
	}
	fmt.Fprintf(w, "Unit:        %s\n", unit)
	fmt.Fprintf(w, "Duration:    %s\n", result.Duration)
	fmt.Fprintln(w, "")

	f.renderRooms(w, result)

	if len(result.Rooms) > 0 {
		fmt.Fprintln(w, "MATERIAL TAKEOFF")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Cement: %d bags   Sand: %.2f t   Paint: %.2f m²   Tiles: %.2f m²\n",
			result.Takeoff.CementBags, result.Takeoff.SandTons,
			result.Takeoff.PaintM2, result.Takeoff.TilesM2)
		fmt.Fprintln(w, "")
	}

	if result.Estimate != nil {
		switch {
		case result.Estimate.Summary != nil:
			f.renderSummary(w, result.Estimate.Summary)
		case result.Estimate.Detailed != nil:
			f.renderDetailed(w, result.Estimate.Detailed)
		}
	}
	return nil
}

func (f *CLIFormatter) renderRooms(w io.Writer, result *pipeline.Result) {
	fmt.Fprintln(w, "ROOMS")
	fmt.Fprintln(w, rule)
	if len(result.Rooms) == 0 {
		fmt.Fprintln(w, "(no rooms detected)")
	} else {
		fmt.Fprintf(w, "%-24s %-14s %12s\n", "NAME", "TYPE", "AREA (m²)")
		fmt.Fprintln(w, rule)
		total := 0.0
		for _, room := range result.Rooms {
			fmt.Fprintf(w, "%-24s %-14s %12.2f\n", truncate(room.Name, 24), room.Type, room.AreaM2)
			total += room.AreaM2
		}
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%-24s %-14s %12.2f\n", "TOTAL", "", total)
	}
	if result.DroppedSmall > 0 {
		fmt.Fprintf(w, "⚠ %d room(s) below the minimum area were dropped\n", result.DroppedSmall)
	}
	fmt.Fprintln(w, "")
}

func (f *CLIFormatter) renderSummary(w io.Writer, summary *types.EstimateSummary) {
	fmt.Fprintln(w, "MATERIAL SUMMARY")
	fmt.Fprintln(w, rule)
	if f.ShowRows {
		fmt.Fprintf(w, "%-24s %10s %10s %8s %8s %12s\n",
			"ROOM", "TILES m²", "PAINT m²", "CEMENT", "SAND t", "COST")
		fmt.Fprintln(w, rule)
		for _, row := range summary.Rooms {
			fmt.Fprintf(w, "%-24s %10.2f %10.2f %8d %8.2f %12s\n",
				truncate(row.Room, 24), row.TilesM2, row.PaintM2,
				row.CementBags, row.SandTons, row.Cost.StringFixed(2))
		}
		fmt.Fprintln(w, rule)
	}
	fmt.Fprintf(w, "Floor tiles:  %.2f m²\n", summary.TotalTilesM2)
	fmt.Fprintf(w, "Wall paint:   %.2f m²\n", summary.TotalPaintM2)
	fmt.Fprintf(w, "Cement:       %d bags\n", summary.CementBags)
	fmt.Fprintf(w, "Sand:         %.2f tons\n", summary.SandTons)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "ESTIMATED COST: %s\n", summary.TotalCost.StringFixed(2))
	fmt.Fprintln(w, "")
}

func (f *CLIFormatter) renderDetailed(w io.Writer, detailed *types.DetailedEstimate) {
	fmt.Fprintln(w, "LINE ITEMS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s %-34s %10s %6s %12s\n", "CATEGORY", "ITEM", "QTY", "UNIT", "AMOUNT")
	fmt.Fprintln(w, rule)
	for _, item := range detailed.Items {
		fmt.Fprintf(w, "%-12s %-34s %10s %6s %12s\n",
			item.Category, truncate(item.ItemName, 34),
			item.Quantity.StringFixed(2), item.Unit, item.Amount.StringFixed(2))
	}
	fmt.Fprintln(w, rule)

	for _, total := range detailed.CategoryTotals {
		fmt.Fprintf(w, "%-47s %24s\n", total.Category, total.Amount.StringFixed(2))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-47s %24s\n", "Subtotal", detailed.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "%-47s %24s\n", "GST", detailed.Tax.StringFixed(2))
	fmt.Fprintf(w, "%-47s %24s\n", "GRAND TOTAL", detailed.GrandTotal.StringFixed(2))
	fmt.Fprintln(w, "")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
