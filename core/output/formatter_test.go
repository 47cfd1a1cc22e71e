package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"plancost/adapters/storage"
	"plancost/core/pipeline"
	"plancost/core/types"
	"plancost/internal/errors"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		DrawingID: "11111111-2222-3333-4444-555555555555",
		Path:      "plan.dxf",
		Scale: types.UnitScale{
			Unit:       types.UnitMillimeter,
			AreaFactor: 1e-6,
			MinRawArea: 1000,
			Inferred:   true,
		},
		Info: types.DrawingInfo{Version: "AC1027", TotalEntities: 2},
		Rooms: []types.ClassifiedRoom{
			{Name: "BEDROOM", Type: types.RoomBedroom, AreaM2: 12},
		},
		Estimate: &storage.StoredEstimate{
			Mode: types.ModeSummary,
			Summary: &types.EstimateSummary{
				TotalTilesM2: 12,
				TotalPaintM2: 36,
				CementBags:   7,
				SandTons:     0.25,
				TotalCost:    decimal.NewFromInt(18230),
				Rooms: []types.RoomBreakdown{
					{Room: "BEDROOM", Type: types.RoomBedroom, TilesM2: 12,
						PaintM2: 36, CementBags: 7, SandTons: 0.25,
						Cost: decimal.NewFromInt(18230)},
				},
			},
		},
		Duration: 3 * time.Millisecond,
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"cli", FormatCLI, false},
		{"json", FormatJSON, false},
		{"", FormatCLI, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		f, err := New(tt.name)
		if tt.wantErr {
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("New(%q) error = %v, want CONFIG_ERROR", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q): %v", tt.name, err)
			continue
		}
		if f.Format() != tt.want {
			t.Errorf("New(%q).Format() = %s, want %s", tt.name, f.Format(), tt.want)
		}
	}
}

func TestCLIRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CLIFormatter{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"FLOOR PLAN ESTIMATION REPORT",
		"BEDROOM",
		"Bedroom",
		"mm (detected)",
		"Cement:       7 bags",
		"ESTIMATED COST: 18230.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCLIRenderShowRows(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CLIFormatter{ShowRows: true}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "TILES m²") {
		t.Errorf("per-room rows missing:\n%s", buf.String())
	}
}

func TestCLIRenderDetailed(t *testing.T) {
	result := sampleResult()
	result.Estimate.Mode = types.ModeDetailed
	result.Estimate.Summary = nil
	result.Estimate.Detailed = &types.DetailedEstimate{
		Items: []types.LineItem{
			{
				Category: types.CategoryCivil,
				ItemName: "BEDROOM - Brickwork",
				Room:     "BEDROOM",
				Quantity: decimal.NewFromInt(36),
				Unit:     "sqm",
				Rate:     decimal.NewFromInt(550),
				Amount:   decimal.NewFromInt(19800),
			},
		},
		CategoryTotals: []types.CategoryTotal{
			{Category: types.CategoryCivil, Amount: decimal.NewFromInt(19800)},
		},
		Subtotal:   decimal.NewFromInt(19800),
		Tax:        decimal.NewFromInt(3564),
		GrandTotal: decimal.NewFromInt(23364),
	}

	var buf bytes.Buffer
	if err := (&CLIFormatter{}).Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BEDROOM - Brickwork", "GST", "23364.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCLIRenderEmptyRooms(t *testing.T) {
	result := sampleResult()
	result.Rooms = nil
	result.DroppedSmall = 2

	var buf bytes.Buffer
	if err := (&CLIFormatter{}).Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "(no rooms detected)") {
		t.Errorf("empty-room notice missing:\n%s", out)
	}
	if !strings.Contains(out, "2 room(s) below the minimum area") {
		t.Errorf("dropped-room notice missing:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"SHORT", 10, "SHORT"},
		{"EXACTLY TEN", 11, "EXACTLY TEN"},
		{"A VERY LONG ROOM NAME", 10, "A VERY ..."},
		{"ÜBERGANGSZIMMER GROß", 10, "ÜBERGAN..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestJSONRenderRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded pipeline.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.DrawingID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("drawing id = %s", decoded.DrawingID)
	}
	if len(decoded.Rooms) != 1 || decoded.Rooms[0].AreaM2 != 12 {
		t.Errorf("rooms = %+v", decoded.Rooms)
	}
}
