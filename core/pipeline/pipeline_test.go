package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"plancost/adapters/storage"
	"plancost/core/estimate"
	"plancost/core/rates"
	"plancost/core/types"
	"plancost/internal/errors"
)

func writeDrawing(t *testing.T, entityLines ...string) string {
	t.Helper()
	lines := []string{
		"0", "SECTION",
		"2", "HEADER",
		"9", "$ACADVER",
		"1", "AC1027",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
	}
	lines = append(lines, entityLines...)
	lines = append(lines, "0", "ENDSEC", "0", "EOF")

	path := filepath.Join(t.TempDir(), "plan.dxf")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write drawing: %v", err)
	}
	return path
}

// square emits a closed LWPOLYLINE from the origin plus a TEXT label
// at its center
func square(label string, w, h string) []string {
	return []string{
		"0", "LWPOLYLINE",
		"70", "1",
		"10", "0.0", "20", "0.0",
		"10", w, "20", "0.0",
		"10", w, "20", h,
		"10", "0.0", "20", h,
		"0", "TEXT",
		"1", label,
		"10", "1.0", "20", "1.0",
	}
}

func newPipeline(store storage.Store) *Pipeline {
	resolver := rates.NewResolver(nil, rates.DefaultRateCard(), "")
	engine := estimate.New(resolver, rates.DefaultMaterialRules(), 0.18)
	return New(engine, store, 5.0)
}

func TestRunSummary(t *testing.T) {
	// 4000x3000 mm, auto-detected as mm, 12 m²
	path := writeDrawing(t, square("BEDROOM", "4000.0", "3000.0")...)
	store := storage.NewMemoryStore()
	ctx := context.Background()

	result, err := newPipeline(store).Run(ctx, path, Options{Mode: types.ModeSummary})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Scale.Unit != types.UnitMillimeter || !result.Scale.Inferred {
		t.Errorf("scale = %+v, want inferred mm", result.Scale)
	}
	if len(result.Rooms) != 1 {
		t.Fatalf("rooms = %d, want 1", len(result.Rooms))
	}
	got := result.Rooms[0]
	if got.Name != "BEDROOM" || got.Type != types.RoomBedroom || got.AreaM2 != 12 {
		t.Errorf("room = %+v, want BEDROOM/Bedroom/12", got)
	}

	if result.Estimate == nil || result.Estimate.Summary == nil {
		t.Fatal("summary estimate missing from result")
	}
	summary := result.Estimate.Summary
	if summary.TotalTilesM2 != 12 || summary.CementBags != 7 {
		t.Errorf("summary = tiles %v cement %v, want 12/7", summary.TotalTilesM2, summary.CementBags)
	}
	if summary.TotalCost.String() != "18230" {
		t.Errorf("total cost = %s, want 18230", summary.TotalCost)
	}

	takeoff := result.Takeoff
	if takeoff.CementBags != 5 || takeoff.SandTons != 0.6 || takeoff.PaintM2 != 42 || takeoff.TilesM2 != 12 {
		t.Errorf("takeoff = %+v, want cement 5, sand 0.6, paint 42, tiles 12", takeoff)
	}

	stored, err := store.Rooms(ctx, result.DrawingID)
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if len(stored) != 1 || stored[0].Name != "BEDROOM" {
		t.Errorf("stored rooms = %+v", stored)
	}
}

func TestRunDetailed(t *testing.T) {
	path := writeDrawing(t, square("BEDROOM", "4000.0", "3000.0")...)
	store := storage.NewMemoryStore()
	ctx := context.Background()

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	result, err := newPipeline(store).Run(ctx, path, Options{Mode: types.ModeDetailed, AsOf: asOf})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Estimate.Mode != types.ModeDetailed || result.Estimate.Detailed == nil {
		t.Fatalf("estimate = %+v, want detailed payload", result.Estimate)
	}
	detailed := result.Estimate.Detailed
	if len(detailed.Items) == 0 {
		t.Fatal("no line items produced")
	}
	if !detailed.GrandTotal.IsPositive() {
		t.Errorf("grand total = %s, want positive", detailed.GrandTotal)
	}
	if detailed.Subtotal.String() != "47230" {
		t.Errorf("subtotal = %s, want 47230", detailed.Subtotal)
	}
}

func TestRunReplacesPreviousRecords(t *testing.T) {
	path := writeDrawing(t, square("BEDROOM", "4000.0", "3000.0")...)
	store := storage.NewMemoryStore()
	ctx := context.Background()
	pipe := newPipeline(store)

	first, err := pipe.Run(ctx, path, Options{Mode: types.ModeSummary})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := pipe.Run(ctx, path, Options{Mode: types.ModeDetailed})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.DrawingID != second.DrawingID {
		t.Errorf("drawing id changed across runs: %s vs %s", first.DrawingID, second.DrawingID)
	}

	stored, err := store.Estimate(ctx, second.DrawingID)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if stored.Mode != types.ModeDetailed || stored.Summary != nil {
		t.Errorf("previous estimate not replaced: %+v", stored)
	}
}

func TestRunSmallRoomDropped(t *testing.T) {
	// 2x2 m room sits below the 5 m² persistence floor
	path := writeDrawing(t, square("STORE", "2000.0", "2000.0")...)
	store := storage.NewMemoryStore()
	ctx := context.Background()

	result, err := newPipeline(store).Run(ctx, path, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Rooms) != 0 || result.DroppedSmall != 1 {
		t.Errorf("rooms = %d dropped = %d, want 0/1", len(result.Rooms), result.DroppedSmall)
	}

	kept, err := newPipeline(store).Run(ctx, path, Options{KeepSmall: true})
	if err != nil {
		t.Fatalf("Run keep-small: %v", err)
	}
	if len(kept.Rooms) != 1 || kept.DroppedSmall != 0 {
		t.Errorf("keep-small rooms = %d dropped = %d, want 1/0", len(kept.Rooms), kept.DroppedSmall)
	}
	if kept.Rooms[0].Type != types.RoomStoreRoom {
		t.Errorf("room type = %s, want Store Room", kept.Rooms[0].Type)
	}
}

func TestRunEmptyDrawingIsNotAnError(t *testing.T) {
	// a single tiny boundary falls below every noise floor on the
	// relax ladder
	path := writeDrawing(t, square("NOOK", "1.0", "1.0")...)
	store := storage.NewMemoryStore()
	ctx := context.Background()

	result, err := newPipeline(store).Run(ctx, path, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Rooms) != 0 {
		t.Errorf("rooms = %d, want 0", len(result.Rooms))
	}
	if result.Estimate == nil || result.Estimate.Summary == nil {
		t.Fatal("empty run must still store a summary")
	}
	if !result.Estimate.Summary.TotalCost.IsZero() {
		t.Errorf("total cost = %s, want 0", result.Estimate.Summary.TotalCost)
	}
}

func TestRunParseFailureLeavesStoreUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.dxf")
	if err := os.WriteFile(path, []byte("0\nSECTION\n2\nENTITIES\n"), 0o644); err != nil {
		t.Fatalf("write drawing: %v", err)
	}
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := newPipeline(store).Run(ctx, path, Options{})
	if !errors.IsType(err, errors.TypeParse) {
		t.Fatalf("Run error = %v, want PARSE_ERROR", err)
	}

	if _, err := store.Rooms(ctx, DrawingID(path)); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("rooms written despite parse failure: %v", err)
	}
}

func TestInspect(t *testing.T) {
	path := writeDrawing(t, square("BEDROOM", "4000.0", "3000.0")...)
	pipe := newPipeline(storage.NewMemoryStore())

	drawing, info, err := pipe.Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if drawing.Version != "AC1027" {
		t.Errorf("version = %s, want AC1027", drawing.Version)
	}
	if info.TextLabels != 1 || info.PossibleBoundaries != 1 {
		t.Errorf("info = %+v, want 1 label and 1 boundary", info)
	}
}

func TestDrawingIDStable(t *testing.T) {
	if DrawingID("a.dxf") != DrawingID("a.dxf") {
		t.Error("same path must yield the same drawing id")
	}
	if DrawingID("a.dxf") == DrawingID("b.dxf") {
		t.Error("different paths must yield different drawing ids")
	}
}
