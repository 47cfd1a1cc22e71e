package units

import (
	"testing"

	"plancost/core/types"
)

func boundariesWithArea(areas ...float64) []types.BoundaryCandidate {
	out := make([]types.BoundaryCandidate, 0, len(areas))
	for _, a := range areas {
		out = append(out, types.BoundaryCandidate{RawArea: a})
	}
	return out
}

func TestResolveExplicitUnits(t *testing.T) {
	tests := []struct {
		hint       types.Unit
		wantFactor float64
		wantFloor  float64
	}{
		{types.UnitMillimeter, 1e-6, 1000},
		{types.UnitCentimeter, 1e-4, 10},
		{types.UnitMeter, 1.0, 0.01},
	}

	r := New()
	for _, tt := range tests {
		t.Run(string(tt.hint), func(t *testing.T) {
			got := r.Resolve(tt.hint, nil)
			if got.Unit != tt.hint {
				t.Errorf("unit = %s, want %s", got.Unit, tt.hint)
			}
			if got.AreaFactor != tt.wantFactor {
				t.Errorf("factor = %v, want %v", got.AreaFactor, tt.wantFactor)
			}
			if got.MinRawArea != tt.wantFloor {
				t.Errorf("floor = %v, want %v", got.MinRawArea, tt.wantFloor)
			}
			if got.Inferred {
				t.Error("explicit unit marked as inferred")
			}
		})
	}
}

func TestAutoDetection(t *testing.T) {
	tests := []struct {
		name string
		mean float64
		want types.Unit
	}{
		{"huge areas are mm", 5e6, types.UnitMillimeter},
		// exactly 1,000,000 is not above the mm cutoff and not inside
		// the m band, so it lands in the documented mm fallback
		{"mm cutoff exact", 1_000_000, types.UnitMillimeter},
		{"just above mm cutoff", 1_000_001, types.UnitMillimeter},
		{"meter band low edge", 10, types.UnitMeter},
		{"meter band high edge", 100_000, types.UnitMeter},
		{"meters typical", 25, types.UnitMeter},
		{"tiny areas are cm", 4, types.UnitCentimeter},
		{"just below meter band", 9.99, types.UnitCentimeter},
		{"gap between bands defaults to mm", 500_000, types.UnitMillimeter},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(types.UnitAuto, boundariesWithArea(tt.mean))
			if got.Unit != tt.want {
				t.Errorf("mean %v: unit = %s, want %s", tt.mean, got.Unit, tt.want)
			}
			if !got.Inferred {
				t.Error("auto-detected scale not marked inferred")
			}
		})
	}
}

func TestAutoDetectionUsesMean(t *testing.T) {
	// mean of 2e6 and 10 is ~1e6+5, above the mm cutoff
	got := New().Resolve(types.UnitAuto, boundariesWithArea(2_000_000, 10))
	if got.Unit != types.UnitMillimeter {
		t.Errorf("unit = %s, want mm", got.Unit)
	}
}

func TestNoBoundariesDefaultsToMM(t *testing.T) {
	got := New().Resolve(types.UnitAuto, nil)
	if got.Unit != types.UnitMillimeter || got.AreaFactor != 1e-6 {
		t.Errorf("got %+v, want mm with factor 1e-6", got)
	}
}

func TestUnknownHintFallsBackToAuto(t *testing.T) {
	got := New().Resolve(types.Unit("furlong"), boundariesWithArea(30))
	if got.Unit != types.UnitMeter {
		t.Errorf("unit = %s, want m (inferred)", got.Unit)
	}
}

func TestRelax(t *testing.T) {
	scale := New().Resolve(types.UnitMillimeter, nil)

	relaxed := Relax(scale, 10)
	if relaxed.MinRawArea != 100 {
		t.Errorf("floor/10 = %v, want 100", relaxed.MinRawArea)
	}
	if relaxed.AreaFactor != scale.AreaFactor {
		t.Error("Relax must not change the area factor")
	}

	relaxed = Relax(scale, 100)
	if relaxed.MinRawArea != 10 {
		t.Errorf("floor/100 = %v, want 10", relaxed.MinRawArea)
	}
}
