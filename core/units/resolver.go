// Package units resolves a drawing's length unit and noise floor, either
// from an explicit hint or by inference from boundary areas.
package units

import (
	"go.uber.org/zap"

	"plancost/core/types"
	"plancost/internal/logging"
)

// scales maps each supported unit to its raw-area conversion factor and
// noise floor in raw units.
var scales = map[types.Unit]types.UnitScale{
	types.UnitMillimeter: {Unit: types.UnitMillimeter, AreaFactor: 1e-6, MinRawArea: 1000},
	types.UnitCentimeter: {Unit: types.UnitCentimeter, AreaFactor: 1e-4, MinRawArea: 10},
	types.UnitMeter:      {Unit: types.UnitMeter, AreaFactor: 1.0, MinRawArea: 0.01},
}

// Resolver infers unit scales
type Resolver struct {
	log *zap.Logger
}

// New creates a resolver
func New() *Resolver {
	return &Resolver{log: logging.Logger}
}

// Resolve maps an explicit unit hint to its scale, or infers the unit
// from the mean raw boundary area when the hint is "auto" or unknown.
// Boundaries must come from an extraction pass with threshold 0.
func (r *Resolver) Resolve(hint types.Unit, boundaries []types.BoundaryCandidate) types.UnitScale {
	if scale, ok := scales[hint]; ok {
		return scale
	}
	if hint != types.UnitAuto && hint != "" {
		r.log.Warn("unknown unit hint, falling back to auto-detection",
			zap.String("hint", string(hint)))
	}
	return r.detect(boundaries)
}

// detect picks a unit from the mean raw area over all boundaries
func (r *Resolver) detect(boundaries []types.BoundaryCandidate) types.UnitScale {
	if len(boundaries) == 0 {
		// nothing to infer from
		scale := scales[types.UnitMillimeter]
		scale.Inferred = true
		return scale
	}

	var sum float64
	for _, b := range boundaries {
		sum += b.RawArea
	}
	mean := sum / float64(len(boundaries))

	var unit types.Unit
	switch {
	case mean > 1_000_000:
		unit = types.UnitMillimeter
	case mean >= 10 && mean <= 100_000:
		unit = types.UnitMeter
	case mean < 10:
		unit = types.UnitCentimeter
	default:
		r.log.Warn("unusual mean boundary area, defaulting to mm",
			zap.Float64("mean_raw_area", mean))
		unit = types.UnitMillimeter
	}

	r.log.Info("auto-detected drawing unit",
		zap.String("unit", string(unit)),
		zap.Float64("mean_raw_area", mean))

	scale := scales[unit]
	scale.Inferred = true
	return scale
}

// Relax returns the scale with its noise floor divided by factor, used
// by the retry ladder when matching yields no rooms.
func Relax(scale types.UnitScale, factor float64) types.UnitScale {
	relaxed := scale
	relaxed.MinRawArea = scale.MinRawArea / factor
	return relaxed
}
