// Package extract derives text labels and boundary candidates from a
// parsed drawing, and produces the entity-count diagnostics view.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"plancost/core/geometry"
	"plancost/core/types"
	"plancost/internal/errors"
	"plancost/internal/logging"
)

// Extractor scans drawing entities for labels and room boundaries
type Extractor struct {
	log *zap.Logger
}

// New creates an extractor
func New() *Extractor {
	return &Extractor{log: logging.Logger}
}

// Labels returns the normalized text labels in entity order. Entities
// with empty normalized text are dropped.
func (x *Extractor) Labels(drawing *types.Drawing) []types.TextLabel {
	var labels []types.TextLabel
	for _, e := range drawing.Entities {
		if e.Kind != types.EntityText && e.Kind != types.EntityMText {
			continue
		}
		text := strings.ToUpper(strings.TrimSpace(e.Text))
		if text == "" {
			continue
		}
		labels = append(labels, types.TextLabel{Text: text, Anchor: e.Anchor})
	}
	x.log.Debug("extracted labels", zap.Int("count", len(labels)))
	return labels
}

// Boundaries returns boundary candidates above minRawArea, in entity
// order. Pass 0 to get every closed boundary, e.g. for unit inference.
// Self-intersecting rings are repaired; irreparable ones are skipped.
func (x *Extractor) Boundaries(drawing *types.Drawing, minRawArea float64) []types.BoundaryCandidate {
	var boundaries []types.BoundaryCandidate
	for _, e := range drawing.Entities {
		poly, ok := x.ringFor(e)
		if !ok {
			continue
		}

		if !poly.IsSimple() {
			repaired, ok := poly.Repair()
			if !ok {
				x.log.Warn("discarding irreparable boundary",
					zap.Error(errors.Geometry("self-intersecting ring could not be made simple")),
					zap.String("kind", string(e.Kind)),
					zap.Int("vertices", len(poly.Vertices)))
				continue
			}
			x.log.Debug("repaired self-intersecting boundary",
				zap.String("kind", string(e.Kind)))
			poly = repaired
		}

		area := poly.Area()
		if area <= minRawArea {
			continue
		}
		boundaries = append(boundaries, types.BoundaryCandidate{
			Polygon: poly,
			RawArea: area,
			Kind:    e.Kind,
		})
	}
	x.log.Debug("extracted boundaries",
		zap.Int("count", len(boundaries)),
		zap.Float64("min_raw_area", minRawArea))
	return boundaries
}

// ringFor builds the candidate ring for one entity, or reports that the
// entity cannot form a boundary.
func (x *Extractor) ringFor(e types.Entity) (geometry.Polygon, bool) {
	switch e.Kind {
	case types.EntityLWPolyline, types.EntityPolyline:
		if !e.Closed {
			return geometry.Polygon{}, false
		}
		poly := geometry.NewPolygon(e.Points)
		return poly, len(poly.Vertices) >= 3
	case types.EntitySpline:
		poly := geometry.NewPolygon(e.Points)
		return poly, len(poly.Vertices) >= 3
	case types.EntityCircle:
		if e.Radius <= 0 {
			return geometry.Polygon{}, false
		}
		return geometry.ApproximateCircle(e.Center, e.Radius, 36), true
	default:
		return geometry.Polygon{}, false
	}
}

// Inspect returns the diagnostics view of a drawing without running
// any other pipeline stage.
func Inspect(drawing *types.Drawing) types.DrawingInfo {
	info := types.DrawingInfo{
		Version:      drawing.Version,
		EntityCounts: make(map[types.EntityKind]int),
	}
	for _, e := range drawing.Entities {
		info.EntityCounts[e.Kind]++
	}
	info.TotalEntities = len(drawing.Entities)
	info.TextLabels = info.EntityCounts[types.EntityText] + info.EntityCounts[types.EntityMText]
	info.PossibleBoundaries = info.EntityCounts[types.EntityLWPolyline] +
		info.EntityCounts[types.EntityPolyline] +
		info.EntityCounts[types.EntityCircle]
	return info
}
