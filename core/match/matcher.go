// Package match pairs boundary candidates with text labels by point
// containment and produces named room candidates.
package match

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"plancost/core/types"
	"plancost/internal/logging"
)

// minSignificantAreaM2 is the floor below which a boundary produces no
// room candidate at all.
const minSignificantAreaM2 = 0.5

// Matcher assigns labels to boundaries
type Matcher struct {
	log *zap.Logger
}

// New creates a matcher
func New() *Matcher {
	return &Matcher{log: logging.Logger}
}

// Match walks boundaries in extraction order and pairs each with the
// first unconsumed label whose anchor lies inside it. A label is
// consumed by at most one boundary. Unmatched boundaries get a
// synthesized ROOM_<n> name. Boundaries whose scaled area is at or
// below 0.5 m² yield nothing.
func (m *Matcher) Match(labels []types.TextLabel, boundaries []types.BoundaryCandidate, scale types.UnitScale) []types.RoomCandidate {
	used := make([]bool, len(labels))
	var rooms []types.RoomCandidate

	for i, b := range boundaries {
		name := ""
		for j, label := range labels {
			if used[j] {
				continue
			}
			if b.Polygon.Contains(label.Anchor) {
				name = label.Text
				used[j] = true
				break
			}
		}

		areaM2 := math.Round(b.RawArea*scale.AreaFactor*100) / 100
		if areaM2 <= minSignificantAreaM2 {
			m.log.Debug("skipping insignificant boundary",
				zap.Int("index", i+1),
				zap.Float64("area_m2", areaM2))
			continue
		}

		if name == "" {
			name = fmt.Sprintf("ROOM_%d", i+1)
		}

		rooms = append(rooms, types.RoomCandidate{
			Name:     name,
			AreaM2:   areaM2,
			Centroid: b.Polygon.Centroid(),
		})
		m.log.Debug("matched room",
			zap.String("name", name),
			zap.Float64("area_m2", areaM2))
	}

	m.log.Info("label matching complete",
		zap.Int("boundaries", len(boundaries)),
		zap.Int("rooms", len(rooms)))
	return rooms
}
