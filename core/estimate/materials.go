package estimate

import (
	"math"

	"plancost/core/types"
)

// Takeoff applies the per-room-type material coefficients to each room
// and aggregates the result. Room types without a configured rule use
// the Other rule.
func (e *Engine) Takeoff(rooms []types.ClassifiedRoom) types.MaterialTakeoff {
	var cement, sand, paint, tiles float64

	for _, room := range rooms {
		rule, ok := e.materialRules[room.Type]
		if !ok {
			rule = e.materialRules[types.RoomOther]
		}
		cement += room.AreaM2 * rule.CementBagsPerM2
		sand += room.AreaM2 * rule.SandTonsPerM2
		paint += room.AreaM2 * rule.PaintRatio
		tiles += room.AreaM2 * rule.TileRatio
	}

	return types.MaterialTakeoff{
		CementBags: int(math.Round(cement)),
		SandTons:   round2(sand),
		PaintM2:    round2(paint),
		TilesM2:    round2(tiles),
	}
}
