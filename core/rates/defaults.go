package rates

import (
	"github.com/shopspring/decimal"

	"plancost/core/types"
)

// DefaultTable is a static (category, item) → rate lookup used when no
// rate-card entry applies.
type DefaultTable map[types.Category]map[string]types.Rate

// Lookup returns the default rate for a category and item
func (t DefaultTable) Lookup(category types.Category, itemName string) (types.Rate, bool) {
	items, ok := t[category]
	if !ok {
		return types.Rate{}, false
	}
	rate, ok := items[itemName]
	return rate, ok
}

func sqm(rate int64) types.Rate  { return types.Rate{Rate: decimal.NewFromInt(rate), Unit: "sqm"} }
func sqft(rate int64) types.Rate { return types.Rate{Rate: decimal.NewFromInt(rate), Unit: "sqft"} }
func nos(rate int64) types.Rate  { return types.Rate{Rate: decimal.NewFromInt(rate), Unit: "nos"} }
func pt(rate int64) types.Rate   { return types.Rate{Rate: decimal.NewFromInt(rate), Unit: "point"} }

// DefaultRateCard returns the built-in default rate table
func DefaultRateCard() DefaultTable {
	return DefaultTable{
		types.CategoryCivil: {
			"Brickwork":     sqm(550),
			"Plastering":    sqm(180),
			"Concrete Work": {Rate: decimal.NewFromInt(8500), Unit: "cum"},
		},
		types.CategoryInterior: {
			"Floor Tiling":  sqm(1200),
			"Wall Tiling":   sqm(900),
			"False Ceiling": sqft(250),
			"Woodwork":      sqft(1500),
		},
		types.CategoryPainting: {
			"Wall Painting":    sqm(150),
			"Ceiling Painting": sqm(120),
		},
		types.CategoryElectrical: {
			"Wiring":       pt(450),
			"Light Points": nos(350),
			"Switch Board": nos(800),
		},
		types.CategoryPlumbing: {
			"Water Supply": pt(350),
			"Drainage":     pt(400),
		},
	}
}

// DefaultMaterialRules returns the built-in per-room-type material
// coefficients for the takeoff calculation.
func DefaultMaterialRules() map[types.RoomType]types.MaterialRule {
	return map[types.RoomType]types.MaterialRule{
		types.RoomBedroom: {
			CementBagsPerM2: 0.4, SandTonsPerM2: 0.05, PaintRatio: 3.5, TileRatio: 1.0,
		},
		types.RoomKitchen: {
			CementBagsPerM2: 0.5, SandTonsPerM2: 0.06, PaintRatio: 3.0, TileRatio: 1.2,
		},
		types.RoomBathroom: {
			CementBagsPerM2: 0.6, SandTonsPerM2: 0.07, PaintRatio: 2.8, TileRatio: 1.5,
		},
		types.RoomLivingRoom: {
			CementBagsPerM2: 0.35, SandTonsPerM2: 0.04, PaintRatio: 4.0, TileRatio: 1.0,
		},
		types.RoomOther: {
			CementBagsPerM2: 0.3, SandTonsPerM2: 0.04, PaintRatio: 3.0, TileRatio: 1.0,
		},
	}
}
