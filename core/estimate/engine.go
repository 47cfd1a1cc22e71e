// Package estimate computes material totals and priced line-item
// breakdowns from classified rooms. Both modes are pure functions of
// the room list and the configured rates, so regeneration is
// idempotent.
package estimate

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"plancost/core/rates"
	"plancost/core/types"
	"plancost/internal/logging"
)

// Summary-mode cost coefficients (per sqm / per bag / per ton)
var (
	tileRate   = decimal.NewFromInt(1200)
	paintRate  = decimal.NewFromInt(15)
	cementRate = decimal.NewFromInt(420)
	sandRate   = decimal.NewFromInt(1400)
)

// Engine computes estimates
type Engine struct {
	rates         *rates.Resolver
	materialRules map[types.RoomType]types.MaterialRule
	taxRate       decimal.Decimal
	log           *zap.Logger
}

// New creates an engine. materialRules must cover types.RoomOther,
// which is the default arm for unknown room types.
func New(resolver *rates.Resolver, materialRules map[types.RoomType]types.MaterialRule, taxRate float64) *Engine {
	return &Engine{
		rates:         resolver,
		materialRules: materialRules,
		taxRate:       decimal.NewFromFloat(taxRate),
		log:           logging.Logger,
	}
}

// Summary computes the aggregate material estimate: per room, wall area
// is three times floor area, tiles cover the floor, paint covers the
// walls, and cement/sand follow from the wall area.
func (e *Engine) Summary(rooms []types.ClassifiedRoom) types.EstimateSummary {
	var summary types.EstimateSummary
	var totalTiles, totalPaint, totalSand float64
	totalCost := decimal.Zero

	for _, room := range rooms {
		floor := room.AreaM2
		wall := floor * 3

		tiles := floor
		paint := wall
		cementBags := int(math.Floor(wall * 0.2))
		sandTons := round2(float64(cementBags) * 0.035)

		cost := decimal.NewFromFloat(tiles).Mul(tileRate).
			Add(decimal.NewFromFloat(paint).Mul(paintRate)).
			Add(decimal.NewFromInt(int64(cementBags)).Mul(cementRate)).
			Add(decimal.NewFromFloat(sandTons).Mul(sandRate)).
			Round(2)

		summary.Rooms = append(summary.Rooms, types.RoomBreakdown{
			Room:       room.Name,
			Type:       room.Type,
			TilesM2:    round2(tiles),
			PaintM2:    round2(paint),
			CementBags: cementBags,
			SandTons:   sandTons,
			Cost:       cost,
		})

		totalTiles += tiles
		totalPaint += paint
		summary.CementBags += cementBags
		totalSand += sandTons
		totalCost = totalCost.Add(cost)
	}

	summary.TotalTilesM2 = round2(totalTiles)
	summary.TotalPaintM2 = round2(totalPaint)
	summary.SandTons = round2(totalSand)
	summary.TotalCost = totalCost.Round(2)

	e.log.Info("summary estimate computed",
		zap.Int("rooms", len(rooms)),
		zap.String("total_cost", summary.TotalCost.String()))
	return summary
}

// workItem is one fixed entry of the detailed-mode item set
type workItem struct {
	category types.Category
	rateItem string // key into the rate card
	label    string // suffix on the line-item name
}

// detailedItems in generation order
var detailedItems = []workItem{
	{types.CategoryCivil, "Brickwork", "Brickwork"},
	{types.CategoryCivil, "Plastering", "Wall Plastering"},
	{types.CategoryInterior, "Floor Tiling", "Floor Tiling"},
	{types.CategoryPainting, "Wall Painting", "Wall Painting"},
	{types.CategoryElectrical, "Light Points", "Light Points"},
	{types.CategoryElectrical, "Switch Board", "Switch Boards"},
}

// Detailed computes the priced line-item breakdown. Wall area uses a
// room-type-dependent multiplier; each room emits the fixed item set
// with rates resolved as of asOf.
func (e *Engine) Detailed(rooms []types.ClassifiedRoom, asOf time.Time) types.DetailedEstimate {
	var est types.DetailedEstimate
	categoryTotals := make(map[types.Category]decimal.Decimal)
	subtotal := decimal.Zero

	for _, room := range rooms {
		floor := room.AreaM2
		wall := floor * wallMultiplier(room.Type)

		for _, item := range detailedItems {
			quantity := quantityFor(item, floor, wall)
			rate, _ := e.rates.RateFor(item.category, item.rateItem, asOf)
			amount := quantity.Mul(rate.Rate).Round(2)

			est.Items = append(est.Items, types.LineItem{
				Category: item.category,
				ItemName: room.Name + " - " + item.label,
				Room:     room.Name,
				Quantity: quantity,
				Unit:     rate.Unit,
				Rate:     rate.Rate,
				Amount:   amount,
			})

			categoryTotals[item.category] = categoryTotals[item.category].Add(amount)
			subtotal = subtotal.Add(amount)
		}
	}

	for category, amount := range categoryTotals {
		est.CategoryTotals = append(est.CategoryTotals, types.CategoryTotal{
			Category: category,
			Amount:   amount.Round(2),
		})
	}
	sort.Slice(est.CategoryTotals, func(i, j int) bool {
		return est.CategoryTotals[i].Category < est.CategoryTotals[j].Category
	})

	est.Subtotal = subtotal.Round(2)
	est.Tax = est.Subtotal.Mul(e.taxRate).Round(2)
	est.GrandTotal = est.Subtotal.Add(est.Tax)

	e.log.Info("detailed estimate computed",
		zap.Int("rooms", len(rooms)),
		zap.Int("line_items", len(est.Items)),
		zap.String("grand_total", est.GrandTotal.String()))
	return est
}

// quantityFor computes the item quantity from floor and wall areas
func quantityFor(item workItem, floor, wall float64) decimal.Decimal {
	switch item.rateItem {
	case "Floor Tiling":
		return decimal.NewFromFloat(round2(floor))
	case "Light Points":
		points := int64(math.Floor(floor / 10))
		if points < 1 {
			points = 1
		}
		return decimal.NewFromInt(points)
	case "Switch Board":
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromFloat(round2(wall))
	}
}

// wallMultiplier maps a room type to its wall-to-floor area ratio
func wallMultiplier(roomType types.RoomType) float64 {
	switch roomType {
	case types.RoomBathroom:
		return 2.5
	case types.RoomBedroom:
		return 3.0
	case types.RoomLivingRoom:
		return 3.5
	default:
		return 3.0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
