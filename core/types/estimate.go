package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups work items on an estimate
type Category string

const (
	CategoryCivil      Category = "Civil"
	CategoryInterior   Category = "Interior"
	CategoryElectrical Category = "Electrical"
	CategoryPlumbing   Category = "Plumbing"
	CategoryPainting   Category = "Painting"
	CategoryFlooring   Category = "Flooring"
)

// EstimateMode selects the estimation computation
type EstimateMode string

const (
	// ModeSummary produces aggregate material totals per room
	ModeSummary EstimateMode = "summary"

	// ModeDetailed produces priced line items per work type
	ModeDetailed EstimateMode = "detailed"
)

// RateEntry is one versioned row of a rate card
type RateEntry struct {
	// Category is the work category
	Category Category `json:"category"`

	// ItemName is the work item (e.g. "Brickwork")
	ItemName string `json:"item_name"`

	// Unit is the billing unit (sqm, sqft, nos, point, cum)
	Unit string `json:"unit"`

	// Rate is the price per unit
	Rate decimal.Decimal `json:"rate"`

	// Location optionally scopes the rate to a site location
	Location string `json:"location,omitempty"`

	// EffectiveFrom is the date this rate takes effect
	EffectiveFrom time.Time `json:"effective_from"`

	// Active marks the entry as usable
	Active bool `json:"active"`
}

// Rate is a resolved price for a work item
type Rate struct {
	Rate decimal.Decimal `json:"rate"`
	Unit string          `json:"unit"`
}

// LineItem is one priced unit of work on a detailed estimate.
// Amount is always Quantity * Rate, never set independently.
type LineItem struct {
	// Category is the work category
	Category Category `json:"category"`

	// ItemName is the item label, prefixed with the room name
	ItemName string `json:"item_name"`

	// Room is the name of the room this item belongs to, if any
	Room string `json:"room,omitempty"`

	// Quantity of work in Unit
	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the billing unit
	Unit string `json:"unit"`

	// Rate is the resolved price per unit
	Rate decimal.Decimal `json:"rate"`

	// Amount is the computed cost
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotal is the summed amount for one category
type CategoryTotal struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// RoomBreakdown is the per-room material summary row
type RoomBreakdown struct {
	Room       string          `json:"room"`
	Type       RoomType        `json:"room_type"`
	TilesM2    float64         `json:"tiles_sqm"`
	PaintM2    float64         `json:"paint_sqm"`
	CementBags int             `json:"cement_bags"`
	SandTons   float64         `json:"sand_tons"`
	Cost       decimal.Decimal `json:"cost"`
}

// EstimateSummary aggregates material totals for one drawing
type EstimateSummary struct {
	TotalTilesM2 float64         `json:"total_tiles_sqm"`
	TotalPaintM2 float64         `json:"total_paint_sqm"`
	CementBags   int             `json:"cement_bags"`
	SandTons     float64         `json:"sand_tons"`
	TotalCost    decimal.Decimal `json:"total_cost"`

	// Rooms is the per-room breakdown behind the totals
	Rooms []RoomBreakdown `json:"rooms,omitempty"`
}

// DetailedEstimate is the priced line-item breakdown for one drawing
type DetailedEstimate struct {
	// Items in generation order (room order, then fixed item order)
	Items []LineItem `json:"line_items"`

	// CategoryTotals sorted by category name
	CategoryTotals []CategoryTotal `json:"category_totals"`

	// Subtotal is the sum of all item amounts
	Subtotal decimal.Decimal `json:"subtotal"`

	// Tax on the subtotal
	Tax decimal.Decimal `json:"tax"`

	// GrandTotal is Subtotal + Tax
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// MaterialRule holds per-room-type material coefficients
type MaterialRule struct {
	CementBagsPerM2 float64 `json:"cement_bags_per_sqm"`
	SandTonsPerM2   float64 `json:"sand_tons_per_sqm"`
	PaintRatio      float64 `json:"paint_sqm_ratio"`
	TileRatio       float64 `json:"tiles_ratio"`
}

// MaterialTakeoff is the coefficient-based material aggregate
type MaterialTakeoff struct {
	CementBags int     `json:"cement_bags"`
	SandTons   float64 `json:"sand_tons"`
	PaintM2    float64 `json:"total_paint_sqm"`
	TilesM2    float64 `json:"total_tiles_sqm"`
}
