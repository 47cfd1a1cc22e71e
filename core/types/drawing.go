// Package types defines the shared domain model for the floor-plan
// estimation pipeline.
package types

import "plancost/core/geometry"

// EntityKind identifies a drawing entity type
type EntityKind string

const (
	EntityLWPolyline EntityKind = "LWPOLYLINE"
	EntityPolyline   EntityKind = "POLYLINE"
	EntityCircle     EntityKind = "CIRCLE"
	EntitySpline     EntityKind = "SPLINE"
	EntityLine       EntityKind = "LINE"
	EntityText       EntityKind = "TEXT"
	EntityMText      EntityKind = "MTEXT"
)

// Entity is one parsed drawing entity. Exactly one payload group is
// populated depending on Kind.
type Entity struct {
	// Kind is the entity type
	Kind EntityKind

	// Points holds polyline vertices or spline control points
	Points []geometry.Point

	// Closed marks a closed polyline
	Closed bool

	// Center and Radius describe a circle
	Center geometry.Point
	Radius float64

	// Text is the raw annotation text
	Text string

	// Anchor is the text insertion point
	Anchor geometry.Point
}

// Drawing is a parsed drawing document. Entities preserve file order;
// the struct is never mutated after parsing.
type Drawing struct {
	// Path is the source file path
	Path string `json:"path"`

	// Version is the declared drawing format version, if any
	Version string `json:"version,omitempty"`

	// Entities in file order
	Entities []Entity `json:"-"`
}

// TextLabel is a normalized text annotation with its anchor point
type TextLabel struct {
	// Text is upper-cased and trimmed
	Text string `json:"text"`

	// Anchor is the insertion point in drawing coordinates
	Anchor geometry.Point `json:"anchor"`
}

// BoundaryCandidate is a closed ring that may represent a room footprint
type BoundaryCandidate struct {
	// Polygon is the simple ring, after repair if one was needed
	Polygon geometry.Polygon `json:"polygon"`

	// RawArea is the area in squared drawing units
	RawArea float64 `json:"raw_area"`

	// Kind is the source entity type
	Kind EntityKind `json:"kind"`
}

// Unit is a supported drawing length unit
type Unit string

const (
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitMeter      Unit = "m"

	// UnitAuto requests unit inference from boundary areas
	UnitAuto Unit = "auto"
)

// UnitScale converts raw drawing areas into square meters
type UnitScale struct {
	// Unit is the resolved length unit
	Unit Unit `json:"unit"`

	// AreaFactor multiplies a raw area into m²
	AreaFactor float64 `json:"area_factor"`

	// MinRawArea is the noise floor in raw units; smaller boundaries
	// are discarded
	MinRawArea float64 `json:"min_raw_area"`

	// Inferred marks a scale produced by auto-detection
	Inferred bool `json:"inferred"`
}

// DrawingInfo is the diagnostics view of a drawing (entity counts),
// derivable without running the pipeline.
type DrawingInfo struct {
	// Version is the drawing format version
	Version string `json:"version,omitempty"`

	// EntityCounts maps entity kind to occurrence count
	EntityCounts map[EntityKind]int `json:"entities"`

	// TotalEntities is the overall entity count
	TotalEntities int `json:"total_entities"`

	// TextLabels counts TEXT and MTEXT entities
	TextLabels int `json:"text_labels"`

	// PossibleBoundaries counts closed-curve entity kinds
	PossibleBoundaries int `json:"possible_boundaries"`
}
