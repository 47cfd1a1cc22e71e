package types

import "plancost/core/geometry"

// RoomType is the closed set of recognized room classifications
type RoomType string

const (
	RoomBedroom     RoomType = "Bedroom"
	RoomBathroom    RoomType = "Bathroom"
	RoomKitchen     RoomType = "Kitchen"
	RoomLivingRoom  RoomType = "Living Room"
	RoomDiningRoom  RoomType = "Dining Room"
	RoomServantRoom RoomType = "Servant Room"
	RoomStoreRoom   RoomType = "Store Room"
	RoomBalcony     RoomType = "Balcony"
	RoomOther       RoomType = "Other"
)

// AllRoomTypes lists every valid RoomType
func AllRoomTypes() []RoomType {
	return []RoomType{
		RoomBedroom, RoomBathroom, RoomKitchen, RoomLivingRoom,
		RoomDiningRoom, RoomServantRoom, RoomStoreRoom, RoomBalcony,
		RoomOther,
	}
}

// RoomCandidate is a boundary paired with a name, before classification
type RoomCandidate struct {
	// Name is the matched label text, or a synthesized ROOM_<n>
	Name string `json:"name"`

	// AreaM2 is the floor area in m², rounded to 2 decimals
	AreaM2 float64 `json:"area_m2"`

	// Centroid is the boundary centroid in drawing coordinates
	Centroid geometry.Point `json:"centroid"`
}

// ClassifiedRoom is the persisted room record
type ClassifiedRoom struct {
	// Name is the original candidate name
	Name string `json:"name"`

	// Type is the classified room type
	Type RoomType `json:"room_type"`

	// AreaM2 is the floor area in m²
	AreaM2 float64 `json:"area_m2"`

	// Centroid is the room center in drawing coordinates
	Centroid geometry.Point `json:"centroid"`
}
