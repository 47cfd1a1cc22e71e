// Package classify maps raw room labels to the closed set of room types
// via a keyword cascade with an area-based fallback.
package classify

import (
	"strings"

	"plancost/core/types"
)

// keywordRule is one step of the cascade; first match wins
type keywordRule struct {
	keywords []string
	roomType types.RoomType
}

// rules in evaluation order
var rules = []keywordRule{
	{[]string{"BED"}, types.RoomBedroom},
	{[]string{"TOILET", "BATH", "WC"}, types.RoomBathroom},
	{[]string{"KITCHEN"}, types.RoomKitchen},
	{[]string{"LIVING", "LOUNGE"}, types.RoomLivingRoom},
	{[]string{"DINING"}, types.RoomDiningRoom},
	{[]string{"SERVANT"}, types.RoomServantRoom},
	{[]string{"STORE"}, types.RoomStoreRoom},
	{[]string{"BALCONY"}, types.RoomBalcony},
}

// Area fallback thresholds in m². The cascade falls through here when
// no keyword matches.
const (
	livingAreaMin  = 20
	bedroomAreaMin = 10
	kitchenAreaMin = 5
)

// Classify returns the room type for a raw label and floor area. It is
// total: every input yields exactly one type, and keyword rules always
// take precedence over the area fallback.
func Classify(name string, areaM2 float64) types.RoomType {
	text := strings.ToUpper(strings.TrimSpace(name))

	if text != "" {
		for _, rule := range rules {
			for _, kw := range rule.keywords {
				if strings.Contains(text, kw) {
					return rule.roomType
				}
			}
		}
	}

	switch {
	case areaM2 >= livingAreaMin:
		return types.RoomLivingRoom
	case areaM2 >= bedroomAreaMin:
		return types.RoomBedroom
	case areaM2 >= kitchenAreaMin:
		return types.RoomKitchen
	default:
		return types.RoomOther
	}
}

// ClassifyAll converts room candidates into classified rooms
func ClassifyAll(candidates []types.RoomCandidate) []types.ClassifiedRoom {
	rooms := make([]types.ClassifiedRoom, 0, len(candidates))
	for _, c := range candidates {
		rooms = append(rooms, types.ClassifiedRoom{
			Name:     c.Name,
			Type:     Classify(c.Name, c.AreaM2),
			AreaM2:   c.AreaM2,
			Centroid: c.Centroid,
		})
	}
	return rooms
}
