package models

import "strings"

type Transport string

const (
	TransportFlight Transport = "flight"
	TransportTrain  Transport = "train"
	TransportBus    Transport = "bus"
	TransportRide   Transport = "ride"
	TransportFerry  Transport = "ferry"
)

// Transports lists the modes offered by the city form, in display order.
var Transports = []Transport{TransportFlight, TransportTrain, TransportBus, TransportRide, TransportFerry}

const (
	DefaultPosX = 100
	DefaultPosY = 300
)

// City is a stop within a trip. PosX/PosY are free canvas coordinates; nil means unplaced.
type City struct {
	ID         string     `json:"id" bson:"_id"`
	TripID     string     `json:"tripId" bson:"trip_id"`
	Name       string     `json:"name" bson:"name"`
	Transport  Transport  `json:"transport" bson:"transport"`
	StartDate  string     `json:"startDate" bson:"start_date"`
	EndDate    string     `json:"endDate" bson:"end_date"`
	PosX       *int       `json:"posX" bson:"pos_x"`
	PosY       *int       `json:"posY" bson:"pos_y"`
	Activities []Activity `json:"activities" bson:"-"`
}

// Position carries optional canvas coordinates. A nil axis means "not provided".
type Position struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

// NewCity is used both nested in NewTrip and standalone for POST /cities.
type NewCity struct {
	TripID    string    `json:"tripId,omitempty"`
	Name      string    `json:"name"`
	Transport Transport `json:"transport"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Position  *Position `json:"position,omitempty"`
}

// CityPositionPatch is the PATCH /cities/{id} body.
type CityPositionPatch struct {
	Position *Position `json:"position"`
}

// ResolvedPosition applies the 100/300 default to each missing axis.
func (c NewCity) ResolvedPosition() (int, int) {
	x, y := DefaultPosX, DefaultPosY
	if c.Position != nil {
		if c.Position.X != nil {
			x = *c.Position.X
		}
		if c.Position.Y != nil {
			y = *c.Position.Y
		}
	}
	return x, y
}

// NormalizeTransport lowercases the mode and falls back to flight when empty.
func NormalizeTransport(t Transport) Transport {
	v := Transport(strings.ToLower(strings.TrimSpace(string(t))))
	if v == "" {
		return TransportFlight
	}
	return v
}

// IntPtr is a small helper for building positions.
func IntPtr(v int) *int { return &v }
