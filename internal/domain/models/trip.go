package models

// Trip owns an ordered list of cities. Deleting it deletes them.
type Trip struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Cities []City `json:"cities" bson:"-"`
}

// NewTrip is the create payload for POST /trips.
type NewTrip struct {
	Name   string    `json:"name"`
	Cities []NewCity `json:"cities"`
}

// FindCity returns the city with the given id and its index, or -1.
func (t Trip) FindCity(id string) (City, int) {
	for i, c := range t.Cities {
		if c.ID == id {
			return c, i
		}
	}
	return City{}, -1
}
