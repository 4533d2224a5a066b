package client

import (
	"slices"

	"tripplanner/internal/domain/models"
)

type View string

const (
	ViewTrips    View = "trips"
	ViewCities   View = "cities"
	ViewTimeline View = "timeline"
)

// State is the cached trip list plus the current selection. It is a value:
// every transition returns a new State and leaves the receiver untouched.
type State struct {
	Trips         []models.Trip
	CurrentTripID string
	CurrentCityID string
}

func (s State) View() View {
	switch {
	case s.CurrentCityID != "":
		return ViewTimeline
	case s.CurrentTripID != "":
		return ViewCities
	default:
		return ViewTrips
	}
}

func (s State) CurrentTrip() (models.Trip, bool) {
	i := s.tripIndex(s.CurrentTripID)
	if i < 0 {
		return models.Trip{}, false
	}
	return s.Trips[i], true
}

func (s State) CurrentCity() (models.City, bool) {
	trip, ok := s.CurrentTrip()
	if !ok {
		return models.City{}, false
	}
	city, i := trip.FindCity(s.CurrentCityID)
	return city, i >= 0
}

// WithTrips replaces the cache. A selection that no longer exists is dropped.
func (s State) WithTrips(trips []models.Trip) State {
	next := State{Trips: slices.Clone(trips), CurrentTripID: s.CurrentTripID, CurrentCityID: s.CurrentCityID}
	if next.Trips == nil {
		next.Trips = []models.Trip{}
	}
	return next.pruneSelection()
}

// SelectTrip opens a trip's city canvas. Unknown ids leave the state as is.
func (s State) SelectTrip(id string) State {
	if s.tripIndex(id) < 0 {
		return s
	}
	s.CurrentTripID = id
	s.CurrentCityID = ""
	return s
}

// SelectCity opens the timeline of a city in the current trip.
func (s State) SelectCity(id string) State {
	trip, ok := s.CurrentTrip()
	if !ok {
		return s
	}
	if _, i := trip.FindCity(id); i < 0 {
		return s
	}
	s.CurrentCityID = id
	return s
}

// Back goes timeline -> cities -> trips.
func (s State) Back() State {
	if s.CurrentCityID != "" {
		s.CurrentCityID = ""
		return s
	}
	s.CurrentTripID = ""
	return s
}

func (s State) AddTrip(t models.Trip) State {
	s.Trips = append(slices.Clone(s.Trips), t)
	return s
}

func (s State) RemoveTrip(id string) State {
	s.Trips = slices.DeleteFunc(slices.Clone(s.Trips), func(t models.Trip) bool { return t.ID == id })
	return s.pruneSelection()
}

func (s State) AddCity(c models.City) State {
	return s.updateTrip(c.TripID, func(t *models.Trip) {
		if c.Activities == nil {
			c.Activities = []models.Activity{}
		}
		t.Cities = append(slices.Clone(t.Cities), c)
	})
}

// ReplaceCity swaps in a server copy of a city. Its activities are kept
// from the cache when the server copy carries none.
func (s State) ReplaceCity(c models.City) State {
	return s.updateTrip(c.TripID, func(t *models.Trip) {
		_, i := t.FindCity(c.ID)
		if i < 0 {
			return
		}
		if len(c.Activities) == 0 {
			c.Activities = t.Cities[i].Activities
		}
		t.Cities = slices.Clone(t.Cities)
		t.Cities[i] = c
	})
}

func (s State) RemoveCity(id string) State {
	for ti := range s.Trips {
		if _, ci := s.Trips[ti].FindCity(id); ci >= 0 {
			s = s.updateTrip(s.Trips[ti].ID, func(t *models.Trip) {
				t.Cities = slices.Delete(slices.Clone(t.Cities), ci, ci+1)
			})
			return s.pruneSelection()
		}
	}
	return s
}

func (s State) AddActivity(a models.Activity) State {
	return s.updateCity(a.CityID, func(c *models.City) {
		c.Activities = append(slices.Clone(c.Activities), a)
	})
}

func (s State) ReplaceActivity(a models.Activity) State {
	return s.updateCity(a.CityID, func(c *models.City) {
		i := slices.IndexFunc(c.Activities, func(x models.Activity) bool { return x.ID == a.ID })
		if i < 0 {
			return
		}
		c.Activities = slices.Clone(c.Activities)
		c.Activities[i] = a
	})
}

func (s State) RemoveActivity(id string) State {
	for _, t := range s.Trips {
		for _, c := range t.Cities {
			if slices.ContainsFunc(c.Activities, func(a models.Activity) bool { return a.ID == id }) {
				return s.updateCity(c.ID, func(c *models.City) {
					c.Activities = slices.DeleteFunc(slices.Clone(c.Activities), func(a models.Activity) bool { return a.ID == id })
				})
			}
		}
	}
	return s
}

func (s State) tripIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.Trips, func(t models.Trip) bool { return t.ID == id })
}

func (s State) updateTrip(id string, fn func(*models.Trip)) State {
	i := s.tripIndex(id)
	if i < 0 {
		return s
	}
	trips := slices.Clone(s.Trips)
	fn(&trips[i])
	s.Trips = trips
	return s
}

func (s State) updateCity(cityID string, fn func(*models.City)) State {
	for _, t := range s.Trips {
		if _, ci := t.FindCity(cityID); ci >= 0 {
			return s.updateTrip(t.ID, func(t *models.Trip) {
				t.Cities = slices.Clone(t.Cities)
				fn(&t.Cities[ci])
			})
		}
	}
	return s
}

func (s State) pruneSelection() State {
	if _, ok := s.CurrentTrip(); !ok {
		s.CurrentTripID = ""
		s.CurrentCityID = ""
		return s
	}
	if _, ok := s.CurrentCity(); !ok {
		s.CurrentCityID = ""
	}
	return s
}
