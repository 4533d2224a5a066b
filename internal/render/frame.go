// Package render turns client state into drawable primitives. Nothing here
// touches a real display, so frames can be compared in tests.
package render

import (
	"tripplanner/internal/client"
	"tripplanner/internal/layout"
	"tripplanner/internal/timeline"
	"tripplanner/internal/utils"
)

const addTripText = "Add trip +"

type TripCard struct {
	TripID string `json:"tripId"`
	Title  string `json:"title"`
	Cities int    `json:"cities"`
}

// Frame is one full screen. Only the part matching View is set.
type Frame struct {
	View  client.View `json:"view"`
	Title string      `json:"title"`

	TripCards []TripCard `json:"tripCards,omitempty"`
	AddTrip   string     `json:"addTrip,omitempty"`

	Canvas *layout.Scene `json:"canvas,omitempty"`

	Days          []timeline.Day `json:"days,omitempty"`
	TimelineError string         `json:"timelineError,omitempty"`
}

// Build derives the frame for st from scratch.
func Build(st client.State) Frame {
	switch st.View() {
	case client.ViewTimeline:
		trip, _ := st.CurrentTrip()
		city, _ := st.CurrentCity()
		f := Frame{View: client.ViewTimeline, Title: utils.Safe(trip.Name, client.DefaultTripName) + " / " + city.Name}
		days, err := timeline.Build(city)
		if err != nil {
			f.TimelineError = err.Error()
			days = []timeline.Day{}
		}
		f.Days = days
		return f
	case client.ViewCities:
		trip, _ := st.CurrentTrip()
		scene := layout.Canvas(trip.Cities)
		return Frame{View: client.ViewCities, Title: utils.Safe(trip.Name, client.DefaultTripName), Canvas: &scene}
	}

	cards := make([]TripCard, 0, len(st.Trips))
	for _, t := range st.Trips {
		cards = append(cards, TripCard{TripID: t.ID, Title: utils.Safe(t.Name, client.DefaultTripName), Cities: len(t.Cities)})
	}
	return Frame{View: client.ViewTrips, Title: "My Trips", TripCards: cards, AddTrip: addTripText}
}
