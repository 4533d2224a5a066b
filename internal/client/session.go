package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/dragdrop"
	"tripplanner/internal/layout"
	"tripplanner/internal/utils"
)

const DefaultTripName = "New Trip"

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

// Session holds the cached State and applies each mutation only after the
// server has confirmed it. Repeating an identical action while it is still
// in flight joins the pending request instead of sending a second one; a
// different payload always goes out on its own.
type Session struct {
	API *Client

	mu    sync.RWMutex
	state State

	inflight singleflight.Group
}

func NewSession(api *Client) *Session {
	return &Session{API: api, state: State{Trips: []models.Trip{}}}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// flightKey names one exact request: the operation, the target id and the
// encoded body.
func flightKey(op, id string, body any) string {
	raw, _ := json.Marshal(body)
	return op + ":" + id + ":" + string(raw)
}

func (s *Session) apply(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Load refreshes the trip list. Any failure, including the list timeout,
// leaves an empty list; the error is logged and returned for callers that
// want to show it.
func (s *Session) Load(ctx context.Context) (State, error) {
	v, err, _ := s.inflight.Do("trips:list", func() (any, error) {
		return s.API.ListTrips(ctx)
	})
	if err != nil {
		log.Printf("[CLIENT] action=load_trips err=%v", err)
		return s.apply(func(st State) State { return st.WithTrips(nil) }), err
	}
	trips := v.([]models.Trip)
	return s.apply(func(st State) State { return st.WithTrips(trips) }), nil
}

func (s *Session) SelectTrip(id string) State {
	return s.apply(func(st State) State { return st.SelectTrip(id) })
}

func (s *Session) SelectCity(id string) State {
	return s.apply(func(st State) State { return st.SelectCity(id) })
}

func (s *Session) Back() State {
	return s.apply(State.Back)
}

func (s *Session) SaveTrip(ctx context.Context, in models.NewTrip) (models.Trip, error) {
	if err := models.CheckTrip(in); err != nil {
		return models.Trip{}, err
	}
	v, err, _ := s.inflight.Do(flightKey("trip:create", "", in), func() (any, error) {
		trip, err := s.API.CreateTrip(ctx, in)
		if err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return st.AddTrip(trip) })
		return trip, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=save_trip err=%v", err)
		return models.Trip{}, err
	}
	return v.(models.Trip), nil
}

func (s *Session) DeleteTrip(ctx context.Context, id string) error {
	return s.remove(ctx, "trip", id, s.API.DeleteTrip, State.RemoveTrip)
}

// SaveCity adds a city to a trip. A city without a position is placed after
// the last cached city of its trip, see DraftCity.
func (s *Session) SaveCity(ctx context.Context, in models.NewCity) (models.City, error) {
	if err := models.CheckCity(in); err != nil {
		return models.City{}, err
	}
	st := s.State()
	if i := st.tripIndex(in.TripID); i >= 0 {
		in = DraftCity(st.Trips[i], in)
	}
	v, err, _ := s.inflight.Do(flightKey("city:create", in.TripID, in), func() (any, error) {
		city, err := s.API.CreateCity(ctx, in)
		if err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return st.AddCity(city) })
		return city, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=save_city err=%v", err)
		return models.City{}, err
	}
	return v.(models.City), nil
}

// MoveCity persists a new canvas position for a city.
func (s *Session) MoveCity(ctx context.Context, id string, pos models.Position) (models.City, error) {
	v, err, _ := s.inflight.Do(flightKey("city:move", id, pos), func() (any, error) {
		city, err := s.API.UpdateCityPosition(ctx, id, pos)
		if err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return st.ReplaceCity(city) })
		return city, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=move_city city_id=%s err=%v", id, err)
		return models.City{}, err
	}
	return v.(models.City), nil
}

func (s *Session) DeleteCity(ctx context.Context, id string) error {
	return s.remove(ctx, "city", id, s.API.DeleteCity, State.RemoveCity)
}

func (s *Session) SaveActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	if err := models.CheckActivity(in); err != nil {
		return models.Activity{}, err
	}
	v, err, _ := s.inflight.Do(flightKey("activity:create", in.CityID, in), func() (any, error) {
		act, err := s.API.CreateActivity(ctx, in)
		if err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return st.AddActivity(act) })
		return act, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=save_activity err=%v", err)
		return models.Activity{}, err
	}
	return v.(models.Activity), nil
}

// UpdateActivity sends every editable field; see ActivityFields.
func (s *Session) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	if utils.TrimOrEmpty(f.Name) == "" {
		return models.Activity{}, domain.Required("name")
	}
	v, err, _ := s.inflight.Do(flightKey("activity:update", id, f), func() (any, error) {
		act, err := s.API.UpdateActivity(ctx, id, f)
		if err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return st.ReplaceActivity(act) })
		return act, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=update_activity activity_id=%s err=%v", id, err)
		return models.Activity{}, err
	}
	return v.(models.Activity), nil
}

func (s *Session) DeleteActivity(ctx context.Context, id string) error {
	return s.remove(ctx, "activity", id, s.API.DeleteActivity, State.RemoveActivity)
}

func (s *Session) remove(ctx context.Context, kind, id string, call func(context.Context, string) error, drop func(State, string) State) error {
	_, err, _ := s.inflight.Do(kind+":delete:"+id, func() (any, error) {
		if err := call(ctx, id); err != nil {
			return nil, err
		}
		s.apply(func(st State) State { return drop(st, id) })
		return nil, nil
	})
	if err != nil {
		log.Printf("[CLIENT] action=delete_%s id=%s err=%v", kind, id, err)
	}
	return err
}

var confirmPrompts = map[dragdrop.Kind]string{
	dragdrop.KindTrip: "Are you sure you want to delete this trip?",
	dragdrop.KindCity: "Are you sure you want to delete this city?",
}

// ApplyDrop carries out a drag outcome. A declined confirmation is not an error.
func (s *Session) ApplyDrop(ctx context.Context, out dragdrop.Outcome, confirm Confirm) error {
	switch out.Action {
	case dragdrop.ActionDelete:
		if out.NeedsConfirm && (confirm == nil || !confirm(confirmPrompts[out.Entity.Kind])) {
			return nil
		}
		switch out.Entity.Kind {
		case dragdrop.KindTrip:
			return s.DeleteTrip(ctx, out.Entity.ID)
		case dragdrop.KindCity:
			return s.DeleteCity(ctx, out.Entity.ID)
		case dragdrop.KindActivity:
			return s.DeleteActivity(ctx, out.Entity.ID)
		}
		return fmt.Errorf("unknown drag kind %q", out.Entity.Kind)
	case dragdrop.ActionReposition:
		_, err := s.MoveCity(ctx, out.Entity.ID, out.Position)
		return err
	}
	return nil
}

// DraftTrip turns the rows of the new-trip form into a create payload.
// Rows missing a name or either date are skipped, each kept row is placed at
// the default spot for its row index, and a blank trip name becomes
// "New Trip". At least one complete row is required.
func DraftTrip(name string, rows []models.NewCity) (models.NewTrip, error) {
	out := models.NewTrip{Name: utils.Safe(name, DefaultTripName), Cities: []models.NewCity{}}
	for i, r := range rows {
		if utils.TrimOrEmpty(r.Name) == "" || utils.TrimOrEmpty(r.StartDate) == "" || utils.TrimOrEmpty(r.EndDate) == "" {
			continue
		}
		r.Transport = models.NormalizeTransport(r.Transport)
		r.Position = &models.Position{
			X: models.IntPtr(models.DefaultPosX + layout.DefaultStepX*i),
			Y: models.IntPtr(models.DefaultPosY + layout.DefaultStepY*i),
		}
		r.TripID = ""
		out.Cities = append(out.Cities, r)
	}
	if len(out.Cities) == 0 {
		return out, domain.ValidationError{Field: "cities", Msg: "add at least one city with dates"}
	}
	return out, nil
}

// DraftCity prepares the add-city form for trip. Without an explicit
// position the city goes one step right and down of the trip's last city,
// or to the default spot when the trip has none.
func DraftCity(trip models.Trip, in models.NewCity) models.NewCity {
	in.TripID = trip.ID
	in.Transport = models.NormalizeTransport(in.Transport)
	if in.Position == nil {
		in.Position = NextCityPosition(trip)
	}
	return in
}

// NextCityPosition is where a new city of trip is placed.
func NextCityPosition(trip models.Trip) *models.Position {
	n := len(trip.Cities)
	if n == 0 {
		return &models.Position{X: models.IntPtr(models.DefaultPosX), Y: models.IntPtr(models.DefaultPosY)}
	}
	last := layout.TabPosition(trip.Cities[n-1], n-1)
	return &models.Position{
		X: models.IntPtr(int(last.X) + layout.NewCityStepX),
		Y: models.IntPtr(int(last.Y) + layout.NewCityStepY),
	}
}
