package repositories

import (
	"context"
	"sync"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. Lists preserve insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	tripOrder  []string
	trips      map[string]models.Trip
	cities     map[string]models.City
	activities map[string]models.Activity
	// child ids per parent, in insertion order
	tripCities   map[string][]string
	cityActivity map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:        map[string]models.Trip{},
		cities:       map[string]models.City{},
		activities:   map[string]models.Activity{},
		tripCities:   map[string][]string{},
		cityActivity: map[string][]string{},
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) ListTrips(ctx context.Context) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trip, 0, len(s.tripOrder))
	for _, id := range s.tripOrder {
		out = append(out, s.assembleTrip(id))
	}
	return out, nil
}

func (s *MemoryStore) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.trips[id]; !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return s.assembleTrip(id), nil
}

func (s *MemoryStore) CreateTrip(ctx context.Context, name string, cities []models.NewCity) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := models.Trip{ID: uuid.NewString(), Name: name}
	s.trips[trip.ID] = trip
	s.tripOrder = append(s.tripOrder, trip.ID)
	for _, in := range cities {
		c := newCityRecord(uuid.NewString(), trip.ID, in)
		s.cities[c.ID] = c
		s.tripCities[trip.ID] = append(s.tripCities[trip.ID], c.ID)
	}
	return s.assembleTrip(trip.ID), nil
}

func (s *MemoryStore) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return domain.NotFoundError{Resource: "trip"}
	}
	for _, cid := range s.tripCities[id] {
		s.dropCity(cid)
	}
	delete(s.tripCities, id)
	delete(s.trips, id)
	s.tripOrder = without(s.tripOrder, id)
	return nil
}

func (s *MemoryStore) CreateCity(ctx context.Context, in models.NewCity) (models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[in.TripID]; !ok {
		return models.City{}, domain.NotFoundError{Resource: "trip"}
	}
	c := newCityRecord(uuid.NewString(), in.TripID, in)
	s.cities[c.ID] = c
	s.tripCities[in.TripID] = append(s.tripCities[in.TripID], c.ID)
	return c, nil
}

func (s *MemoryStore) UpdateCityPosition(ctx context.Context, id string, pos models.Position) (models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cities[id]
	if !ok {
		return models.City{}, domain.NotFoundError{Resource: "city"}
	}
	c = applyPosition(c, pos)
	s.cities[id] = c
	return s.assembleCity(id), nil
}

func (s *MemoryStore) DeleteCity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cities[id]
	if !ok {
		return domain.NotFoundError{Resource: "city"}
	}
	s.tripCities[c.TripID] = without(s.tripCities[c.TripID], id)
	s.dropCity(id)
	return nil
}

func (s *MemoryStore) CreateActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cities[in.CityID]; !ok {
		return models.Activity{}, domain.NotFoundError{Resource: "city"}
	}
	a := newActivityRecord(uuid.NewString(), in)
	s.activities[a.ID] = a
	s.cityActivity[a.CityID] = append(s.cityActivity[a.CityID], a.ID)
	return a, nil
}

func (s *MemoryStore) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, domain.NotFoundError{Resource: "activity"}
	}
	a = applyActivityFields(a, f)
	s.activities[id] = a
	return a, nil
}

func (s *MemoryStore) DeleteActivity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return domain.NotFoundError{Resource: "activity"}
	}
	s.cityActivity[a.CityID] = without(s.cityActivity[a.CityID], id)
	delete(s.activities, id)
	return nil
}

// callers hold the lock

func (s *MemoryStore) dropCity(id string) {
	for _, aid := range s.cityActivity[id] {
		delete(s.activities, aid)
	}
	delete(s.cityActivity, id)
	delete(s.cities, id)
}

func (s *MemoryStore) assembleTrip(id string) models.Trip {
	t := s.trips[id]
	t.Cities = make([]models.City, 0, len(s.tripCities[id]))
	for _, cid := range s.tripCities[id] {
		t.Cities = append(t.Cities, s.assembleCity(cid))
	}
	return t
}

func (s *MemoryStore) assembleCity(id string) models.City {
	c := s.cities[id]
	c.Activities = make([]models.Activity, 0, len(s.cityActivity[id]))
	for _, aid := range s.cityActivity[id] {
		c.Activities = append(c.Activities, s.activities[aid])
	}
	return c
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
