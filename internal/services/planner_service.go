package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/repositories"
	"tripplanner/internal/utils"
)

// PlannerService is the domain API over a Store: required-field checks,
// defaults, and the NotFound/StoreFailure split.
type PlannerService struct {
	Store     repositories.Store
	RequestID string
}

// WithRequestID returns a copy that tags its log lines with id.
func (s PlannerService) WithRequestID(id string) PlannerService {
	s.RequestID = id
	return s
}

func (s PlannerService) ListTrips(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.Store.ListTrips(ctx)
	if err != nil {
		return nil, s.storeFailure("list_trips", "failed to fetch trips", err)
	}
	return trips, nil
}

func (s PlannerService) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	if strings.TrimSpace(id) == "" {
		return models.Trip{}, domain.Required("id")
	}
	trip, err := s.Store.GetTrip(ctx, id)
	if err != nil {
		return trip, s.storeFailure("get_trip", "failed to fetch trip", err)
	}
	return trip, nil
}

func (s PlannerService) CreateTrip(ctx context.Context, in models.NewTrip) (models.Trip, error) {
	in.Name = utils.TrimOrEmpty(in.Name)
	if err := models.CheckTrip(in); err != nil {
		return models.Trip{}, err
	}

	trip, err := s.Store.CreateTrip(ctx, in.Name, in.Cities)
	if err != nil {
		return trip, s.storeFailure("create_trip", "failed to create trip", err)
	}
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("trip_id=%s cities=%d", trip.ID, len(trip.Cities)))
	return trip, nil
}

func (s PlannerService) DeleteTrip(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Required("id")
	}
	if err := s.Store.DeleteTrip(ctx, id); err != nil {
		return s.storeFailure("delete_trip", "failed to delete trip", err)
	}
	utils.LogEvent(s.RequestID, "trips", "delete", "trip_id="+id)
	return nil
}

func (s PlannerService) CreateCity(ctx context.Context, in models.NewCity) (models.City, error) {
	in.TripID = utils.TrimOrEmpty(in.TripID)
	if err := models.CheckCity(in); err != nil {
		return models.City{}, err
	}

	city, err := s.Store.CreateCity(ctx, in)
	if err != nil {
		return city, s.storeFailure("create_city", "failed to create city", err)
	}
	utils.LogEvent(s.RequestID, "cities", "create", fmt.Sprintf("city_id=%s trip_id=%s", city.ID, city.TripID))
	return city, nil
}

// UpdateCityPosition changes only the axes present in pos.
func (s PlannerService) UpdateCityPosition(ctx context.Context, id string, pos *models.Position) (models.City, error) {
	if strings.TrimSpace(id) == "" {
		return models.City{}, domain.Required("id")
	}
	var patch models.Position
	if pos != nil {
		patch = *pos
	}

	city, err := s.Store.UpdateCityPosition(ctx, id, patch)
	if err != nil {
		return city, s.storeFailure("update_city", "failed to update city", err)
	}
	return city, nil
}

func (s PlannerService) DeleteCity(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Required("id")
	}
	if err := s.Store.DeleteCity(ctx, id); err != nil {
		return s.storeFailure("delete_city", "failed to delete city", err)
	}
	utils.LogEvent(s.RequestID, "cities", "delete", "city_id="+id)
	return nil
}

func (s PlannerService) CreateActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	if err := models.CheckActivity(in); err != nil {
		return models.Activity{}, err
	}

	act, err := s.Store.CreateActivity(ctx, in.WithDefaults())
	if err != nil {
		return act, s.storeFailure("create_activity", "failed to create activity", err)
	}
	utils.LogEvent(s.RequestID, "activities", "create", fmt.Sprintf("activity_id=%s city_id=%s", act.ID, act.CityID))
	return act, nil
}

// UpdateActivity replaces all editable fields. Fields the caller leaves out
// are stored empty; old values are not carried over.
func (s PlannerService) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	if strings.TrimSpace(id) == "" {
		return models.Activity{}, domain.Required("id")
	}
	act, err := s.Store.UpdateActivity(ctx, id, f)
	if err != nil {
		return act, s.storeFailure("update_activity", "failed to update activity", err)
	}
	return act, nil
}

func (s PlannerService) DeleteActivity(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Required("id")
	}
	if err := s.Store.DeleteActivity(ctx, id); err != nil {
		return s.storeFailure("delete_activity", "failed to delete activity", err)
	}
	utils.LogEvent(s.RequestID, "activities", "delete", "activity_id="+id)
	return nil
}

func (s PlannerService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

// storeFailure passes NotFound through and turns anything else into an
// InternalError carrying msg.
func (s PlannerService) storeFailure(action, msg string, err error) error {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return err
	}
	log.Printf("[STORE] action=%s request_id=%s err=%v", action, s.RequestID, err)
	return domain.InternalError{Msg: msg, Err: err}
}
