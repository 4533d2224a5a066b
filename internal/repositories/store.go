package repositories

import (
	"context"

	"tripplanner/internal/domain/models"
)

// Store is the persistence boundary for trips, cities and activities.
// Deletes cascade Trip -> City -> Activity. Missing targets surface as
// domain.NotFoundError; every other failure is returned as-is.
type Store interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	GetTrip(ctx context.Context, id string) (models.Trip, error)
	CreateTrip(ctx context.Context, name string, cities []models.NewCity) (models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	CreateCity(ctx context.Context, city models.NewCity) (models.City, error)
	UpdateCityPosition(ctx context.Context, id string, pos models.Position) (models.City, error)
	DeleteCity(ctx context.Context, id string) error

	CreateActivity(ctx context.Context, act models.NewActivity) (models.Activity, error)
	UpdateActivity(ctx context.Context, id string, fields models.ActivityFields) (models.Activity, error)
	DeleteActivity(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

// newCityRecord builds the stored form of a city about to be inserted.
func newCityRecord(id, tripID string, in models.NewCity) models.City {
	x, y := in.ResolvedPosition()
	return models.City{
		ID:         id,
		TripID:     tripID,
		Name:       in.Name,
		Transport:  models.NormalizeTransport(in.Transport),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		PosX:       models.IntPtr(x),
		PosY:       models.IntPtr(y),
		Activities: []models.Activity{},
	}
}

func newActivityRecord(id string, in models.NewActivity) models.Activity {
	in = in.WithDefaults()
	return models.Activity{
		ID:        id,
		CityID:    in.CityID,
		Name:      in.Name,
		Type:      in.Type,
		Color:     in.Color,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Notes:     in.Notes,
		Date:      in.Date,
	}
}

func applyActivityFields(a models.Activity, f models.ActivityFields) models.Activity {
	a.Name = f.Name
	a.Type = f.Type
	a.Color = f.Color
	a.StartTime = f.StartTime
	a.EndTime = f.EndTime
	a.Notes = f.Notes
	return a
}

func applyPosition(c models.City, pos models.Position) models.City {
	if pos.X != nil {
		c.PosX = models.IntPtr(*pos.X)
	}
	if pos.Y != nil {
		c.PosY = models.IntPtr(*pos.Y)
	}
	return c
}
