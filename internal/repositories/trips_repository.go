package repositories

import (
	"context"
	"database/sql"

	intdb "tripplanner/internal/db"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"

	"github.com/google/uuid"
)

// ListTrips returns every trip with its cities and their activities nested.
func (s MySQLStore) ListTrips(ctx context.Context) ([]models.Trip, error) {
	db := s.db()

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM trips ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cities, err := s.queryCities(ctx, db, "")
	if err != nil {
		return nil, err
	}
	acts, err := s.queryActivities(ctx, db, "")
	if err != nil {
		return nil, err
	}
	return nest(trips, cities, acts), nil
}

// GetTrip loads one trip with its nested cities and activities.
func (s MySQLStore) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	db := s.db()

	var t models.Trip
	if err := db.QueryRowContext(ctx, `SELECT id, name FROM trips WHERE id=?`, id).Scan(&t.ID, &t.Name); err != nil {
		return t, notFoundIfNoRows(err, "trip")
	}

	cities, err := s.queryCities(ctx, db, "WHERE trip_id=?", id)
	if err != nil {
		return t, err
	}
	acts, err := s.queryActivities(ctx, db, "WHERE city_id IN (SELECT id FROM cities WHERE trip_id=?)", id)
	if err != nil {
		return t, err
	}
	return nest([]models.Trip{t}, cities, acts)[0], nil
}

// CreateTrip inserts the trip and all of its cities in one transaction.
func (s MySQLStore) CreateTrip(ctx context.Context, name string, cities []models.NewCity) (models.Trip, error) {
	trip := models.Trip{ID: uuid.NewString(), Name: name, Cities: []models.City{}}

	tx, err := s.db().BeginTx(ctx, nil)
	if err != nil {
		return trip, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO trips (id, name) VALUES (?, ?)`, trip.ID, trip.Name); err != nil {
		return trip, err
	}
	for i, in := range cities {
		c := newCityRecord(uuid.NewString(), trip.ID, in)
		if err := insertCity(ctx, tx, c, i); err != nil {
			return trip, err
		}
		trip.Cities = append(trip.Cities, c)
	}

	if err := tx.Commit(); err != nil {
		return trip, err
	}
	return trip, nil
}

// DeleteTrip removes the trip; the schema cascades to cities and activities.
func (s MySQLStore) DeleteTrip(ctx context.Context, id string) error {
	res, err := s.db().ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "trip")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCity(ctx context.Context, e execer, c models.City, order int) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO cities (id, trip_id, name, transport, start_date, end_date, pos_x, pos_y, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TripID, c.Name, string(c.Transport), c.StartDate, c.EndDate,
		intdb.NullIntPtr(c.PosX), intdb.NullIntPtr(c.PosY), order,
	)
	if isMissingParent(err) {
		return domain.NotFoundError{Resource: "trip", Err: err}
	}
	return err
}
