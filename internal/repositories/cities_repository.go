package repositories

import (
	"context"

	intdb "tripplanner/internal/db"
	"tripplanner/internal/domain/models"

	"github.com/google/uuid"
)

// CreateCity appends a city to an existing trip.
func (s MySQLStore) CreateCity(ctx context.Context, in models.NewCity) (models.City, error) {
	db := s.db()
	c := newCityRecord(uuid.NewString(), in.TripID, in)

	order, err := s.nextSortOrder(ctx, db, "cities", "trip_id", in.TripID)
	if err != nil {
		return c, err
	}
	if err := insertCity(ctx, db, c, order); err != nil {
		return c, err
	}
	return c, nil
}

// UpdateCityPosition only touches the axes that are present.
func (s MySQLStore) UpdateCityPosition(ctx context.Context, id string, pos models.Position) (models.City, error) {
	db := s.db()

	if _, err := db.ExecContext(ctx,
		`UPDATE cities SET pos_x=COALESCE(?, pos_x), pos_y=COALESCE(?, pos_y) WHERE id=?`,
		intdb.NullIntPtr(pos.X), intdb.NullIntPtr(pos.Y), id,
	); err != nil {
		return models.City{}, err
	}

	c, err := scanCity(db.QueryRowContext(ctx, citySelect+` WHERE id=?`, id))
	if err != nil {
		return c, notFoundIfNoRows(err, "city")
	}
	acts, err := s.queryActivities(ctx, db, "WHERE city_id=?", id)
	if err != nil {
		return c, err
	}
	c.Activities = acts
	return c, nil
}

// DeleteCity removes the city; its activities cascade.
func (s MySQLStore) DeleteCity(ctx context.Context, id string) error {
	res, err := s.db().ExecContext(ctx, `DELETE FROM cities WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "city")
}
