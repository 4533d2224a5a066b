package repositories

import (
	"context"

	intdb "tripplanner/internal/db"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"

	"github.com/google/uuid"
)

func (s MySQLStore) CreateActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	db := s.db()
	a := newActivityRecord(uuid.NewString(), in)

	order, err := s.nextSortOrder(ctx, db, "activities", "city_id", a.CityID)
	if err != nil {
		return a, err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO activities (id, city_id, name, type, color, start_time, end_time, notes, date, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CityID, a.Name, a.Type, a.Color, a.StartTime, a.EndTime, a.Notes, a.Date, order,
	)
	if isMissingParent(err) {
		return a, domain.NotFoundError{Resource: "city", Err: err}
	}
	if err != nil {
		return a, err
	}
	return a, nil
}

// UpdateActivity replaces every editable column. Blank fields are stored as NULL.
func (s MySQLStore) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	db := s.db()

	if _, err := db.ExecContext(ctx, `
		UPDATE activities SET name=?, type=?, color=?, start_time=?, end_time=?, notes=?
		WHERE id=?`,
		intdb.NullIfEmpty(f.Name), intdb.NullIfEmpty(f.Type), intdb.NullIfEmpty(f.Color),
		intdb.NullIfEmpty(f.StartTime), intdb.NullIfEmpty(f.EndTime), intdb.NullIfEmpty(f.Notes),
		id,
	); err != nil {
		return models.Activity{}, err
	}

	a, err := scanActivity(db.QueryRowContext(ctx, activitySelect+` WHERE id=?`, id))
	if err != nil {
		return a, notFoundIfNoRows(err, "activity")
	}
	return a, nil
}

func (s MySQLStore) DeleteActivity(ctx context.Context, id string) error {
	res, err := s.db().ExecContext(ctx, `DELETE FROM activities WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "activity")
}
