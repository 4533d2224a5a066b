package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "tripplanner/internal/config"
	intdb "tripplanner/internal/db"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// MySQL error 1452: a child row references a parent that does not exist.
const mysqlErrNoReferencedRow = 1452

// MySQLStore keeps trips, cities and activities in three tables linked by
// ON DELETE CASCADE foreign keys (see internal/db/schema.go).
type MySQLStore struct {
	DB *sql.DB
}

func (s MySQLStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MySQLStore) Ping(ctx context.Context) error {
	db := s.db()
	if db == nil {
		return errors.New("database not connected")
	}
	return db.PingContext(ctx)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const citySelect = `SELECT id, trip_id, name, transport, start_date, end_date, pos_x, pos_y FROM cities`

const activitySelect = `SELECT id, city_id, COALESCE(name,''), COALESCE(type,''), COALESCE(color,''),
	COALESCE(start_time,''), COALESCE(end_time,''), COALESCE(notes,''), date FROM activities`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCity(r rowScanner) (models.City, error) {
	var (
		c          models.City
		transport  string
		posX, posY sql.NullInt64
	)
	if err := r.Scan(&c.ID, &c.TripID, &c.Name, &transport, &c.StartDate, &c.EndDate, &posX, &posY); err != nil {
		return c, err
	}
	c.Transport = models.Transport(transport)
	c.PosX = intdb.IntPtrFromNull(posX)
	c.PosY = intdb.IntPtrFromNull(posY)
	c.Activities = []models.Activity{}
	return c, nil
}

func scanActivity(r rowScanner) (models.Activity, error) {
	var a models.Activity
	err := r.Scan(&a.ID, &a.CityID, &a.Name, &a.Type, &a.Color, &a.StartTime, &a.EndTime, &a.Notes, &a.Date)
	return a, err
}

func (s MySQLStore) queryCities(ctx context.Context, q queryer, where string, args ...any) ([]models.City, error) {
	rows, err := q.QueryContext(ctx, citySelect+" "+where+" ORDER BY sort_order ASC, created_at ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.City{}
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s MySQLStore) queryActivities(ctx context.Context, q queryer, where string, args ...any) ([]models.Activity, error) {
	rows, err := q.QueryContext(ctx, activitySelect+" "+where+" ORDER BY sort_order ASC, created_at ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// nextSortOrder appends after the last sibling in table under parentCol.
func (s MySQLStore) nextSortOrder(ctx context.Context, q queryer, table, parentCol, parentID string) (int, error) {
	var next int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM `+table+` WHERE `+parentCol+`=?`, parentID,
	).Scan(&next)
	return next, err
}

// nest attaches activities to their cities and cities to their trips, keeping
// the store order of each list.
func nest(trips []models.Trip, cities []models.City, acts []models.Activity) []models.Trip {
	byCity := map[string][]models.Activity{}
	for _, a := range acts {
		byCity[a.CityID] = append(byCity[a.CityID], a)
	}
	byTrip := map[string][]models.City{}
	for _, c := range cities {
		if list, ok := byCity[c.ID]; ok {
			c.Activities = list
		} else if c.Activities == nil {
			c.Activities = []models.Activity{}
		}
		byTrip[c.TripID] = append(byTrip[c.TripID], c)
	}
	for i := range trips {
		if list, ok := byTrip[trips[i].ID]; ok {
			trips[i].Cities = list
		} else {
			trips[i].Cities = []models.City{}
		}
	}
	return trips
}

func isMissingParent(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}

func notFoundIfNoRows(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
