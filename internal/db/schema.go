package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

type schemaTable struct {
	name string
	ddl  string
	// columns added after the first release; back-filled on older tables
	late map[string]string
}

// Order matters: children reference parents.
var schema = []schemaTable{
	{"trips", `
CREATE TABLE IF NOT EXISTS trips (
	id CHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, nil},
	{"cities", `
CREATE TABLE IF NOT EXISTS cities (
	id CHAR(36) NOT NULL PRIMARY KEY,
	trip_id CHAR(36) NOT NULL,
	name VARCHAR(255) NOT NULL,
	transport VARCHAR(32) NOT NULL DEFAULT 'flight',
	start_date VARCHAR(32) NOT NULL,
	end_date VARCHAR(32) NOT NULL,
	pos_x INT NULL,
	pos_y INT NULL,
	sort_order INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_cities_trip (trip_id, sort_order),
	CONSTRAINT fk_cities_trip FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, map[string]string{"sort_order": "INT NOT NULL DEFAULT 0"}},
	{"activities", `
CREATE TABLE IF NOT EXISTS activities (
	id CHAR(36) NOT NULL PRIMARY KEY,
	city_id CHAR(36) NOT NULL,
	name VARCHAR(255) NULL,
	type VARCHAR(64) NULL,
	color VARCHAR(16) NULL,
	start_time VARCHAR(5) NULL,
	end_time VARCHAR(5) NULL,
	notes TEXT NULL,
	date VARCHAR(32) NOT NULL,
	sort_order INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_activities_city (city_id, sort_order),
	CONSTRAINT fk_activities_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, map[string]string{"sort_order": "INT NOT NULL DEFAULT 0"}},
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return fmt.Errorf("db not available")
	}
	for _, t := range schema {
		if HasTable(ctx, conn, t.name) {
			for col, def := range t.late {
				if HasColumn(ctx, conn, t.name, col) {
					continue
				}
				if _, err := conn.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.name, col, def)); err != nil {
					return fmt.Errorf("add column %s.%s: %w", t.name, col, err)
				}
				log.Printf("[DB] added column %s.%s", t.name, col)
			}
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[DB] created table %s", t.name)
	}
	return nil
}
