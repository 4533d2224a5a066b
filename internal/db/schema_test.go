package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaCreatesMissingTablesAndColumns(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("trips"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("cities").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("cities"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("cities", "sort_order").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE cities ADD COLUMN sort_order").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("activities").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS activities").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasColumn(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.columns").WithArgs("cities", "pos_x").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("pos_x"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("cities", "rotation").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	assert.True(t, HasColumn(context.Background(), conn, "cities", "pos_x"))
	assert.False(t, HasColumn(context.Background(), conn, "cities", "rotation"))
}
