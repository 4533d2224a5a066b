package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/domain/models"
)

func TestCityDocumentCarriesSortOrderAndPosition(t *testing.T) {
	c := newCityRecord("c1", "t1", models.NewCity{Name: "Oslo", StartDate: "2024-06-01", EndDate: "2024-06-03"})
	doc := cityDocument(c, 4)

	assert.Equal(t, "c1", doc["_id"])
	assert.Equal(t, "t1", doc["trip_id"])
	assert.Equal(t, 4, doc["sort_order"])
	assert.Equal(t, "flight", doc["transport"], "transport should default to flight")
	x, ok := doc["pos_x"].(*int)
	require.True(t, ok, "pos_x = %v", doc["pos_x"])
	assert.Equal(t, models.DefaultPosX, *x)
}

func TestActivityDocumentAppliesDefaults(t *testing.T) {
	a := newActivityRecord("a1", models.NewActivity{CityID: "c1", Name: "Fjord", StartTime: "08:00", EndTime: "12:00", Date: "2024-06-02"})
	doc := activityDocument(a, 0)

	assert.Equal(t, "other", doc["type"])
	assert.Equal(t, "#F4D03F", doc["color"])
	assert.Equal(t, "", doc["notes"])
	assert.Equal(t, []string{"x", "y"}, cityIDs([]models.City{{ID: "x"}, {ID: "y"}}))
}
