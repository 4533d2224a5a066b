package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/domain/models"
)

func TestBuild_BucketsAndPlacement(t *testing.T) {
	c := models.City{
		ID:        "c1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
		Activities: []models.Activity{
			{ID: "a1", Name: "Museum", Color: "#F4D03F", StartTime: "09:00", EndTime: "11:00", Date: "2024-01-02"},
		},
	}

	days, err := Build(c)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"Jan 1", "Jan 2", "Jan 3"}, []string{days[0].Label, days[1].Label, days[2].Label})
	assert.Equal(t, "2024-01-02", days[1].Date)

	assert.Empty(t, days[0].Blocks)
	assert.Empty(t, days[2].Blocks)
	require.Len(t, days[1].Blocks, 1)

	b := days[1].Blocks[0]
	assert.Equal(t, "a1", b.ActivityID)
	assert.InDelta(t, 37.5, b.LeftPct, 1e-9)
	assert.InDelta(t, 8.33, b.WidthPct, 0.005)
	assert.Equal(t, "Museum 09:00 - 11:00", b.Text)
}

func TestBuild_OverlapsAreKeptAsIs(t *testing.T) {
	c := models.City{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
		Activities: []models.Activity{
			{ID: "a", StartTime: "10:00", EndTime: "12:00", Date: "2024-01-01"},
			{ID: "b", StartTime: "10:00", EndTime: "12:00", Date: "2024-01-01"},
		},
	}
	days, err := Build(c)
	require.NoError(t, err)
	require.Len(t, days[0].Blocks, 2)
	assert.Equal(t, days[0].Blocks[0].LeftPct, days[0].Blocks[1].LeftPct)
}

func TestBuild_ExactDateMatchOnly(t *testing.T) {
	c := models.City{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
		Activities: []models.Activity{
			{ID: "a", StartTime: "10:00", EndTime: "11:00", Date: "2024-01-01T00:00:00.000Z"},
			{ID: "b", StartTime: "bad", EndTime: "11:00", Date: "2024-01-01"},
		},
	}
	days, err := Build(c)
	require.NoError(t, err)
	assert.Empty(t, days[0].Blocks)
}

func TestBuild_CrossesMonthAndReversedRange(t *testing.T) {
	days, err := Build(models.City{StartDate: "2024-02-28", EndDate: "2024-03-01"})
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2024-02-29", days[1].Date)

	days, err = Build(models.City{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestBuild_InvalidDate(t *testing.T) {
	_, err := Build(models.City{ID: "x", StartDate: "soon", EndDate: "2024-01-01"})
	assert.Error(t, err)
}

func TestPlace_FullDay(t *testing.T) {
	b, ok := Place(models.Activity{StartTime: "00:00", EndTime: "24:00"})
	require.True(t, ok)
	assert.Equal(t, 0.0, b.LeftPct)
	assert.Equal(t, 100.0, b.WidthPct)
}

func TestBuild_CapsDaySpan(t *testing.T) {
	_, err := Build(models.City{ID: "x", StartDate: "0001-01-01", EndDate: "9999-12-31"})
	assert.ErrorIs(t, err, ErrTooManyDays)

	days, err := Build(models.City{StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.NoError(t, err)
	assert.Len(t, days, MaxDays)

	_, err = Build(models.City{StartDate: "2024-01-01", EndDate: "2025-01-01"})
	assert.ErrorIs(t, err, ErrTooManyDays)
}

func TestPlace_RejectsPastMidnight(t *testing.T) {
	_, ok := Place(models.Activity{StartTime: "24:30", EndTime: "24:45"})
	assert.False(t, ok)
}
