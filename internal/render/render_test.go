package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/client"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/layout"
)

func sampleState() client.State {
	return client.State{}.WithTrips([]models.Trip{
		{ID: "t1", Name: "", Cities: []models.City{
			{ID: "c1", TripID: "t1", Name: "Lisbon", Transport: "flight", StartDate: "2024-06-01", EndDate: "2024-06-02",
				PosX: models.IntPtr(100), PosY: models.IntPtr(300),
				Activities: []models.Activity{{ID: "a1", CityID: "c1", Name: "Tram 28", StartTime: "09:00", EndTime: "11:00", Date: "2024-06-02"}}},
			{ID: "c2", TripID: "t1", Name: "Porto & <Douro>", Transport: "train", StartDate: "2024-06-03", EndDate: "2024-06-04",
				PosX: models.IntPtr(350), PosY: models.IntPtr(350)},
		}},
		{ID: "t2", Name: "Weekend"},
	})
}

func TestBuild_TripsView(t *testing.T) {
	f := Build(sampleState())
	assert.Equal(t, client.ViewTrips, f.View)
	require.Len(t, f.TripCards, 2)
	assert.Equal(t, TripCard{TripID: "t1", Title: "New Trip", Cities: 2}, f.TripCards[0])
	assert.Equal(t, "Weekend", f.TripCards[1].Title)
	assert.Equal(t, "Add trip +", f.AddTrip)
	assert.Nil(t, f.Canvas)
}

func TestBuild_CanvasViewIsIdempotent(t *testing.T) {
	st := sampleState().SelectTrip("t1")
	a, b := Build(st), Build(st)
	assert.Equal(t, a, b)

	require.NotNil(t, a.Canvas)
	require.Len(t, a.Canvas.Connectors, 1)
	assert.Equal(t, layout.Point{X: 335, Y: 332.5}, a.Canvas.Connectors[0].Mid)
}

func TestBuild_TimelineView(t *testing.T) {
	f := Build(sampleState().SelectTrip("t1").SelectCity("c1"))
	assert.Equal(t, client.ViewTimeline, f.View)
	assert.Equal(t, "New Trip / Lisbon", f.Title)
	require.Len(t, f.Days, 2)
	require.Len(t, f.Days[1].Blocks, 1)
	assert.InDelta(t, 37.5, f.Days[1].Blocks[0].LeftPct, 1e-9)
}

func TestBuild_TimelineBadDates(t *testing.T) {
	st := client.State{}.WithTrips([]models.Trip{{ID: "t", Cities: []models.City{{ID: "c", TripID: "t", StartDate: "?", EndDate: "?"}}}})
	f := Build(st.SelectTrip("t").SelectCity("c"))
	assert.NotEmpty(t, f.TimelineError)
	assert.Empty(t, f.Days)
}

func TestWriteCanvasSVG(t *testing.T) {
	f := Build(sampleState().SelectTrip("t1"))
	var buf bytes.Buffer
	require.NoError(t, WriteCanvasSVG(&buf, *f.Canvas))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `d="M 210 350 Q 335 290 460 400"`)
	assert.Contains(t, out, `data-icon="train"`)
	assert.Contains(t, out, "Porto &amp; &lt;Douro&gt;")
	assert.Equal(t, 2, strings.Count(out, `class="city-tab"`))
	assert.Contains(t, out, "Add city")
}

func TestWriteCanvasSVG_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCanvasSVG(&buf, layout.Canvas(nil)))
	assert.NotContains(t, buf.String(), "connector")
	assert.Contains(t, buf.String(), `class="add-city"`)
}
