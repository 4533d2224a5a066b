package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/client"
	intconfig "tripplanner/internal/config"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/dragdrop"
	api "tripplanner/internal/http"
	"tripplanner/internal/layout"
	"tripplanner/internal/repositories"
)

func newSession(t *testing.T) (*client.Session, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(api.NewRouter(intconfig.Env{}, repositories.NewMemoryStore()))
	t.Cleanup(srv.Close)
	return client.NewSession(client.New(srv.URL + "/api")), srv
}

func twoCityTrip() models.NewTrip {
	trip, _ := client.DraftTrip("Iberia", []models.NewCity{
		{Name: "Madrid", Transport: "train", StartDate: "2024-09-01", EndDate: "2024-09-03"},
		{Name: "Seville", Transport: "bus", StartDate: "2024-09-03", EndDate: "2024-09-05"},
	})
	return trip
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	created, err := s.SaveTrip(ctx, twoCityTrip())
	require.NoError(t, err)
	require.Len(t, s.State().Trips, 1)

	fresh := client.NewSession(s.API)
	st, err := fresh.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Trips, 1)

	got := st.Trips[0]
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Cities, 2)
	for i, want := range twoCityTrip().Cities {
		assert.Equal(t, want.Name, got.Cities[i].Name)
		assert.Equal(t, want.Transport, got.Cities[i].Transport)
		assert.Equal(t, want.StartDate, got.Cities[i].StartDate)
		assert.Equal(t, want.EndDate, got.Cities[i].EndDate)
	}
	assert.Equal(t, 350, *got.Cities[1].PosX)
	assert.Equal(t, 350, *got.Cities[1].PosY)
}

func TestSession_DeleteTripCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	trip, err := s.SaveTrip(ctx, twoCityTrip())
	require.NoError(t, err)
	s.SelectTrip(trip.ID)
	s.SelectCity(trip.Cities[0].ID)

	act, err := s.SaveActivity(ctx, models.NewActivity{
		CityID: trip.Cities[0].ID, Name: "Prado", StartTime: "10:00", EndTime: "13:00", Date: "2024-09-02",
	})
	require.NoError(t, err)
	city, _ := s.State().CurrentCity()
	require.Len(t, city.Activities, 1)

	require.NoError(t, s.DeleteTrip(ctx, trip.ID))
	st := s.State()
	assert.Empty(t, st.Trips)
	assert.Equal(t, client.ViewTrips, st.View())

	st, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Trips)

	err = s.API.DeleteActivity(ctx, act.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "activity not found", apiErr.Message)
}

func TestSession_ValidationNeverReachesServer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	s := client.NewSession(client.New(srv.URL))
	ctx := context.Background()

	_, err := s.SaveCity(ctx, models.NewCity{TripID: "t", Name: "Oslo", StartDate: "2024-01-01"})
	assert.True(t, domain.IsValidation(err))
	_, err = s.SaveActivity(ctx, models.NewActivity{CityID: "c", StartTime: "09:00"})
	assert.True(t, domain.IsValidation(err))
	_, err = s.SaveTrip(ctx, models.NewTrip{})
	assert.True(t, domain.IsValidation(err))
	_, err = s.UpdateActivity(ctx, "a", models.ActivityFields{})
	assert.True(t, domain.IsValidation(err))

	assert.Zero(t, hits.Load())
}

func TestSession_LoadFallsBackToEmptyOnTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := client.New(srv.URL)
	c.ListTimeout = 50 * time.Millisecond
	s := client.NewSession(c)

	start := time.Now()
	st, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.NotNil(t, st.Trips)
	assert.Empty(t, st.Trips)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSession_FailedMutationLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	trip, err := s.SaveTrip(ctx, twoCityTrip())
	require.NoError(t, err)

	before := s.State()
	err = s.DeleteCity(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, before, s.State())
	assert.Len(t, s.State().Trips[0].Cities, len(trip.Cities))
}

func TestSession_DuplicateSubmitSharesRequest(t *testing.T) {
	var creates atomic.Int32
	gate := make(chan struct{})
	inner := api.NewRouter(intconfig.Env{}, repositories.NewMemoryStore())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/trips" {
			creates.Add(1)
			<-gate
		}
		inner.ServeHTTP(w, r)
	}))
	defer srv.Close()

	s := client.NewSession(client.New(srv.URL + "/api"))
	in := twoCityTrip()

	var wg sync.WaitGroup
	results := make([]models.Trip, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.SaveTrip(context.Background(), in)
		}(i)
	}
	require.Eventually(t, func() bool { return creates.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), creates.Load())
	assert.Equal(t, results[0].ID, results[1].ID)
	assert.Len(t, s.State().Trips, 1)
}

func TestSession_DistinctPayloadsAreSentSeparately(t *testing.T) {
	var patches atomic.Int32
	gate := make(chan struct{})
	inner := api.NewRouter(intconfig.Env{}, repositories.NewMemoryStore())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patches.Add(1)
			<-gate
		}
		inner.ServeHTTP(w, r)
	}))
	defer srv.Close()

	s := client.NewSession(client.New(srv.URL + "/api"))
	trip, err := s.SaveTrip(context.Background(), twoCityTrip())
	require.NoError(t, err)
	cityID := trip.Cities[0].ID

	xs := []int{10, 500}
	results := make([]models.City, len(xs))
	var wg sync.WaitGroup
	for i, x := range xs {
		wg.Add(1)
		go func(i, x int) {
			defer wg.Done()
			results[i], _ = s.MoveCity(context.Background(), cityID, models.Position{X: models.IntPtr(x), Y: models.IntPtr(300)})
		}(i, x)
	}
	require.Eventually(t, func() bool { return patches.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(2), patches.Load())
	require.NotNil(t, results[0].PosX)
	require.NotNil(t, results[1].PosX)
	assert.Equal(t, 10, *results[0].PosX)
	assert.Equal(t, 500, *results[1].PosX)
}

func TestSession_SaveCityPlacesAfterLastCity(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	trip, err := s.SaveTrip(ctx, twoCityTrip())
	require.NoError(t, err)

	city, err := s.SaveCity(ctx, models.NewCity{TripID: trip.ID, Name: "Lisbon", StartDate: "2024-09-05", EndDate: "2024-09-07"})
	require.NoError(t, err)
	assert.Equal(t, 650, *city.PosX)
	assert.Equal(t, 400, *city.PosY)

	explicit, err := s.SaveCity(ctx, models.NewCity{
		TripID: trip.ID, Name: "Porto", StartDate: "2024-09-07", EndDate: "2024-09-08",
		Position: &models.Position{X: models.IntPtr(5), Y: models.IntPtr(6)},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, *explicit.PosX)
	assert.Equal(t, 6, *explicit.PosY)
}

func TestNextCityPosition(t *testing.T) {
	pos := client.NextCityPosition(models.Trip{})
	assert.Equal(t, models.DefaultPosX, *pos.X)
	assert.Equal(t, models.DefaultPosY, *pos.Y)

	placed := models.Trip{Cities: []models.City{{PosX: models.IntPtr(40), PosY: models.IntPtr(70)}}}
	pos = client.NextCityPosition(placed)
	assert.Equal(t, 340, *pos.X)
	assert.Equal(t, 120, *pos.Y)

	// an unplaced last city counts from its default slot
	unplaced := models.Trip{Cities: []models.City{{}, {}}}
	pos = client.NextCityPosition(unplaced)
	assert.Equal(t, 650, *pos.X)
	assert.Equal(t, 400, *pos.Y)

	in := client.DraftCity(models.Trip{ID: "t1"}, models.NewCity{Name: "Oslo", Transport: "Train"})
	assert.Equal(t, "t1", in.TripID)
	assert.Equal(t, models.TransportTrain, in.Transport)
	assert.Equal(t, 100, *in.Position.X)
}

func TestSession_ApplyDrop(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	trip, err := s.SaveTrip(ctx, twoCityTrip())
	require.NoError(t, err)
	s.SelectTrip(trip.ID)

	trash := dragdrop.Rect{Left: 900, Top: 600, Right: 1000, Bottom: 700}
	origin := layout.Point{X: 20, Y: 80}
	m := dragdrop.NewMachine(trash)

	// released 1px outside the trash: the city moves
	require.NoError(t, m.Start(dragdrop.Entity{Kind: dragdrop.KindCity, ID: trip.Cities[0].ID}))
	out, err := m.End(layout.Point{X: 1001, Y: 650}, origin)
	require.NoError(t, err)
	require.NoError(t, s.ApplyDrop(ctx, out, nil))
	cur, _ := s.State().CurrentTrip()
	assert.Equal(t, 1001-20-100, *cur.Cities[0].PosX)
	assert.Equal(t, 650-80-40, *cur.Cities[0].PosY)
	assert.Equal(t, "Madrid", cur.Cities[0].Name)

	// declined confirmation keeps the city
	require.NoError(t, m.Start(dragdrop.Entity{Kind: dragdrop.KindCity, ID: trip.Cities[0].ID}))
	out, _ = m.End(layout.Point{X: 950, Y: 650}, origin)
	var asked string
	require.NoError(t, s.ApplyDrop(ctx, out, func(p string) bool { asked = p; return false }))
	assert.Equal(t, "Are you sure you want to delete this city?", asked)
	cur, _ = s.State().CurrentTrip()
	assert.Len(t, cur.Cities, 2)

	// confirmed: the city is deleted on the server and in the cache
	require.NoError(t, s.ApplyDrop(ctx, out, func(string) bool { return true }))
	cur, _ = s.State().CurrentTrip()
	require.Len(t, cur.Cities, 1)
	assert.Equal(t, "Seville", cur.Cities[0].Name)

	remote, err := s.API.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, remote.Cities, 1)
}

func TestDraftTrip(t *testing.T) {
	trip, err := client.DraftTrip("  ", []models.NewCity{
		{Name: "A", StartDate: "2024-01-01", EndDate: "2024-01-02"},
		{Name: "incomplete", StartDate: "2024-01-02"},
		{Name: "C", Transport: "Ferry", StartDate: "2024-01-03", EndDate: "2024-01-04"},
	})
	require.NoError(t, err)
	assert.Equal(t, client.DefaultTripName, trip.Name)
	require.Len(t, trip.Cities, 2)
	assert.Equal(t, models.TransportFlight, trip.Cities[0].Transport)
	assert.Equal(t, models.TransportFerry, trip.Cities[1].Transport)
	assert.Equal(t, 600, *trip.Cities[1].Position.X)
	assert.Equal(t, 400, *trip.Cities[1].Position.Y)

	_, err = client.DraftTrip("x", []models.NewCity{{Name: "only name"}})
	assert.True(t, domain.IsValidation(err))
}
