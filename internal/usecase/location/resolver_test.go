//go:build unit

package location_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleet-console/internal/domain/request"
	sharedmock "fleet-console/internal/mock/shared"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/logger"
	"fleet-console/internal/usecase/draftstore"
	"fleet-console/internal/usecase/location"
	"fleet-console/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	clock     *clock.MockClock
	store     *draftstore.Store
	places    *sharedmock.MockPlaceProvider
	directory *sharedmock.MockDirectory
	resolver  *location.Resolver
}

func newFixture(t *testing.T, kind request.ServiceKind, debounce time.Duration) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	store, err := draftstore.New(kind, clk)
	require.NoError(t, err)

	cfg := config.NewTestConfig().Composer
	cfg.PredictionDebounce = debounce

	f := &fixture{
		clock:     clk,
		store:     store,
		places:    sharedmock.NewMockPlaceProvider(ctrl),
		directory: sharedmock.NewMockDirectory(ctrl),
	}
	f.resolver = location.NewResolver(store, f.places, f.directory, clk, cfg, logger.Discard())
	return f
}

func TestSearchPredictions(t *testing.T) {
	t.Run("only the last query within the debounce window reaches the provider", func(t *testing.T) {
		f := newFixture(t, request.KindTowing, 200*time.Millisecond)
		f.places.EXPECT().Autocomplete(gomock.Any(), "Lekki Phase 1").
			Return([]request.Prediction{{PlaceID: "p1", Description: "Lekki Phase 1, Lagos"}}, nil).
			Times(1)

		var wg sync.WaitGroup
		results := make([]bool, 2)
		for i, q := range []string{"Lekki", "Lekki Phase 1"} {
			wg.Add(1)
			go func(i int, q string) {
				defer wg.Done()
				applied, err := f.resolver.SearchPredictions(context.Background(), request.FieldPickup, q)
				assert.NoError(t, err)
				results[i] = applied
			}(i, q)
			f.clock.BlockUntil(i + 1)
		}
		f.clock.Add(200 * time.Millisecond)
		wg.Wait()

		assert.Equal(t, []bool{false, true}, results)
		assert.Equal(t, "Lekki Phase 1, Lagos", f.store.Predictions(request.FieldPickup)[0].Description)
		assert.Empty(t, f.store.Predictions(request.FieldDropoff))
	})

	t.Run("empty query clears without a provider call", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		f.store.SetPredictions(request.FieldLocation, []request.Prediction{{Description: "stale"}})

		applied, err := f.resolver.SearchPredictions(context.Background(), request.FieldLocation, "   ")
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Empty(t, f.store.Predictions(request.FieldLocation))
	})

	t.Run("provider failure becomes a field error and a notice", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		f.places.EXPECT().Autocomplete(gomock.Any(), "Ikeja").Return(nil, errors.New("quota exceeded"))

		applied, err := f.resolver.SearchPredictions(context.Background(), request.FieldLocation, "Ikeja")
		require.NoError(t, err)
		assert.False(t, applied)
		assert.True(t, f.store.FieldErrors().Has(request.KeyLocation))
		assert.Len(t, f.store.Notices(), 1)
	})

	t.Run("cancelled while debouncing", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		applied, err := f.resolver.SearchPredictions(ctx, request.FieldLocation, "Ikeja")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, applied)
	})

	t.Run("unknown field", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		_, err := f.resolver.SearchPredictions(context.Background(), "waypoint", "x")
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestResolve(t *testing.T) {
	t.Run("a slow earlier geocode never overwrites a later one", func(t *testing.T) {
		f := newFixture(t, request.KindTowing, 0)

		started := make(chan struct{})
		release := make(chan struct{})
		f.places.EXPECT().Geocode(gomock.Any(), "Old Road").
			DoAndReturn(func(context.Context, string) (request.Coordinates, error) {
				close(started)
				<-release
				return request.Coordinates{Latitude: 1, Longitude: 1}, nil
			})
		f.places.EXPECT().Geocode(gomock.Any(), "New Road").
			Return(request.Coordinates{Latitude: 2, Longitude: 2}, nil)

		var slow location.Resolution
		done := make(chan struct{})
		go func() {
			defer close(done)
			res, err := f.resolver.Resolve(context.Background(), request.FieldDropoff, location.DescriptionSelection("Old Road"))
			assert.NoError(t, err)
			slow = res
		}()
		<-started

		fast, err := f.resolver.Resolve(context.Background(), request.FieldDropoff, location.DescriptionSelection("New Road"))
		require.NoError(t, err)
		assert.True(t, fast.Applied)

		close(release)
		<-done
		assert.False(t, slow.Applied)

		got, ok := f.store.Location(request.FieldDropoff).(request.ManualLocation)
		require.True(t, ok)
		assert.Equal(t, "New Road", got.Address)
		assert.Equal(t, 2.0, got.Coordinates.Latitude)
	})

	t.Run("saved locations bypass geocoding and load the directory once", func(t *testing.T) {
		f := newFixture(t, request.KindTowing, 0)
		coords := request.Coordinates{Latitude: 6.45, Longitude: 3.39}
		f.directory.EXPECT().ListSavedLocations(gomock.Any()).
			Return([]shared.SavedLocationSnapshot{
				{ID: "L1", Name: "Depot", Coordinates: &coords},
				{ID: "L2", Name: "Annex"},
			}, nil).
			Times(1)

		res, err := f.resolver.Resolve(context.Background(), request.FieldPickup, location.SavedSelection("L1"))
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, request.SavedLocation{ID: "L1"}, res.Location)
		assert.Equal(t, &coords, res.Coordinates)

		res, err = f.resolver.Resolve(context.Background(), request.FieldDropoff, location.SavedSelection("L2"))
		require.NoError(t, err)
		assert.True(t, res.Applied)

		names := []string{}
		for _, s := range f.resolver.SavedLocations() {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"Annex", "Depot"}, names)
	})

	t.Run("unknown saved id sets a field error", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		f.directory.EXPECT().ListSavedLocations(gomock.Any()).Return(nil, nil)

		res, err := f.resolver.Resolve(context.Background(), request.FieldLocation, location.SavedSelection("L9"))
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.True(t, f.store.FieldErrors().Has(request.KeyLocation))
	})

	t.Run("geocode failure keeps the previous location", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		require.NoError(t, f.store.SetLocation(request.FieldLocation, request.SavedLocation{ID: "L1"}))
		f.places.EXPECT().Geocode(gomock.Any(), "Nowhere").Return(request.Coordinates{}, errors.New("ZERO_RESULTS"))

		res, err := f.resolver.Resolve(context.Background(), request.FieldLocation, location.DescriptionSelection("Nowhere"))
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, request.SavedLocation{ID: "L1"}, f.store.Location(request.FieldLocation))
		assert.True(t, f.store.FieldErrors().Has(request.KeyLocation))
		assert.NotEmpty(t, f.store.Notices())
	})

	t.Run("typing discards an in-flight geocode", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		started := make(chan struct{})
		release := make(chan struct{})
		f.places.EXPECT().Geocode(gomock.Any(), "Victoria Island").
			DoAndReturn(func(context.Context, string) (request.Coordinates, error) {
				close(started)
				<-release
				return request.Coordinates{Latitude: 6.42, Longitude: 3.42}, nil
			})

		done := make(chan location.Resolution)
		go func() {
			res, _ := f.resolver.Resolve(context.Background(), request.FieldLocation, location.DescriptionSelection("Victoria Island"))
			done <- res
		}()
		<-started
		require.NoError(t, f.resolver.SetManualAddress(request.FieldLocation, "Victoria Island, Plot 5"))
		close(release)

		assert.False(t, (<-done).Applied)
		got := f.store.Location(request.FieldLocation).(request.ManualLocation)
		assert.Equal(t, "Victoria Island, Plot 5", got.Address)
		assert.False(t, got.Resolved())
	})

	t.Run("empty selection", func(t *testing.T) {
		f := newFixture(t, request.KindFuel, 0)
		_, err := f.resolver.Resolve(context.Background(), request.FieldLocation, location.Selection{})
		assert.ErrorIs(t, err, location.ErrEmptySelection)
	})
}

func TestLoadSavedLocations(t *testing.T) {
	f := newFixture(t, request.KindFuel, 0)
	f.directory.EXPECT().ListSavedLocations(gomock.Any()).Return(nil, errors.New("502 bad gateway"))

	assert.Nil(t, f.resolver.LoadSavedLocations(context.Background()))
	require.Len(t, f.store.Notices(), 1)
	assert.Equal(t, request.KeyLocation, f.store.Notices()[0].Field)
}
