//go:build unit

package draftstore_test

import (
	"testing"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/usecase/draftstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, kind request.ServiceKind) *draftstore.Store {
	t.Helper()
	s, err := draftstore.New(kind, clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newStore(t, request.KindFuel)
	d := s.Snapshot()
	assert.Equal(t, request.KindFuel, d.Kind)
	assert.True(t, d.Slot.IsImmediate())
	assert.Zero(t, d.Fuel.Quantity)

	_, err := draftstore.New("delivery", clock.NewRealClock())
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestSnapshotIsolation(t *testing.T) {
	s := newStore(t, request.KindFuel)
	s.SelectAssets([]string{"A1"})

	snap := s.Snapshot()
	snap.Assets = snap.Assets.Toggle("A2")
	snap.Note = "changed"

	d := s.Snapshot()
	assert.Equal(t, []string{"A1"}, d.Assets.IDs())
	assert.Empty(t, d.Note)
}

func TestSettersClearFieldErrors(t *testing.T) {
	s := newStore(t, request.KindFuel)
	s.ReplaceFieldErrors(request.FieldErrors{
		request.KeyAssets:   "select at least one asset",
		request.KeyLocation: "location is required",
		request.KeyQuantity: "out of range",
	})

	s.ToggleAsset("A1")
	require.NoError(t, s.SetLocation(request.FieldLocation, request.SavedLocation{ID: "L1"}))

	fe := s.FieldErrors()
	assert.False(t, fe.Has(request.KeyAssets))
	assert.False(t, fe.Has(request.KeyLocation))
	assert.True(t, fe.Has(request.KeyQuantity))
}

func TestSetLocationUnknownField(t *testing.T) {
	s := newStore(t, request.KindFuel)
	err := s.SetLocation("waypoint", request.SavedLocation{ID: "L1"})
	assert.ErrorIs(t, err, draftstore.ErrUnknownLocationField)
}

func TestFuelTypeChangeClearsAmount(t *testing.T) {
	s := newStore(t, request.KindFuel)
	s.SetFuelType(request.FuelDiesel)
	s.SetAmount(decimal.NewFromInt(10000))
	est := 11
	s.SetQuantityEstimate(&est)

	s.SetFuelType(request.FuelDiesel)
	assert.True(t, s.Snapshot().Fuel.Amount.Equal(decimal.NewFromInt(10000)), "same type keeps the amount")

	s.SetFuelType(request.FuelPetrol)
	d := s.Snapshot()
	assert.True(t, d.Fuel.Amount.IsZero())
	assert.Nil(t, d.Fuel.QuantityEstimate)
}

func TestApply(t *testing.T) {
	s := newStore(t, request.KindFuel)
	s.SetQuantity(40)
	s.SetFieldError(request.KeyQuantity, "too low")

	kind := request.KindTowing
	ids := []string{"A2", "A1"}
	method := request.TowingWheelLift
	note := "gate code 1234"
	require.NoError(t, s.Apply(draftstore.Patch{
		Kind:         &kind,
		AssetIDs:     &ids,
		TowingMethod: &method,
		Note:         &note,
	}))

	d := s.Snapshot()
	assert.Equal(t, request.KindTowing, d.Kind)
	assert.Equal(t, []string{"A1", "A2"}, d.Assets.IDs())
	assert.Equal(t, request.TowingWheelLift, d.TowingMethod)
	assert.Equal(t, note, d.Note)
	assert.Zero(t, d.Fuel.Quantity, "fuel fields do not survive a kind switch")
	assert.True(t, s.FieldErrors().IsEmpty())

	bad := request.ServiceKind("delivery")
	err := s.Apply(draftstore.Patch{Kind: &bad})
	assert.True(t, errs.Is(err, errs.ErrValidation))
	assert.Equal(t, request.KindTowing, s.Kind())
}

func TestPredictionsAndNotices(t *testing.T) {
	s := newStore(t, request.KindTowing)
	s.SetPredictions(request.FieldPickup, []request.Prediction{{PlaceID: "p1", Description: "Ikeja"}})
	assert.Len(t, s.Predictions(request.FieldPickup), 1)
	assert.Empty(t, s.Predictions(request.FieldDropoff))

	s.SetPredictions(request.FieldPickup, nil)
	assert.Empty(t, s.Predictions(request.FieldPickup))

	for i := 0; i < 25; i++ {
		s.Notify(request.KeyPickup, "lookup failed")
	}
	assert.Len(t, s.Notices(), 20)
	assert.Len(t, s.DrainNotices(), 20)
	assert.Empty(t, s.Notices())
}

func TestReset(t *testing.T) {
	s := newStore(t, request.KindFuel)
	s.SelectAssets([]string{"A1"})
	s.SetFieldError(request.KeyQuantity, "x")
	s.Notify(request.KeyQuantity, "y")

	require.NoError(t, s.Reset(request.KindEmergency))
	d := s.Snapshot()
	assert.Equal(t, request.KindEmergency, d.Kind)
	assert.True(t, d.Assets.IsEmpty())
	assert.True(t, s.FieldErrors().IsEmpty())
	assert.Empty(t, s.Notices())
}
