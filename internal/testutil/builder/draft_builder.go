//go:build unit

package builder

import (
	"time"

	"fleet-console/internal/domain/request"

	"github.com/shopspring/decimal"
)

type DraftBuilder struct {
	Kind            request.ServiceKind
	AssetIDs        []string
	Location        request.LocationSpec
	Pickup          request.LocationSpec
	Dropoff         request.LocationSpec
	Slot            request.TimeSlot
	Note            string
	FuelType        request.FuelType
	Quantity        int
	Amount          decimal.Decimal
	MaintenanceType string
	EmergencyType   string
	TowingMethod    request.TowingMethod
}

// NewFuelDraftBuilder starts from a draft that passes validation: one asset,
// saved location, immediate delivery of 50 litres of petrol.
func NewFuelDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		Kind:     request.KindFuel,
		AssetIDs: []string{"A1"},
		Location: request.SavedLocation{ID: "L1"},
		Slot:     request.Immediate(),
		FuelType: request.FuelPetrol,
		Quantity: 50,
	}
}

func NewMaintenanceDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		Kind:            request.KindMaintenance,
		AssetIDs:        []string{"A1"},
		Location:        request.NewManualLocation("14 Admiralty Way, Lekki"),
		Slot:            request.Immediate(),
		MaintenanceType: "OIL_CHANGE",
	}
}

func NewTowingDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		Kind:         request.KindTowing,
		AssetIDs:     []string{"A1"},
		Pickup:       request.NewResolvedLocation("Depot 1, Ikeja", request.Coordinates{Latitude: 6.6018, Longitude: 3.3515}),
		Dropoff:      request.NewResolvedLocation("Workshop, Yaba", request.Coordinates{Latitude: 6.5095, Longitude: 3.3711}),
		Slot:         request.Immediate(),
		TowingMethod: request.TowingFlatbed,
	}
}

func (b *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(b)
	return b
}

func (b *DraftBuilder) WithScheduled(at time.Time) *DraftBuilder {
	b.Slot = request.Scheduled(at)
	return b
}

func (b *DraftBuilder) BuildDomain() *request.Draft {
	d := request.NewDraft(b.Kind)
	d.Assets = request.NewAssetSelection(b.AssetIDs...)
	d.Location = b.Location
	d.Pickup = b.Pickup
	d.Dropoff = b.Dropoff
	d.Slot = b.Slot
	d.Note = b.Note
	d.Fuel = request.FuelDetails{Type: b.FuelType, Quantity: b.Quantity, Amount: b.Amount}
	d.MaintenanceType = b.MaintenanceType
	d.EmergencyType = b.EmergencyType
	d.TowingMethod = b.TowingMethod
	return d
}
