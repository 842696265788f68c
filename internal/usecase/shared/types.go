package shared

import (
	"reflect"
	"time"

	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetSnapshot struct {
	ID           string
	Name         string
	PlateNumber  string
	FuelType     request.FuelType
	TankCapacity int
}

type SavedLocationSnapshot struct {
	ID          string
	Name        string
	Address     string
	Coordinates *request.Coordinates
}

type FuelQuote struct {
	UnitPrices pricing.UnitPrices
	Litres     decimal.Decimal
}

// UnitPrice returns the per-litre price of fuelType, or false when the quote
// carries none.
func (q FuelQuote) UnitPrice(fuelType request.FuelType) (decimal.Decimal, bool) {
	var p decimal.Decimal
	switch fuelType {
	case request.FuelPetrol:
		p = q.UnitPrices.Petrol
	case request.FuelDiesel:
		p = q.UnitPrices.Diesel
	}
	if !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}

// ServiceOrder is the validated, backend-facing payload of a draft.
type ServiceOrder struct {
	Kind            request.ServiceKind
	AssetIDs        []string
	Location        request.LocationSpec
	Pickup          request.LocationSpec
	Dropoff         request.LocationSpec
	Slot            request.TimeSlot
	Note            string
	FuelType        request.FuelType
	Quantity        int
	MaintenanceType string
	EmergencyType   string
	TowingMethod    request.TowingMethod
	// IdempotencyKey is sent on place so a retried request is not booked twice.
	IdempotencyKey uuid.UUID
}

// SamePricing reports whether o and other would be priced identically. The
// note and idempotency key are ignored.
func (o ServiceOrder) SamePricing(other ServiceOrder) bool {
	o.Note, other.Note = "", ""
	o.IdempotencyKey, other.IdempotencyKey = uuid.Nil, uuid.Nil
	return reflect.DeepEqual(o, other)
}

// OrderFromDraft flattens d into the payload sent to the backend.
func OrderFromDraft(d *request.Draft) ServiceOrder {
	return ServiceOrder{
		Kind:            d.Kind,
		AssetIDs:        d.Assets.IDs(),
		Location:        d.Location,
		Pickup:          d.Pickup,
		Dropoff:         d.Dropoff,
		Slot:            d.Slot,
		Note:            d.TrimmedNote(),
		FuelType:        d.Fuel.Type,
		Quantity:        d.Fuel.Quantity,
		MaintenanceType: d.MaintenanceType,
		EmergencyType:   d.EmergencyType,
		TowingMethod:    d.TowingMethod,
	}
}

type PlacedOrder struct {
	OrderID   string
	Breakdown *pricing.Breakdown
}

type EstimateInput struct {
	AssetCount   int
	BillingCycle subscription.BillingCycle
	Category     subscription.Category
}

type AssignmentInit struct {
	Plan         subscription.PlanRef
	BillingCycle subscription.BillingCycle
	StartsAt     time.Time
}

type PaymentAuthorization struct {
	AuthorizationURL string
	Reference        string
}

type AssignmentVerify struct {
	PlanID       string
	PaymentRef   string
	StartDate    time.Time
	BillingCycle subscription.BillingCycle
}
