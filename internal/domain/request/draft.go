package request

import (
	"strings"

	"github.com/shopspring/decimal"
)

type FuelDetails struct {
	Type FuelType
	// Quantity is the authoritative whole-litre quantity.
	Quantity int
	Amount   decimal.Decimal
	// QuantityEstimate is the local amount-to-litres estimate shown while the
	// backend conversion is pending. Nil when no estimate is available.
	QuantityEstimate *int
}

// Draft is the in-progress representation of one service request.
type Draft struct {
	Kind            ServiceKind
	Assets          AssetSelection
	Location        LocationSpec
	Pickup          LocationSpec
	Dropoff         LocationSpec
	Slot            TimeSlot
	Note            string
	Fuel            FuelDetails
	MaintenanceType string
	EmergencyType   string
	TowingMethod    TowingMethod
}

// NewDraft returns the defaults a composer opens with.
func NewDraft(kind ServiceKind) *Draft {
	return &Draft{
		Kind:   kind,
		Assets: NewAssetSelection(),
		Slot:   Immediate(),
	}
}

func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	c := *d
	c.Assets = d.Assets.Clone()
	c.Location = cloneLocation(d.Location)
	c.Pickup = cloneLocation(d.Pickup)
	c.Dropoff = cloneLocation(d.Dropoff)
	if d.Fuel.QuantityEstimate != nil {
		est := *d.Fuel.QuantityEstimate
		c.Fuel.QuantityEstimate = &est
	}
	return &c
}

func (d *Draft) LocationFor(field LocationField) LocationSpec {
	switch field {
	case FieldPickup:
		return d.Pickup
	case FieldDropoff:
		return d.Dropoff
	default:
		return d.Location
	}
}

func (d *Draft) SetLocationFor(field LocationField, spec LocationSpec) {
	switch field {
	case FieldPickup:
		d.Pickup = spec
	case FieldDropoff:
		d.Dropoff = spec
	default:
		d.Location = spec
	}
}

// SwitchKind changes the service kind and clears the fields the new kind does
// not use. Assets, schedule and note carry over.
func (d *Draft) SwitchKind(kind ServiceKind) {
	if d.Kind == kind {
		return
	}
	d.Kind = kind
	if kind != KindFuel {
		d.Fuel = FuelDetails{}
	}
	if kind != KindMaintenance {
		d.MaintenanceType = ""
	}
	if kind != KindEmergency {
		d.EmergencyType = ""
	}
	if kind.UsesRoutePair() {
		d.Location = nil
	} else {
		d.Pickup, d.Dropoff = nil, nil
		d.TowingMethod = ""
	}
}

func (d *Draft) TrimmedNote() string {
	return strings.TrimSpace(d.Note)
}
