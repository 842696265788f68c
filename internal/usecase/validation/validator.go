// Package validation checks a draft before it is priced or placed. Every
// violated field is reported in one pass.
package validation

import (
	"fmt"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
)

const (
	msgAssetsRequired      = "Select at least one asset"
	msgSlotRequired        = "Choose when the service should happen"
	msgSlotInPast          = "The scheduled time has already passed"
	msgLocationRequired    = "Choose a saved location or enter an address"
	msgCoordinatesRequired = "Pick the address from the suggestions so it can be located"
	msgTowingMethod        = "Choose a towing method"
	msgFuelType            = "Choose a fuel type"
	msgMaintenanceType     = "Choose a maintenance type"
	msgEmergencyType       = "Choose an emergency type"
	msgAssetCount          = "Asset count must be at least 1"
	msgBillingCycle        = "Choose a billing cycle"
	msgCategory            = "Choose a subscription category"
	msgStartsAt            = "Start date cannot be in the past"
)

// Limits are the business bounds applied to fuel quantities.
type Limits struct {
	MinLitres int
	MaxLitres int
}

// Validate maps (kind, draft) to every violated field, evaluated at now.
func Validate(kind request.ServiceKind, d *request.Draft, now time.Time, limits Limits) request.FieldErrors {
	fe := request.FieldErrors{}

	if d.Assets.IsEmpty() {
		fe.Add(request.KeyAssets, msgAssetsRequired)
	}
	switch err := d.Slot.ValidateAt(now); {
	case errs.Is(err, request.ErrTimeSlotUnset):
		fe.Add(request.KeyTimeSlot, msgSlotRequired)
	case errs.Is(err, request.ErrTimeSlotInPast):
		fe.Add(request.KeyTimeSlot, msgSlotInPast)
	}

	if kind.UsesRoutePair() {
		if !d.TowingMethod.IsValid() {
			fe.Add(request.KeyTowingMethod, msgTowingMethod)
		}
		checkLocation(fe, request.KeyPickup, d.Pickup, true)
		checkLocation(fe, request.KeyDropoff, d.Dropoff, true)
	} else {
		checkLocation(fe, request.KeyLocation, d.Location, false)
	}

	switch kind {
	case request.KindFuel:
		if !d.Fuel.Type.IsValid() {
			fe.Add(request.KeyFuelType, msgFuelType)
		}
		if q := d.Fuel.Quantity; q < limits.MinLitres || q > limits.MaxLitres {
			fe.Add(request.KeyQuantity, fmt.Sprintf("Quantity must be between %d and %d litres", limits.MinLitres, limits.MaxLitres))
		}
	case request.KindMaintenance:
		if d.MaintenanceType == "" {
			fe.Add(request.KeyMaintenanceType, msgMaintenanceType)
		}
	case request.KindEmergency:
		if d.EmergencyType == "" {
			fe.Add(request.KeyEmergencyType, msgEmergencyType)
		}
	}
	return fe
}

func checkLocation(fe request.FieldErrors, key request.Field, spec request.LocationSpec, routing bool) {
	if spec == nil {
		fe.Add(key, msgLocationRequired)
		return
	}
	if spec.Usable(routing) {
		return
	}
	if m, ok := spec.(request.ManualLocation); ok && m.Address != "" {
		fe.Add(key, msgCoordinatesRequired)
		return
	}
	fe.Add(key, msgLocationRequired)
}

// SubscriptionInput is what the subscription form submits for an estimate or
// a payment.
type SubscriptionInput struct {
	AssetCount   int
	BillingCycle subscription.BillingCycle
	Category     subscription.Category
	// StartsAt is optional for estimates.
	StartsAt *time.Time
}

// ValidateSubscription checks subscription input. A start date is compared by
// calendar day in now's location.
func ValidateSubscription(in SubscriptionInput, now time.Time) request.FieldErrors {
	fe := request.FieldErrors{}
	if in.AssetCount < 1 {
		fe.Add(request.KeyAssetCount, msgAssetCount)
	}
	if !in.BillingCycle.IsValid() {
		fe.Add(request.KeyBillingCycle, msgBillingCycle)
	}
	if !in.Category.IsValid() {
		fe.Add(request.KeyCategory, msgCategory)
	}
	if in.StartsAt != nil {
		y, m, d := now.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		if in.StartsAt.In(now.Location()).Before(today) {
			fe.Add(request.KeyStartsAt, msgStartsAt)
		}
	}
	return fe
}

// Validator binds Validate to a clock and configured limits.
type Validator struct {
	clock  clock.Clock
	limits Limits
}

func NewValidator(clk clock.Clock, cfg config.ComposerConfig) *Validator {
	return &Validator{
		clock:  clk,
		limits: Limits{MinLitres: cfg.MinLitres, MaxLitres: cfg.MaxLitres},
	}
}

func (v *Validator) Validate(d *request.Draft) request.FieldErrors {
	return Validate(d.Kind, d, v.clock.Now(), v.limits)
}

func (v *Validator) ValidateSubscription(in SubscriptionInput) request.FieldErrors {
	return ValidateSubscription(in, v.clock.Now())
}

func (v *Validator) Limits() Limits {
	return v.limits
}

// ValidatePaymentInit checks the inputs of a subscription payment.
func ValidatePaymentInit(cycle subscription.BillingCycle, startsAt time.Time, now time.Time) request.FieldErrors {
	fe := request.FieldErrors{}
	if !cycle.IsValid() {
		fe.Add(request.KeyBillingCycle, msgBillingCycle)
	}
	y, m, d := now.Date()
	if startsAt.IsZero() || startsAt.In(now.Location()).Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location())) {
		fe.Add(request.KeyStartsAt, msgStartsAt)
	}
	return fe
}

func (v *Validator) ValidatePaymentInit(cycle subscription.BillingCycle, startsAt time.Time) request.FieldErrors {
	return ValidatePaymentInit(cycle, startsAt, v.clock.Now())
}
