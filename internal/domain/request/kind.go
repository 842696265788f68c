package request

import "errors"

var (
	ErrInvalidServiceKind  = errors.New("invalid service kind")
	ErrInvalidFuelType     = errors.New("invalid fuel type")
	ErrInvalidTowingMethod = errors.New("invalid towing method")
)

type ServiceKind string

const (
	KindFuel        ServiceKind = "fuel"
	KindMaintenance ServiceKind = "maintenance"
	KindEmergency   ServiceKind = "emergency"
	KindTowing      ServiceKind = "towing"
)

func NewServiceKind(s string) (ServiceKind, error) {
	k := ServiceKind(s)
	if !k.IsValid() {
		return "", ErrInvalidServiceKind
	}
	return k, nil
}

func (k ServiceKind) String() string {
	return string(k)
}

func (k ServiceKind) IsValid() bool {
	switch k {
	case KindFuel, KindMaintenance, KindEmergency, KindTowing:
		return true
	default:
		return false
	}
}

// UsesRoutePair reports whether the kind needs a pickup/dropoff pair instead
// of a single location.
func (k ServiceKind) UsesRoutePair() bool {
	return k == KindTowing
}

type FuelType string

const (
	FuelPetrol FuelType = "PETROL"
	FuelDiesel FuelType = "DIESEL"
)

func NewFuelType(s string) (FuelType, error) {
	f := FuelType(s)
	if !f.IsValid() {
		return "", ErrInvalidFuelType
	}
	return f, nil
}

func (f FuelType) String() string {
	return string(f)
}

func (f FuelType) IsValid() bool {
	return f == FuelPetrol || f == FuelDiesel
}

// TowingMethod is the physical mode of vehicle recovery.
type TowingMethod string

const (
	TowingFlatbed      TowingMethod = "FLATBED"
	TowingHookAndChain TowingMethod = "HOOK_AND_CHAIN"
	TowingWheelLift    TowingMethod = "WHEEL_LIFT"
)

func NewTowingMethod(s string) (TowingMethod, error) {
	m := TowingMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidTowingMethod
	}
	return m, nil
}

func (m TowingMethod) String() string {
	return string(m)
}

func (m TowingMethod) IsValid() bool {
	switch m {
	case TowingFlatbed, TowingHookAndChain, TowingWheelLift:
		return true
	default:
		return false
	}
}
