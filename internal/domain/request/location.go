package request

import (
	"errors"
	"strings"
)

var ErrInvalidCoordinates = errors.New("coordinates out of range")

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, ErrInvalidCoordinates
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}

// LocationSpec is either a SavedLocation or a ManualLocation.
type LocationSpec interface {
	// Usable reports whether the location can be submitted. When routing is
	// true coordinates are mandatory for manual entries.
	Usable(routing bool) bool
	isLocationSpec()
}

// SavedLocation is authoritative on the backend; no coordinates are needed
// client-side.
type SavedLocation struct {
	ID string
}

func (s SavedLocation) Usable(bool) bool {
	return strings.TrimSpace(s.ID) != ""
}

func (SavedLocation) isLocationSpec() {}

// ManualLocation is a free-text address, resolved once coordinates are known.
type ManualLocation struct {
	Address     string
	Coordinates *Coordinates
}

func NewManualLocation(address string) ManualLocation {
	return ManualLocation{Address: strings.TrimSpace(address)}
}

func NewResolvedLocation(address string, c Coordinates) ManualLocation {
	return ManualLocation{Address: strings.TrimSpace(address), Coordinates: &c}
}

func (m ManualLocation) Resolved() bool {
	return m.Coordinates != nil
}

func (m ManualLocation) Usable(routing bool) bool {
	if routing {
		return m.Resolved()
	}
	return m.Resolved() || m.Address != ""
}

func (ManualLocation) isLocationSpec() {}

// LocationField names one logical location input of the composer.
type LocationField string

const (
	FieldLocation LocationField = "location"
	FieldPickup   LocationField = "pickup"
	FieldDropoff  LocationField = "dropoff"
)

func (f LocationField) IsValid() bool {
	switch f {
	case FieldLocation, FieldPickup, FieldDropoff:
		return true
	default:
		return false
	}
}

func (f LocationField) String() string {
	return string(f)
}

// Prediction is one place autocomplete candidate.
type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

func cloneLocation(spec LocationSpec) LocationSpec {
	if m, ok := spec.(ManualLocation); ok && m.Coordinates != nil {
		c := *m.Coordinates
		m.Coordinates = &c
		return m
	}
	return spec
}
