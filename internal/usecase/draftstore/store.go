// Package draftstore owns the in-progress service request of one composer
// session along with its field errors, predictions and notices.
package draftstore

import (
	"strings"
	"sync"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

const maxNotices = 20

var ErrUnknownLocationField = errs.New("unknown location field")

// Notice is a non-blocking, transient message for the user.
type Notice struct {
	Field   request.Field
	Message string
	At      time.Time
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Kind            *request.ServiceKind
	AssetIDs        *[]string
	Slot            *request.TimeSlot
	Note            *string
	FuelType        *request.FuelType
	Quantity        *int
	MaintenanceType *string
	EmergencyType   *string
	TowingMethod    *request.TowingMethod
}

type Store struct {
	mu          sync.RWMutex
	clock       clock.Clock
	draft       *request.Draft
	fieldErrors request.FieldErrors
	predictions map[request.LocationField][]request.Prediction
	notices     []Notice
}

func New(kind request.ServiceKind, clk clock.Clock) (*Store, error) {
	if !kind.IsValid() {
		return nil, errs.Mark(request.ErrInvalidServiceKind, errs.ErrValidation)
	}
	return &Store{
		clock:       clk,
		draft:       request.NewDraft(kind),
		fieldErrors: request.FieldErrors{},
		predictions: make(map[request.LocationField][]request.Prediction),
	}, nil
}

// Snapshot returns a deep copy of the current draft.
func (s *Store) Snapshot() *request.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

func (s *Store) Kind() request.ServiceKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Kind
}

// Update runs fn against the live draft under the store lock. fn must not call
// back into the store.
func (s *Store) Update(fn func(d *request.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.draft)
}

func (s *Store) SetKind(kind request.ServiceKind) error {
	if !kind.IsValid() {
		return errs.Mark(request.ErrInvalidServiceKind, errs.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setKindLocked(kind)
	return nil
}

func (s *Store) setKindLocked(kind request.ServiceKind) {
	if s.draft.Kind == kind {
		return
	}
	s.draft.SwitchKind(kind)
	s.fieldErrors = request.FieldErrors{}
	if kind.UsesRoutePair() {
		delete(s.predictions, request.FieldLocation)
	} else {
		delete(s.predictions, request.FieldPickup)
		delete(s.predictions, request.FieldDropoff)
	}
}

func (s *Store) SelectAssets(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Assets = request.NewAssetSelection(ids...)
	delete(s.fieldErrors, request.KeyAssets)
}

func (s *Store) ToggleAsset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Assets = s.draft.Assets.Toggle(id)
	delete(s.fieldErrors, request.KeyAssets)
}

func (s *Store) SetLocation(field request.LocationField, spec request.LocationSpec) error {
	if !field.IsValid() {
		return ErrUnknownLocationField
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetLocationFor(field, spec)
	delete(s.fieldErrors, request.FieldFor(field))
	return nil
}

func (s *Store) Location(field request.LocationField) request.LocationSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone().LocationFor(field)
}

func (s *Store) SetTimeSlot(slot request.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Slot = slot
	delete(s.fieldErrors, request.KeyTimeSlot)
}

func (s *Store) SetNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Note = note
}

// SetFuelType changes the fuel type. The amount and any estimate belong to the
// previous price and are cleared.
func (s *Store) SetFuelType(ft request.FuelType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Fuel.Type != ft {
		s.draft.Fuel.Amount = decimal.Zero
		s.draft.Fuel.QuantityEstimate = nil
	}
	s.draft.Fuel.Type = ft
	delete(s.fieldErrors, request.KeyFuelType)
}

func (s *Store) SetQuantity(litres int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Fuel.Quantity = litres
	s.draft.Fuel.QuantityEstimate = nil
	delete(s.fieldErrors, request.KeyQuantity)
}

func (s *Store) SetAmount(amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Fuel.Amount = amount
	delete(s.fieldErrors, request.KeyAmount)
}

// SetQuantityEstimate records the local estimate shown while an authoritative
// conversion is pending. Nil clears it.
func (s *Store) SetQuantityEstimate(estimate *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if estimate == nil {
		s.draft.Fuel.QuantityEstimate = nil
		return
	}
	v := *estimate
	s.draft.Fuel.QuantityEstimate = &v
}

func (s *Store) SetMaintenanceType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.MaintenanceType = strings.TrimSpace(t)
	delete(s.fieldErrors, request.KeyMaintenanceType)
}

func (s *Store) SetEmergencyType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.EmergencyType = strings.TrimSpace(t)
	delete(s.fieldErrors, request.KeyEmergencyType)
}

func (s *Store) SetTowingMethod(m request.TowingMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.TowingMethod = m
	delete(s.fieldErrors, request.KeyTowingMethod)
}

// Apply merges p into the draft in one step. Kind is applied first so the
// remaining fields land on the new kind.
func (s *Store) Apply(p Patch) error {
	if p.Kind != nil && !p.Kind.IsValid() {
		return errs.Mark(request.ErrInvalidServiceKind, errs.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setKindLocked(patch.Coalesce(p.Kind, s.draft.Kind))
	if p.AssetIDs != nil {
		s.draft.Assets = request.NewAssetSelection(*p.AssetIDs...)
		delete(s.fieldErrors, request.KeyAssets)
	}
	if p.Slot != nil {
		s.draft.Slot = *p.Slot
		delete(s.fieldErrors, request.KeyTimeSlot)
	}
	s.draft.Note = patch.Coalesce(p.Note, s.draft.Note)
	if p.FuelType != nil && *p.FuelType != s.draft.Fuel.Type {
		s.draft.Fuel.Type = *p.FuelType
		s.draft.Fuel.Amount = decimal.Zero
		s.draft.Fuel.QuantityEstimate = nil
		delete(s.fieldErrors, request.KeyFuelType)
	}
	if p.Quantity != nil {
		s.draft.Fuel.Quantity = *p.Quantity
		s.draft.Fuel.QuantityEstimate = nil
		delete(s.fieldErrors, request.KeyQuantity)
	}
	s.draft.MaintenanceType = patch.CoalesceTrim(p.MaintenanceType, s.draft.MaintenanceType)
	s.draft.EmergencyType = patch.CoalesceTrim(p.EmergencyType, s.draft.EmergencyType)
	s.draft.TowingMethod = patch.Coalesce(p.TowingMethod, s.draft.TowingMethod)
	return nil
}

// Reset discards everything and reopens with the defaults for kind.
func (s *Store) Reset(kind request.ServiceKind) error {
	if !kind.IsValid() {
		return errs.Mark(request.ErrInvalidServiceKind, errs.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = request.NewDraft(kind)
	s.fieldErrors = request.FieldErrors{}
	s.predictions = make(map[request.LocationField][]request.Prediction)
	s.notices = nil
	return nil
}

func (s *Store) SetFieldError(f request.Field, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldErrors[f] = msg
}

func (s *Store) ClearFieldError(f request.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fieldErrors, f)
}

// ReplaceFieldErrors swaps the whole map, as done after a validation pass.
func (s *Store) ReplaceFieldErrors(fe request.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldErrors = fe.Clone()
}

func (s *Store) FieldErrors() request.FieldErrors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fieldErrors.Clone()
}

func (s *Store) SetPredictions(field request.LocationField, ps []request.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ps) == 0 {
		delete(s.predictions, field)
		return
	}
	s.predictions[field] = append([]request.Prediction(nil), ps...)
}

func (s *Store) Predictions(field request.LocationField) []request.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]request.Prediction(nil), s.predictions[field]...)
}

// Notify records a notice. Only the most recent notices are kept.
func (s *Store) Notify(f request.Field, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Field: f, Message: msg, At: s.clock.Now()})
	if over := len(s.notices) - maxNotices; over > 0 {
		s.notices = append([]Notice(nil), s.notices[over:]...)
	}
}

func (s *Store) Notices() []Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notice(nil), s.notices...)
}

// DrainNotices returns the pending notices and clears them.
func (s *Store) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}
