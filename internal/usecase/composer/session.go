// Package composer wires one instance of every composition component per open
// composer and keeps track of the live ones.
package composer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fleet-console/internal/domain/payment"
	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/usecase/checkout"
	"fleet-console/internal/usecase/draftstore"
	"fleet-console/internal/usecase/location"
	"fleet-console/internal/usecase/quantity"
	"fleet-console/internal/usecase/shared"
	"fleet-console/internal/usecase/timeslot"
	"fleet-console/internal/usecase/validation"
)

const msgAssetsUnavailable = "Could not load assets"

// Backends groups the external collaborators every session talks to.
type Backends struct {
	Places        shared.PlaceProvider
	Directory     shared.Directory
	Pricing       shared.FuelPricing
	Services      shared.ServiceBackend
	Subscriptions shared.SubscriptionBackend
}

type Session struct {
	id        string
	createdAt time.Time
	logger    *slog.Logger
	directory shared.Directory

	store     *draftstore.Store
	locations *location.Resolver
	quantity  *quantity.Converter
	slots     *timeslot.Generator
	validator *validation.Validator
	checkout  *checkout.Orchestrator

	release func()

	mu     sync.Mutex
	assets []shared.AssetSnapshot
}

func newSession(id string, kind request.ServiceKind, b Backends, clk clock.Clock, cfg config.ComposerConfig, logger *slog.Logger) (*Session, error) {
	store, err := draftstore.New(kind, clk)
	if err != nil {
		return nil, err
	}
	logger = logger.With("session_id", id)
	validator := validation.NewValidator(clk, cfg)
	return &Session{
		id:        id,
		createdAt: clk.Now(),
		logger:    logger,
		directory: b.Directory,
		store:     store,
		locations: location.NewResolver(store, b.Places, b.Directory, clk, cfg, logger),
		quantity:  quantity.NewConverter(store, b.Pricing, clk, cfg, logger),
		slots:     timeslot.NewGenerator(clk, cfg),
		validator: validator,
		checkout:  checkout.NewOrchestrator(b.Services, b.Subscriptions, validator, logger),
	}, nil
}

func (s *Session) ID() string                       { return s.id }
func (s *Session) CreatedAt() time.Time             { return s.createdAt }
func (s *Session) Draft() *draftstore.Store         { return s.store }
func (s *Session) Locations() *location.Resolver    { return s.locations }
func (s *Session) Quantity() *quantity.Converter    { return s.quantity }
func (s *Session) Slots() *timeslot.Generator       { return s.slots }
func (s *Session) Validator() *validation.Validator { return s.validator }
func (s *Session) Checkout() *checkout.Orchestrator { return s.checkout }

// Validate runs the validator on the current draft and records the result as
// the draft's field errors.
func (s *Session) Validate() request.FieldErrors {
	fe := s.validator.Validate(s.store.Snapshot())
	s.store.ReplaceFieldErrors(fe)
	return fe
}

// Init prices the current draft.
func (s *Session) Init(ctx context.Context) (pricing.Breakdown, error) {
	if fe := s.Validate(); !fe.IsEmpty() {
		return pricing.Breakdown{}, validation.AsError(fe)
	}
	return s.checkout.Init(ctx, s.store.Snapshot())
}

// Confirm places the current draft. The session is released once the order
// is accepted.
func (s *Session) Confirm(ctx context.Context) (checkout.Receipt, error) {
	if fe := s.Validate(); !fe.IsEmpty() {
		return checkout.Receipt{}, validation.AsError(fe)
	}
	receipt, err := s.checkout.Confirm(ctx, s.store.Snapshot())
	if err != nil {
		return checkout.Receipt{}, err
	}
	if s.release != nil {
		s.release()
	}
	return receipt, nil
}

// Assets returns the asset directory, loaded once per session.
func (s *Session) Assets(ctx context.Context) []shared.AssetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assets != nil {
		return s.assets
	}
	list, err := s.directory.ListAssets(ctx)
	if err != nil {
		s.logger.Warn("asset directory failed", "error", err)
		s.store.Notify(request.KeyAssets, msgAssetsUnavailable)
		return nil
	}
	s.assets = append([]shared.AssetSnapshot{}, list...)
	return s.assets
}

func (s *Session) close() {
	s.checkout.Close()
}

// View is a point-in-time copy of everything the console renders.
type View struct {
	ID          string
	Draft       *request.Draft
	FieldErrors request.FieldErrors
	Notices     []draftstore.Notice
	Predictions map[request.LocationField][]request.Prediction
	Phase       checkout.Phase
	Breakdown   *pricing.Breakdown
	Payment     *payment.Snapshot
	OrderID     string
}

func (s *Session) View() View {
	d := s.store.Snapshot()
	s.checkout.DiscardStalePricing(d)
	v := View{
		ID:          s.id,
		Draft:       d,
		FieldErrors: s.store.FieldErrors(),
		Notices:     s.store.Notices(),
		Predictions: make(map[request.LocationField][]request.Prediction),
		Phase:       s.checkout.Phase(),
		OrderID:     s.checkout.OrderID(),
	}
	for _, f := range []request.LocationField{request.FieldLocation, request.FieldPickup, request.FieldDropoff} {
		if ps := s.store.Predictions(f); len(ps) > 0 {
			v.Predictions[f] = ps
		}
	}
	if bd, ok := s.checkout.Breakdown(); ok {
		v.Breakdown = &bd
	}
	if snap, ok := s.checkout.Session(); ok {
		v.Payment = &snap
	}
	return v
}
