package shared

import (
	"context"

	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=ports.go -destination=../../mock/shared/ports.go -package=sharedmock

// PlaceProvider is the place-search and geocoding collaborator.
type PlaceProvider interface {
	Autocomplete(ctx context.Context, query string) ([]request.Prediction, error)
	Geocode(ctx context.Context, address string) (request.Coordinates, error)
}

// Directory serves the read-only selection lists of the console.
type Directory interface {
	ListAssets(ctx context.Context) ([]AssetSnapshot, error)
	ListSavedLocations(ctx context.Context) ([]SavedLocationSnapshot, error)
}

type FuelPricing interface {
	// FuelPricingDetail converts amount of fuelType into litres and reports
	// the current unit prices.
	FuelPricingDetail(ctx context.Context, fuelType request.FuelType, amount decimal.Decimal) (FuelQuote, error)
}

// ServiceBackend initializes and places direct service requests.
type ServiceBackend interface {
	InitService(ctx context.Context, order ServiceOrder) (pricing.Breakdown, error)
	PlaceService(ctx context.Context, order ServiceOrder) (PlacedOrder, error)
}

type SubscriptionBackend interface {
	EstimateSubscription(ctx context.Context, in EstimateInput) (subscription.Estimate, error)
	InitAssignment(ctx context.Context, in AssignmentInit) (PaymentAuthorization, error)
	VerifyAssignment(ctx context.Context, in AssignmentVerify) (bool, error)
}
