package components

import (
	"log/slog"

	"fleet-console/internal/infra/backend"
	"fleet-console/internal/infra/places"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/usecase/shared"

	"go.uber.org/fx"
)

// GatewayModule provides the outbound clients behind the usecase ports. One
// backend client serves every backend port so they share a circuit breaker.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewBackendClient,
			fx.As(new(shared.Directory)),
			fx.As(new(shared.FuelPricing)),
			fx.As(new(shared.ServiceBackend)),
			fx.As(new(shared.SubscriptionBackend)),
		),
		fx.Annotate(
			NewPlacesClient,
			fx.As(new(shared.PlaceProvider)),
		),
	),
)

func NewBackendClient(cfg config.Config, logger *slog.Logger) *backend.Client {
	return backend.NewClient(cfg.Backend, logger.With("gateway", "backend"))
}

func NewPlacesClient(cfg config.Config, logger *slog.Logger) *places.Client {
	return places.NewClient(cfg.Places, logger.With("gateway", "places"))
}
