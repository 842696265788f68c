package components

import (
	"context"
	"log/slog"

	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/usecase/composer"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseComposerModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseComposerModule = fx.Module("usecase/composer",
	fx.Provide(
		fx.Annotate(
			composer.NewRegistry,
			fx.As(fx.Self()),
			fx.As(new(composer.Sessions)),
		),
	),
	fx.Invoke(closeSessionsOnStop),
)

// closeSessionsOnStop drops every open composer so in-flight responses are
// discarded and open payment sessions are failed.
func closeSessionsOnStop(lc fx.Lifecycle, registry *composer.Registry, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing composer sessions", "open", registry.Len())
			registry.CloseAll()
			return nil
		},
	})
}
