package components

import (
	"fleet-console/internal/handler"
	"fleet-console/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewComposerHandler,
	),
	fx.Invoke(handler.NewRouter),
)
