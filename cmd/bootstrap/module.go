package bootstrap

import (
	"fleet-console/cmd/bootstrap/components"
	"fleet-console/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the environment once; every other module reads from the
// resulting config.Config.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
