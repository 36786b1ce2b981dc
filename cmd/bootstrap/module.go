package bootstrap

import (
	"space-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
