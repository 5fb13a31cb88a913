package bootstrap

import (
	"cruise-monitor/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StoreModule,
	components.ProviderModule,
	components.UseCaseModule,
	components.HandlerModule,
)
