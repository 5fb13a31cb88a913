package components

import (
	"cruise-monitor/internal/handler"
	"cruise-monitor/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOffersHandler,
		api.NewReplicateHandler,
	),
	fx.Invoke(handler.NewRouter),
)
