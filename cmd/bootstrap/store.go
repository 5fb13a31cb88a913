package bootstrap

import (
	"cruise-monitor/internal/handler/api"
	"cruise-monitor/internal/infra/catalog"
	"cruise-monitor/internal/infra/replicate"
	"cruise-monitor/internal/infra/snapshotstore"
	"cruise-monitor/internal/usecase/commands"
	"cruise-monitor/internal/usecase/queries"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			snapshotstore.New,
			fx.As(new(commands.SnapshotStore)),
			fx.As(new(queries.SnapshotReadStore)),
			fx.As(new(api.ReceiveStore)),
			fx.As(new(catalog.DetailCache)),
			fx.As(new(replicate.FileSource)),
		),
	),
)
