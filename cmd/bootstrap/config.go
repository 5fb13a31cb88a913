package bootstrap

import (
	"cruise-monitor/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CatalogConfig { return cfg.Catalog },
		func(cfg config.Config) config.CacheConfig { return cfg.Cache },
		func(cfg config.Config) config.NotifyConfig { return cfg.Notify },
		func(cfg config.Config) config.ReplicateConfig { return cfg.Replicate },
	),
)
