package components

import (
	"log/slog"

	"cruise-monitor/internal/infra/catalog"
	"cruise-monitor/internal/infra/replicate"
	"cruise-monitor/internal/infra/telegram"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/usecase/commands"

	"go.uber.org/fx"
)

var ProviderModule = fx.Module("provider",
	fx.Provide(
		fx.Annotate(
			catalog.NewClient,
			fx.As(new(commands.ListingProvider)),
			fx.As(new(commands.DetailProvider)),
		),
		NewNotifier,
		replicate.NewUploader,
	),
)

// NewNotifier picks the Telegram transport when it is configured and a no-op
// sink otherwise, so the pipeline never has to care.
func NewNotifier(cfg config.NotifyConfig, logger *slog.Logger) (commands.Notifier, error) {
	if !cfg.TelegramEnabled || cfg.TelegramBotToken == "" {
		logger.Info("Telegram notifications disabled")
		return telegram.NewNopNotifier(), nil
	}
	return telegram.NewNotifier(cfg, logger)
}
