package components

import (
	"log/slog"

	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/usecase/commands"
	"cruise-monitor/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewEventSender,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewUpdateUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOfferQueries,
	),
)

func NewEventSender(notifier commands.Notifier, cfg config.Config, logger *slog.Logger) *commands.EventSender {
	return commands.NewEventSender(notifier, cfg.Notify, cfg.Cache.Currency, logger)
}
