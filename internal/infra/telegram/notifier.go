package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

// Notifier delivers event messages to a Telegram chat. Delivery is
// fire-and-forget from the pipeline's point of view; failures are reported
// but never affect snapshot correctness.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

func NewNotifier(cfg config.NotifyConfig, logger *slog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, errs.Wrap(err, "failed to initialize telegram bot")
	}
	return &Notifier{bot: bot, chatID: cfg.TelegramChatID, logger: logger}, nil
}

func (n *Notifier) Send(ctx context.Context, text string, silent bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableNotification = silent
	if _, err := n.bot.Send(msg); err != nil {
		return errs.Wrap(err, "telegram send failed")
	}
	return nil
}

// NopNotifier swallows every event; used when Telegram is not configured.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

func (n *NopNotifier) Send(_ context.Context, _ string, _ bool) error {
	return nil
}
