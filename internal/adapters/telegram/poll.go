package telegram

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateTimeoutSeconds = 60

// runUpdates long-polls api and hands every update to handle, one at a time,
// until ctx ends. A panicking handler is logged and the loop keeps going.
func runUpdates(ctx context.Context, api botAPI, logger *slog.Logger, handle func(context.Context, tgbotapi.Update)) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds

	updates := api.GetUpdatesChan(cfg)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram update channel closed")
			}
			dispatch(ctx, logger, update, handle)
		}
	}
}

func dispatch(ctx context.Context, logger *slog.Logger, update tgbotapi.Update, handle func(context.Context, tgbotapi.Update)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("update handler panicked", "update_id", update.UpdateID, "panic", r)
		}
	}()

	handle(ctx, update)
}
