package telegram

import (
	"context"
	"log/slog"

	"github.com/bnema/opbots/internal/application"
	"github.com/bnema/opbots/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DeniedText is the fixed reply to anyone but the configured operator.
const DeniedText = "Access denied."

const groupWelcome = "Group creator ready. Choose an action:"

// GroupBot routes operator updates into the task service.
type GroupBot struct {
	api        botAPI
	tasks      *application.TaskService
	operatorID int64
	logger     *slog.Logger
}

func NewGroupBot(api botAPI, tasks *application.TaskService, operatorID int64, logger *slog.Logger) *GroupBot {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &GroupBot{api: api, tasks: tasks, operatorID: operatorID, logger: logger}
}

func (b *GroupBot) Run(ctx context.Context) error {
	b.logger.Info("group bot polling", "operator_id", b.operatorID)
	return runUpdates(ctx, b.api, b.logger, b.handleUpdate)
}

func (b *GroupBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *GroupBot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if !b.authorized(msg.From) {
		b.deny(msg.Chat.ID, msg.From)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "menu":
			b.reply(msg.Chat.ID, groupWelcome)
		case "status":
			b.report(b.tasks.HandleAction(ctx, msg.Chat.ID, domain.ActionStatus))
		default:
			b.reply(msg.Chat.ID, "Unknown command. Use /menu.")
		}
		return
	}

	b.report(b.tasks.HandleText(ctx, msg.Chat.ID, msg.Text))
}

func (b *GroupBot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if !b.authorized(query.From) {
		if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, DeniedText)); err != nil {
			b.logger.Debug("answer callback failed", "error", err)
		}
		b.logger.Warn("unauthorized callback", "user", displayName(query.From))
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Debug("answer callback failed", "error", err)
	}
	if query.Message == nil || query.Message.Chat == nil {
		return
	}

	action, err := domain.ParseAction(query.Data)
	if err != nil {
		b.logger.Warn("unknown callback data", "data", query.Data)
		return
	}

	b.report(b.tasks.HandleAction(ctx, query.Message.Chat.ID, action))
}

func (b *GroupBot) authorized(user *tgbotapi.User) bool {
	return user != nil && user.ID == b.operatorID
}

func (b *GroupBot) deny(chatID int64, user *tgbotapi.User) {
	b.logger.Warn("unauthorized message", "user", displayName(user), "chat_id", chatID)
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, DeniedText)); err != nil {
		b.logger.Debug("send denial failed", "error", err)
	}
}

func (b *GroupBot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = inlineKeyboard(application.MainMenu())
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send reply failed", "error", err)
	}
}

func (b *GroupBot) report(err error) {
	switch {
	case err == nil:
	case application.IsRefusal(err):
		b.logger.Debug("operator request refused", "reason", err)
	default:
		b.logger.Warn("handle operator request failed", "error", err)
	}
}
