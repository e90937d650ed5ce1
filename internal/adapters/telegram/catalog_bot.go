package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/opbots/internal/application"
	"github.com/bnema/opbots/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackCancelUpload = "cancel_upload"
	callbackGallery      = "gallery"
	callbackRefresh      = "refresh"
	callbackMainMenu     = "main_menu"
	callbackGetPrefix    = "get_"

	rejectionTTL = 3 * time.Second
)

type CatalogBotConfig struct {
	AdminID        int64
	AnnounceChatID int64
	BotUsername    string
}

// CatalogBot serves the text file catalog: uploads with a naming step,
// deep-link downloads, an inline gallery and admin broadcasts.
type CatalogBot struct {
	api    botAPI
	svc    *application.CatalogService
	cfg    CatalogBotConfig
	logger *slog.Logger

	rejectAfter time.Duration
}

func NewCatalogBot(api botAPI, svc *application.CatalogService, cfg CatalogBotConfig, logger *slog.Logger) *CatalogBot {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &CatalogBot{api: api, svc: svc, cfg: cfg, logger: logger, rejectAfter: rejectionTTL}
}

func (b *CatalogBot) Run(ctx context.Context) error {
	b.logger.Info("catalog bot polling", "username", b.cfg.BotUsername)
	return runUpdates(ctx, b.api, b.logger, b.handleUpdate)
}

func (b *CatalogBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Chat != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *CatalogBot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.Document != nil:
		b.handleDocument(msg)
	case msg.IsCommand():
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg)
		case "bc":
			b.handleBroadcast(ctx, msg)
		}
	case msg.Text != "" && b.svc.HasPendingUpload(msg.Chat.ID):
		b.handleName(ctx, msg)
	}
}

func (b *CatalogBot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if err := b.svc.Start(ctx, chatID); err != nil {
		b.logger.Warn("register user failed", "chat_id", chatID, "error", err)
	}

	if id, ok := domain.ParseDeepLink(msg.CommandArguments()); ok {
		b.sendFile(ctx, chatID, id, "Fetching file...")
		return
	}

	b.sendDashboard(ctx, chatID)
}

func (b *CatalogBot) sendDashboard(ctx context.Context, chatID int64) {
	dash, err := b.svc.Dashboard(ctx)
	if err != nil {
		b.logger.Warn("load dashboard failed", "error", err)
		b.send(tgbotapi.NewMessage(chatID, "The catalog is unavailable right now. Try again later."))
		return
	}

	markup := dashboardKeyboard()
	if dash.BannerURL == "" {
		text := tgbotapi.NewMessage(chatID, dashboardCaption(dash.Stats))
		text.ReplyMarkup = markup
		b.send(text)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(dash.BannerURL))
	photo.Caption = dashboardCaption(dash.Stats)
	photo.ReplyMarkup = markup
	b.send(photo)
}

func (b *CatalogBot) handleDocument(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document

	err := b.svc.BeginUpload(application.UploadCommand{
		ChatID:   chatID,
		FileID:   doc.FileID,
		FileName: doc.FileName,
		MimeType: doc.MimeType,
	})
	if errors.Is(err, domain.ErrUnsupportedDoc) {
		sent, sendErr := b.api.Send(tgbotapi.NewMessage(chatID, "Format rejected. Only .txt files are accepted."))
		if sendErr != nil {
			b.logger.Warn("send rejection failed", "error", sendErr)
			return
		}
		b.deleteLater(chatID, msg.MessageID, sent.MessageID)
		return
	}
	if err != nil {
		b.logger.Warn("begin upload failed", "error", err)
		return
	}

	prompt := tgbotapi.NewMessage(chatID, fmt.Sprintf("File received: %s\n\nReply with a name for this file.", doc.FileName))
	prompt.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackCancelUpload)),
	)
	b.send(prompt)
}

func (b *CatalogBot) handleName(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	uploader := displayName(msg.From)

	file, err := b.svc.CompleteUpload(ctx, application.NameCommand{ChatID: chatID, Name: msg.Text, Uploader: uploader})
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		b.send(tgbotapi.NewMessage(chatID, "The name cannot be empty. Reply with a name for this file."))
		return
	case errors.Is(err, domain.ErrNoPendingFile):
		return
	case err != nil:
		b.logger.Warn("save upload failed", "chat_id", chatID, "error", err)
		b.send(tgbotapi.NewMessage(chatID, "Saving failed. Send the name again to retry."))
		return
	}

	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Saved!\nName: %s\nID: %s", file.Name, file.ID)))
	b.announce(file)
}

// announce posts the new entry to the announcement chat. Failures are
// logged only.
func (b *CatalogBot) announce(file domain.CatalogFile) {
	if b.cfg.AnnounceChatID == 0 || b.cfg.BotUsername == "" {
		return
	}

	msg := tgbotapi.NewMessage(b.cfg.AnnounceChatID, fmt.Sprintf("New file\nTitle: %s\nBy: %s\n\nTap the button to download.", file.Name, file.Uploader))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Download .txt", domain.DeepLink(b.cfg.BotUsername, file.ID))),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Debug("announce file failed", "id", file.ID, "error", err)
	}
}

func (b *CatalogBot) handleBroadcast(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat.ID != b.cfg.AdminID {
		return
	}
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /bc <text>"))
		return
	}

	b.send(tgbotapi.NewMessage(msg.Chat.ID, "Sending broadcast..."))

	result, err := b.svc.Broadcast(ctx, text)
	if err != nil {
		b.logger.Warn("broadcast failed", "error", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Broadcast failed: "+err.Error()))
		return
	}

	b.logger.Info("broadcast delivered", "recipients", result.Recipients, "delivered", result.Delivered)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Delivered to %d users.", result.Delivered)))
}

func (b *CatalogBot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat == nil {
		b.answer(query.ID, "")
		return
	}
	chatID := query.Message.Chat.ID
	msgID := query.Message.MessageID

	switch data := query.Data; {
	case data == callbackCancelUpload:
		b.answer(query.ID, "")
		b.svc.CancelUpload(chatID)
		b.request(tgbotapi.NewDeleteMessage(chatID, msgID))
		b.send(tgbotapi.NewMessage(chatID, "Upload cancelled."))

	case data == callbackGallery:
		files, err := b.svc.Gallery(ctx)
		if err != nil {
			b.logger.Warn("load gallery failed", "error", err)
			b.answer(query.ID, "Catalog unavailable")
			return
		}
		if len(files) == 0 {
			b.request(tgbotapi.NewCallbackWithAlert(query.ID, "The catalog is empty!"))
			return
		}
		b.answer(query.ID, "")
		b.editDashboard(query.Message, "File gallery\nPick a file below:", galleryKeyboard(files))

	case data == callbackRefresh || data == callbackMainMenu:
		b.answer(query.ID, "")
		dash, err := b.svc.Dashboard(ctx)
		if err != nil {
			b.logger.Warn("load dashboard failed", "error", err)
			return
		}
		b.editDashboard(query.Message, dashboardCaption(dash.Stats), dashboardKeyboard())

	case strings.HasPrefix(data, callbackGetPrefix):
		b.answer(query.ID, "")
		b.sendFile(ctx, chatID, domain.CatalogFileID(strings.TrimPrefix(data, callbackGetPrefix)), "Sending file...")

	default:
		b.answer(query.ID, "")
		b.logger.Debug("unknown callback data", "data", data)
	}
}

func (b *CatalogBot) sendFile(ctx context.Context, chatID int64, id domain.CatalogFileID, notice string) {
	file, err := b.svc.Resolve(ctx, id)
	if err != nil {
		if !application.IsNotFound(err) {
			b.logger.Warn("resolve file failed", "id", id, "error", err)
		}
		b.send(tgbotapi.NewMessage(chatID, "File not found."))
		return
	}

	b.send(tgbotapi.NewMessage(chatID, notice+"\n"+file.Name))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(file.TelegramID))
	doc.Caption = file.Name
	b.send(doc)
}

// editDashboard rewrites the dashboard in place. A banner dashboard is a
// photo, so its caption is edited; otherwise the text is.
func (b *CatalogBot) editDashboard(msg *tgbotapi.Message, text string, markup tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.Chattable
	if len(msg.Photo) > 0 {
		caption := tgbotapi.NewEditMessageCaption(msg.Chat.ID, msg.MessageID, text)
		caption.ReplyMarkup = &markup
		edit = caption
	} else {
		edit = tgbotapi.NewEditMessageTextAndMarkup(msg.Chat.ID, msg.MessageID, text, markup)
	}

	if _, err := b.api.Request(edit); err != nil && !isNotModified(err) {
		b.logger.Debug("edit dashboard failed", "error", err)
	}
}

func (b *CatalogBot) deleteLater(chatID int64, messageIDs ...int) {
	time.AfterFunc(b.rejectAfter, func() {
		for _, id := range messageIDs {
			b.request(tgbotapi.NewDeleteMessage(chatID, id))
		}
	})
}

func (b *CatalogBot) answer(queryID, text string) {
	b.request(tgbotapi.NewCallback(queryID, text))
}

func (b *CatalogBot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Debug("telegram request failed", "error", err)
	}
}

func (b *CatalogBot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("telegram send failed", "error", err)
	}
}

func dashboardCaption(stats domain.CatalogStats) string {
	return fmt.Sprintf("TXT cloud dashboard\n\nWelcome! Text file storage in the cloud.\n\nFiles: %d\nUsers: %d\n\nSend a .txt file here to store it.", stats.Files, stats.Users)
}

func dashboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("File gallery", callbackGallery)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Refresh", callbackRefresh)),
	)
}

func galleryKeyboard(files []domain.CatalogFile) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(files)+1)
	for _, file := range files {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(file.Name, callbackGetPrefix+string(file.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Back", callbackMainMenu)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
