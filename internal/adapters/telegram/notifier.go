package telegram

import (
	"context"
	"fmt"

	"github.com/bnema/opbots/internal/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers application messages through the Bot API.
type Notifier struct {
	api botAPI
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(api botAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) Send(ctx context.Context, msg ports.Message) (ports.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return ports.MessageRef{}, err
	}

	var chattable tgbotapi.Chattable
	markup := inlineKeyboard(msg.Buttons)
	if msg.Photo != nil {
		photo := tgbotapi.NewPhoto(msg.ChatID, tgbotapi.FileBytes{Name: msg.Photo.Name, Bytes: msg.Photo.Data})
		photo.Caption = msg.Text
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		chattable = photo
	} else {
		text := tgbotapi.NewMessage(msg.ChatID, msg.Text)
		if markup != nil {
			text.ReplyMarkup = markup
		}
		chattable = text
	}

	sent, err := n.api.Send(chattable)
	if err != nil {
		return ports.MessageRef{}, fmt.Errorf("send telegram message: %w", err)
	}

	return ports.MessageRef{ChatID: msg.ChatID, MessageID: sent.MessageID}, nil
}

// Edit rewrites the message text. Telegram drops the inline keyboard of an
// edit that carries none, so buttons are sent again on every call.
func (n *Notifier) Edit(ctx context.Context, ref ports.MessageRef, text string, buttons [][]ports.Button) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	if markup := inlineKeyboard(buttons); markup != nil {
		edit.ReplyMarkup = markup
	}

	_, err := n.api.Request(edit)
	if err != nil && !isNotModified(err) {
		return fmt.Errorf("edit telegram message: %w", err)
	}
	return nil
}
