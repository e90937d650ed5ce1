package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/opbots/internal/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierSendTextWithKeyboard(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	notifier := NewNotifier(api)

	ref, err := notifier.Send(context.Background(), ports.Message{
		ChatID:  42,
		Text:    "hello",
		Buttons: [][]ports.Button{{{Text: "Go", Data: "create"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, ports.MessageRef{ChatID: 42, MessageID: 1}, ref)

	msgs := api.sentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(42), msgs[0].ChatID)
	assert.Equal(t, "hello", msgs[0].Text)

	markup, ok := msgs[0].ReplyMarkup.(*tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "Go", markup.InlineKeyboard[0][0].Text)
	require.NotNil(t, markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "create", *markup.InlineKeyboard[0][0].CallbackData)
}

func TestNotifierSendWithoutButtonsLeavesMarkupEmpty(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	_, err := NewNotifier(api).Send(context.Background(), ports.Message{ChatID: 1, Text: "plain"})
	require.NoError(t, err)

	assert.Nil(t, api.sentMessages()[0].ReplyMarkup)
}

func TestNotifierSendPhotoUsesCaption(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	_, err := NewNotifier(api).Send(context.Background(), ports.Message{
		ChatID: 42,
		Text:   "scan me",
		Photo:  &ports.Photo{Name: "pairing.png", Data: []byte("png")},
	})
	require.NoError(t, err)

	photos := api.sentOfType(func(c tgbotapi.Chattable) bool { _, ok := c.(tgbotapi.PhotoConfig); return ok })
	require.Len(t, photos, 1)
	photo := photos[0].(tgbotapi.PhotoConfig)
	assert.Equal(t, "scan me", photo.Caption)
	assert.Equal(t, tgbotapi.FileBytes{Name: "pairing.png", Bytes: []byte("png")}, photo.File)
}

func TestNotifierSendWrapsError(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.sendErr = errors.New("Forbidden: bot was blocked by the user")

	_, err := NewNotifier(api).Send(context.Background(), ports.Message{ChatID: 1, Text: "x"})
	require.ErrorContains(t, err, "send telegram message")
}

func TestNotifierEditIgnoresNotModified(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.reqErr = errNotModified

	err := NewNotifier(api).Edit(context.Background(), ports.MessageRef{ChatID: 42, MessageID: 3}, "same", nil)
	require.NoError(t, err)

	reqs := api.requested()
	require.Len(t, reqs, 1)
	edit := reqs[0].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, int64(42), edit.ChatID)
	assert.Equal(t, 3, edit.MessageID)
	assert.Equal(t, "same", edit.Text)
	assert.Nil(t, edit.ReplyMarkup)
}

func TestNotifierEditResendsButtons(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	buttons := [][]ports.Button{{{Text: "Stop", Data: "stop"}}}

	err := NewNotifier(api).Edit(context.Background(), ports.MessageRef{ChatID: 42, MessageID: 3}, "Creating groups: 2/3", buttons)
	require.NoError(t, err)

	reqs := api.requested()
	require.Len(t, reqs, 1)
	edit := reqs[0].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, "Creating groups: 2/3", edit.Text)
	require.NotNil(t, edit.ReplyMarkup)
	require.Len(t, edit.ReplyMarkup.InlineKeyboard, 1)
	assert.Equal(t, "Stop", edit.ReplyMarkup.InlineKeyboard[0][0].Text)
	require.NotNil(t, edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "stop", *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestNotifierEditReportsOtherErrors(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.reqErr = errors.New("Bad Request: message to edit not found")

	err := NewNotifier(api).Edit(context.Background(), ports.MessageRef{ChatID: 42, MessageID: 3}, "x", nil)
	require.ErrorContains(t, err, "edit telegram message")
}
