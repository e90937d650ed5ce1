package application

import (
	"context"
	"log/slog"

	"github.com/bnema/opbots/internal/ports"
)

// PairingService forwards connection bring-up of the automation client to
// the operator chat.
type PairingService struct {
	notifier ports.Notifier
	renderer ports.QRRenderer
	logger   *slog.Logger
	operator int64

	lastCode string
}

func NewPairingService(notifier ports.Notifier, renderer ports.QRRenderer, logger *slog.Logger, operatorID int64) *PairingService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &PairingService{notifier: notifier, renderer: renderer, logger: logger, operator: operatorID}
}

// HandleEvent is called sequentially by the connection watcher.
func (s *PairingService) HandleEvent(ctx context.Context, ev ports.ConnectionEvent) {
	switch ev.Kind {
	case ports.EventPairing:
		if ev.Code == "" || ev.Code == s.lastCode {
			return
		}
		s.lastCode = ev.Code
		s.sendCode(ctx, ev.Code)
	case ports.EventConnected:
		s.lastCode = ""
		s.logger.Info("whatsapp connected")
		s.send(ctx, ports.Message{ChatID: s.operator, Text: "WhatsApp connected. Ready to create groups.", Buttons: MainMenu()})
	case ports.EventDisconnected:
		s.logger.Warn("whatsapp disconnected")
		s.send(ctx, ports.Message{ChatID: s.operator, Text: "WhatsApp disconnected. Waiting for the session to come back..."})
	default:
		s.logger.Debug("ignoring connection event", "kind", ev.Kind)
	}
}

func (s *PairingService) sendCode(ctx context.Context, code string) {
	png, err := s.renderer.PNG(code)
	if err != nil {
		s.logger.Warn("render pairing code failed", "error", err)
		s.send(ctx, ports.Message{ChatID: s.operator, Text: "Pairing required but the QR code could not be rendered. Run `opbots groups pair` on the host."})
		return
	}

	s.logger.Info("pairing code forwarded to operator")
	s.send(ctx, ports.Message{
		ChatID: s.operator,
		Text:   "Scan this QR code with WhatsApp (Linked devices > Link a device).",
		Photo:  &ports.Photo{Name: "pairing.png", Data: png},
	})
}

func (s *PairingService) send(ctx context.Context, msg ports.Message) {
	if _, err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("send pairing notification failed", "error", err)
	}
}
