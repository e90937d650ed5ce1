package ports

import "context"

// MessageRef is a stable handle to a message that was already delivered.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

type Button struct {
	Text string
	Data string
}

// Photo is an image attachment; Text becomes its caption.
type Photo struct {
	Name string
	Data []byte
}

type Message struct {
	ChatID  int64
	Text    string
	Buttons [][]Button
	Photo   *Photo
}

type Notifier interface {
	Send(ctx context.Context, msg Message) (MessageRef, error)
	// Edit replaces the text of ref in place; writing the same text twice is a no-op.
	// The message keeps only the buttons passed here.
	Edit(ctx context.Context, ref MessageRef, text string, buttons [][]Button) error
}
