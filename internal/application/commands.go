package application

import (
	"time"

	"github.com/bnema/opbots/internal/ports"
)

type TaskOptions struct {
	// UnitTimeout bounds a single group creation; zero disables the deadline.
	UnitTimeout time.Duration
	// History receives one record per finished run when set.
	History ports.RunHistory
}

type UploadCommand struct {
	ChatID   int64
	FileID   string
	FileName string
	MimeType string
}

type NameCommand struct {
	ChatID   int64
	Name     string
	Uploader string
}
