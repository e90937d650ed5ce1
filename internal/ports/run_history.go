package ports

import (
	"context"

	"github.com/bnema/opbots/internal/domain"
)

type RunHistory interface {
	Append(ctx context.Context, record domain.RunRecord) error
	// Recent returns up to limit records, newest first. A non-positive limit
	// returns everything kept.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
