package ports

import (
	"context"

	"github.com/bnema/opbots/internal/domain"
)

type CatalogRepository interface {
	GetByID(ctx context.Context, id domain.CatalogFileID) (domain.CatalogFile, error)
	List(ctx context.Context) ([]domain.CatalogFile, error)
	Save(ctx context.Context, file domain.CatalogFile) error
	// AddUser records chatID and reports whether it was not known before.
	AddUser(ctx context.Context, chatID int64) (bool, error)
	Users(ctx context.Context) ([]int64, error)
}
