package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	catalogPathKey  = "catalog.path"
	catalogFileName = "catalog.toml"
)

// CatalogRepository keeps the file catalog and the registered users in one
// TOML document.
type CatalogRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(cfg *viper.Viper) (*CatalogRepository, error) {
	path, err := resolvePath(cfg, catalogPathKey, catalogFileName)
	if err != nil {
		return nil, err
	}

	return &CatalogRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *CatalogRepository) Path() string {
	return r.path
}

func (r *CatalogRepository) Save(ctx context.Context, file domain.CatalogFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toFileSchema(file)
	updated := false
	for i := range doc.Files {
		if doc.Files[i].ID == encoded.ID {
			doc.Files[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		doc.Files = append(doc.Files, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.path, doc)
}

func (r *CatalogRepository) GetByID(ctx context.Context, id domain.CatalogFileID) (domain.CatalogFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogFile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.readSchema()
	if err != nil {
		return domain.CatalogFile{}, err
	}

	for _, entry := range doc.Files {
		if entry.ID == string(id) {
			return fromFileSchema(entry), nil
		}
	}

	return domain.CatalogFile{}, domain.ErrFileNotFound
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.CatalogFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	files := make([]domain.CatalogFile, 0, len(doc.Files))
	for _, entry := range doc.Files {
		files = append(files, fromFileSchema(entry))
	}

	return files, nil
}

func (r *CatalogRepository) AddUser(ctx context.Context, chatID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readSchema()
	if err != nil {
		return false, err
	}
	if slices.Contains(doc.Users, chatID) {
		return false, nil
	}

	doc.Users = append(doc.Users, chatID)
	if err := writeTOMLFile(r.path, doc); err != nil {
		return false, err
	}

	return true, nil
}

func (r *CatalogRepository) Users(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	return append([]int64(nil), doc.Users...), nil
}

func (r *CatalogRepository) readSchema() (catalogFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := catalogFileSchema{}
			doc.applyDefaults()
			return doc, nil
		}
		return catalogFileSchema{}, fmt.Errorf("read catalog file: %w", err)
	}

	var doc catalogFileSchema
	if err := toml.Unmarshal(data, &doc); err != nil {
		return catalogFileSchema{}, fmt.Errorf("decode catalog file: %w", err)
	}
	if err := doc.validateVersion(); err != nil {
		return catalogFileSchema{}, err
	}
	doc.applyDefaults()

	return doc, nil
}

func toFileSchema(file domain.CatalogFile) fileSchema {
	return fileSchema{
		ID:         string(file.ID),
		Name:       file.Name,
		TelegramID: file.TelegramID,
		Uploader:   file.Uploader,
		CreatedAt:  formatTime(file.CreatedAt),
	}
}

func fromFileSchema(schema fileSchema) domain.CatalogFile {
	return domain.CatalogFile{
		ID:         domain.CatalogFileID(schema.ID),
		Name:       schema.Name,
		TelegramID: schema.TelegramID,
		Uploader:   schema.Uploader,
		CreatedAt:  parseTime(schema.CreatedAt),
	}
}
