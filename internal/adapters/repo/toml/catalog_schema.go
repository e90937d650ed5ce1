package toml

import "fmt"

const currentCatalogSchemaVersion = 1

type catalogFileSchema struct {
	Version int          `toml:"version"`
	Files   []fileSchema `toml:"files"`
	Users   []int64      `toml:"users"`
}

func (s *catalogFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentCatalogSchemaVersion
	}
}

func (s catalogFileSchema) validateVersion() error {
	if s.Version > currentCatalogSchemaVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentCatalogSchemaVersion)
	}

	return nil
}

type fileSchema struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	TelegramID string `toml:"telegram_file_id"`
	Uploader   string `toml:"uploader"`
	CreatedAt  string `toml:"created_at"`
}
