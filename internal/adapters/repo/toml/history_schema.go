package toml

import "fmt"

const currentHistorySchemaVersion = 1

type historyFileSchema struct {
	Version int         `toml:"version"`
	Runs    []runSchema `toml:"runs"`
}

func (s *historyFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentHistorySchemaVersion
	}
}

func (s historyFileSchema) validateVersion() error {
	if s.Version > currentHistorySchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentHistorySchemaVersion)
	}

	return nil
}

type runSchema struct {
	Name       string          `toml:"name"`
	Outcome    string          `toml:"outcome"`
	Total      int             `toml:"total"`
	Attempted  int             `toml:"attempted"`
	Succeeded  int             `toml:"succeeded"`
	StartedAt  string          `toml:"started_at"`
	FinishedAt string          `toml:"finished_at"`
	Failures   []failureSchema `toml:"failures,omitempty"`
}

type failureSchema struct {
	Index int    `toml:"index"`
	Label string `toml:"label"`
	Error string `toml:"error"`
}
