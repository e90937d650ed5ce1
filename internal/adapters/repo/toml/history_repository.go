package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	historyPathKey  = "groups.history_path"
	historyFileName = "history.toml"

	// MaxHistoryRuns caps the file; the oldest runs are dropped first.
	MaxHistoryRuns = 50
)

type HistoryRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.RunHistory = (*HistoryRepository)(nil)

func NewHistoryRepository(cfg *viper.Viper) (*HistoryRepository, error) {
	path, err := resolvePath(cfg, historyPathKey, historyFileName)
	if err != nil {
		return nil, err
	}

	return &HistoryRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *HistoryRepository) Path() string {
	return r.path
}

func (r *HistoryRepository) Append(ctx context.Context, record domain.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readSchema()
	if err != nil {
		return err
	}

	doc.Runs = append(doc.Runs, toRunSchema(record))
	if extra := len(doc.Runs) - MaxHistoryRuns; extra > 0 {
		doc.Runs = doc.Runs[extra:]
	}

	return writeTOMLFile(r.path, doc)
}

func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.RunRecord, 0, len(doc.Runs))
	for i := len(doc.Runs) - 1; i >= 0; i-- {
		if limit > 0 && len(records) == limit {
			break
		}
		records = append(records, fromRunSchema(doc.Runs[i]))
	}

	return records, nil
}

func (r *HistoryRepository) readSchema() (historyFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := historyFileSchema{}
			doc.applyDefaults()
			return doc, nil
		}
		return historyFileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var doc historyFileSchema
	if err := toml.Unmarshal(data, &doc); err != nil {
		return historyFileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := doc.validateVersion(); err != nil {
		return historyFileSchema{}, err
	}
	doc.applyDefaults()

	return doc, nil
}

func toRunSchema(record domain.RunRecord) runSchema {
	failures := make([]failureSchema, 0, len(record.Report.Failures))
	for _, f := range record.Report.Failures {
		failures = append(failures, failureSchema{Index: f.Index, Label: f.Label, Error: f.Err})
	}

	return runSchema{
		Name:       record.Name,
		Outcome:    string(record.Report.Outcome),
		Total:      record.Report.Total,
		Attempted:  record.Report.Attempted,
		Succeeded:  record.Report.Succeeded,
		StartedAt:  formatTime(record.StartedAt),
		FinishedAt: formatTime(record.FinishedAt),
		Failures:   failures,
	}
}

func fromRunSchema(schema runSchema) domain.RunRecord {
	var failures []domain.UnitFailure
	for _, f := range schema.Failures {
		failures = append(failures, domain.UnitFailure{Index: f.Index, Label: f.Label, Err: f.Error})
	}

	return domain.RunRecord{
		Name: schema.Name,
		Report: domain.RunReport{
			Outcome:   domain.RunOutcome(schema.Outcome),
			Total:     schema.Total,
			Attempted: schema.Attempted,
			Succeeded: schema.Succeeded,
			Failures:  failures,
		},
		StartedAt:  parseTime(schema.StartedAt),
		FinishedAt: parseTime(schema.FinishedAt),
	}
}
