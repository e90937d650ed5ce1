package application

import (
	"context"
	"fmt"

	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

const DefaultHistoryLimit = 10

type HistoryService struct {
	history ports.RunHistory
}

func NewHistoryService(history ports.RunHistory) *HistoryService {
	return &HistoryService{history: history}
}

func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list run history: %w", err)
	}
	return records, nil
}
