package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/stats"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// ResultService handles day-to-day work result records
type ResultService struct {
	resultRepo ports.ResultRepository
	dispatcher ports.Dispatcher
	logger     *logger.Logger
}

// NewResultService creates a new result service
func NewResultService(resultRepo ports.ResultRepository, dispatcher ports.Dispatcher, logger *logger.Logger) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListResults returns results inside the date range, every result when the
// range is open on both ends.
func (s *ResultService) ListResults(ctx context.Context, rng stats.DateRange) ([]entities.WorkResult, error) {
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.FilterResults(results, rng), nil
}

// GetResult retrieves a result by ID
func (s *ResultService) GetResult(ctx context.Context, id string) (*entities.WorkResult, error) {
	return s.resultRepo.GetByID(ctx, id)
}

// SaveResult upserts a work result, normalizing the category-dependent
// fields. An empty ID creates a new record.
func (s *ResultService) SaveResult(ctx context.Context, result entities.WorkResult) (*entities.WorkResult, error) {
	if !result.Category.IsValid() {
		return nil, fmt.Errorf("invalid result category: %s", result.Category)
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	result.Normalize()

	if err := s.resultRepo.Save(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to save work result: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyResults, &result)
	s.logger.Infow("Work result saved", "result_id", result.ID, "category", result.Category)

	return &result, nil
}

// DeleteResult removes a work result
func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	if err := s.resultRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyResults, id)
	s.logger.Infow("Work result deleted", "result_id", id)

	return nil
}
