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

// AccidentService handles traffic-accident case records
type AccidentService struct {
	accidentRepo ports.AccidentRepository
	dispatcher   ports.Dispatcher
	logger       *logger.Logger
}

// NewAccidentService creates a new accident service
func NewAccidentService(accidentRepo ports.AccidentRepository, dispatcher ports.Dispatcher, logger *logger.Logger) *AccidentService {
	return &AccidentService{
		accidentRepo: accidentRepo,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// ListAccidents returns accident cases inside the date range
func (s *AccidentService) ListAccidents(ctx context.Context, rng stats.DateRange) ([]entities.AccidentCase, error) {
	cases, err := s.accidentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.FilterAccidents(cases, rng), nil
}

// GetAccident retrieves an accident case by ID
func (s *AccidentService) GetAccident(ctx context.Context, id string) (*entities.AccidentCase, error) {
	return s.accidentRepo.GetByID(ctx, id)
}

// SaveAccident upserts an accident case. An empty ID creates a new record.
func (s *AccidentService) SaveAccident(ctx context.Context, c entities.AccidentCase) (*entities.AccidentCase, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if err := s.accidentRepo.Save(ctx, &c); err != nil {
		return nil, fmt.Errorf("failed to save accident case: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyAccidents, &c)
	s.logger.Infow("Accident case saved", "case_id", c.ID, "date", c.Date)

	return &c, nil
}

// DeleteAccident removes an accident case
func (s *AccidentService) DeleteAccident(ctx context.Context, id string) error {
	if err := s.accidentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyAccidents, id)
	s.logger.Infow("Accident case deleted", "case_id", id)

	return nil
}
