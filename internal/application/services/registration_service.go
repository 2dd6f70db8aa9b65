package services

import (
	"context"
	"fmt"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/stats"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// RegistrationService handles vehicle-registration tallies and their
// aggregation.
type RegistrationService struct {
	regRepo    ports.RegistrationRepository
	dispatcher ports.Dispatcher
	logger     *logger.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(regRepo ports.RegistrationRepository, dispatcher ports.Dispatcher, logger *logger.Logger) *RegistrationService {
	return &RegistrationService{
		regRepo:    regRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListRegistrations returns registration records inside the date range,
// grouped per date, newest date first.
func (s *RegistrationService) ListRegistrations(ctx context.Context, rng stats.DateRange) ([]stats.DailyGroup, error) {
	records, err := s.regRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.GroupByDate(records, rng), nil
}

// SaveDaily upserts one day's registration matrix. Cells with neither count
// nor revenue are dropped; the rest are stored under their natural key, so
// re-submitting a day replaces exactly that day's cells.
func (s *RegistrationService) SaveDaily(ctx context.Context, req ports.SaveDailyRegistrationsRequest) ([]entities.VehicleRegistration, error) {
	records := make([]entities.VehicleRegistration, 0, len(req.Cells))
	for _, cell := range req.Cells {
		if !cell.Type.IsValid() {
			return nil, fmt.Errorf("invalid registration type: %s", cell.Type)
		}
		if !cell.VehicleType.IsValid() {
			return nil, fmt.Errorf("invalid vehicle type: %s", cell.VehicleType)
		}
		if cell.Count == 0 && cell.Revenue == 0 {
			continue
		}
		records = append(records, entities.VehicleRegistration{
			ID:          entities.RegistrationID(req.Date, cell.Type, cell.VehicleType),
			Date:        req.Date,
			Type:        cell.Type,
			VehicleType: cell.VehicleType,
			Count:       cell.Count,
			Revenue:     cell.Revenue,
		})
	}

	if err := s.regRepo.SaveDaily(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save daily registrations: %w", err)
	}

	for i := range records {
		s.dispatcher.RecordSaved(ports.KeyRegistrations, &records[i])
	}
	s.logger.Infow("Daily registrations saved", "date", req.Date, "cells", len(records))

	return records, nil
}

// Summary is the aggregated registration view for a date range.
type Summary struct {
	Matrix stats.Matrix `json:"matrix"`
	Totals stats.Totals `json:"totals"`
}

// Summarize aggregates registrations in the range into the dense matrix plus
// totals.
func (s *RegistrationService) Summarize(ctx context.Context, rng stats.DateRange) (*Summary, error) {
	records, err := s.regRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matrix := stats.AggregateRegistrations(records, rng)
	return &Summary{
		Matrix: matrix,
		Totals: matrix.Totals(),
	}, nil
}
