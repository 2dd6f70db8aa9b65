package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// CampaignService handles enforcement campaigns and their quota progress
type CampaignService struct {
	campaignRepo ports.CampaignRepository
	dispatcher   ports.Dispatcher
	logger       *logger.Logger
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaignRepo ports.CampaignRepository, dispatcher ports.Dispatcher, logger *logger.Logger) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// ListCampaigns returns every stored campaign
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	return s.campaignRepo.List(ctx)
}

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*entities.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func buildTargets(inputs []ports.CampaignTargetInput, existing []entities.CampaignTarget) []entities.CampaignTarget {
	current := make(map[string]int, len(existing))
	for _, t := range existing {
		current[t.ID] = t.Current
	}

	targets := make([]entities.CampaignTarget, 0, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		targets = append(targets, entities.CampaignTarget{
			ID:      id,
			Name:    in.Name,
			Target:  in.Target,
			Current: current[id],
			Unit:    in.Unit,
		})
	}
	return targets
}

// CreateCampaign creates a new campaign with zeroed target progress
func (s *CampaignService) CreateCampaign(ctx context.Context, req ports.CreateCampaignRequest) (*entities.Campaign, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("invalid campaign status: %s", req.Status)
	}

	campaign := &entities.Campaign{
		ID:               uuid.NewString(),
		Name:             req.Name,
		DispatchNumber:   req.DispatchNumber,
		DispatchDate:     req.DispatchDate,
		IssuingAuthority: req.IssuingAuthority,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Targets:          buildTargets(req.Targets, nil),
		Status:           req.Status,
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyCampaigns, campaign)
	s.logger.Infow("Campaign created", "campaign_id", campaign.ID, "name", campaign.Name)

	return campaign, nil
}

// UpdateCampaign rewrites a campaign's form fields. Target progress and the
// progress log are carried over; targets removed from the form are dropped.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, req ports.CreateCampaignRequest) (*entities.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("invalid campaign status: %s", req.Status)
	}

	campaign.Name = req.Name
	campaign.DispatchNumber = req.DispatchNumber
	campaign.DispatchDate = req.DispatchDate
	campaign.IssuingAuthority = req.IssuingAuthority
	campaign.Description = req.Description
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	campaign.Targets = buildTargets(req.Targets, campaign.Targets)
	campaign.Status = req.Status

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyCampaigns, campaign)
	s.logger.Infow("Campaign updated", "campaign_id", campaign.ID)

	return campaign, nil
}

// DeleteCampaign removes a campaign
func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) error {
	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyCampaigns, id)
	s.logger.Infow("Campaign deleted", "campaign_id", id)

	return nil
}

// LogProgress appends one daily progress entry: positive deltas increment
// their targets and the filtered set is recorded as an append-only log entry.
func (s *CampaignService) LogProgress(ctx context.Context, id string, req ports.LogProgressRequest) (*entities.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := campaign.ApplyProgress(req.Date, req.Deltas); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to log campaign progress: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyCampaigns, campaign)
	s.logger.Infow("Campaign progress logged", "campaign_id", campaign.ID, "date", req.Date)

	return campaign, nil
}
