package services

import (
	"context"
	"fmt"

	"github.com/patroldesk/core/internal/adapters/mirror"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// SyncService manages the mirror endpoint configuration and the destructive
// pull that re-seeds local collections from the mirror.
type SyncService struct {
	client           *mirror.Client
	settingsRepo     ports.SettingsRepository
	taskRepo         ports.TaskRepository
	regRepo          ports.RegistrationRepository
	campaignRepo     ports.CampaignRepository
	accidentRepo     ports.AccidentRepository
	verificationRepo ports.VerificationRepository
	resultRepo       ports.ResultRepository
	documentRepo     ports.DocumentRepository
	folderRepo       ports.FolderRepository
	logger           *logger.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	client *mirror.Client,
	settingsRepo ports.SettingsRepository,
	taskRepo ports.TaskRepository,
	regRepo ports.RegistrationRepository,
	campaignRepo ports.CampaignRepository,
	accidentRepo ports.AccidentRepository,
	verificationRepo ports.VerificationRepository,
	resultRepo ports.ResultRepository,
	documentRepo ports.DocumentRepository,
	folderRepo ports.FolderRepository,
	logger *logger.Logger,
) *SyncService {
	return &SyncService{
		client:           client,
		settingsRepo:     settingsRepo,
		taskRepo:         taskRepo,
		regRepo:          regRepo,
		campaignRepo:     campaignRepo,
		accidentRepo:     accidentRepo,
		verificationRepo: verificationRepo,
		resultRepo:       resultRepo,
		documentRepo:     documentRepo,
		folderRepo:       folderRepo,
		logger:           logger,
	}
}

// EndpointURL returns the stored mirror endpoint URL
func (s *SyncService) EndpointURL(ctx context.Context) (string, error) {
	return s.settingsRepo.SyncURL(ctx)
}

// SetEndpointURL stores the mirror endpoint URL; empty turns the mirror off
func (s *SyncService) SetEndpointURL(ctx context.Context, url string) error {
	if err := s.settingsRepo.SetSyncURL(ctx, url); err != nil {
		return err
	}
	s.logger.Infow("Mirror endpoint updated", "configured", url != "")
	return nil
}

// PullAll fetches the full mirror snapshot and overwrites every local
// collection present in it. Collections the mirror does not return are left
// untouched. There is no merge: local records absent from the snapshot are
// lost for the collections it covers.
func (s *SyncService) PullAll(ctx context.Context) error {
	snapshot, err := s.client.PullAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to pull mirror snapshot: %w", err)
	}

	if snapshot.Tasks != nil {
		if err := s.taskRepo.ReplaceAll(ctx, snapshot.Tasks); err != nil {
			return err
		}
	}
	if snapshot.Registrations != nil {
		if err := s.regRepo.ReplaceAll(ctx, snapshot.Registrations); err != nil {
			return err
		}
	}
	if snapshot.Campaigns != nil {
		if err := s.campaignRepo.ReplaceAll(ctx, snapshot.Campaigns); err != nil {
			return err
		}
	}
	if snapshot.Accidents != nil {
		if err := s.accidentRepo.ReplaceAll(ctx, snapshot.Accidents); err != nil {
			return err
		}
	}
	if snapshot.Verifications != nil {
		if err := s.verificationRepo.ReplaceAll(ctx, snapshot.Verifications); err != nil {
			return err
		}
	}
	if snapshot.Results != nil {
		if err := s.resultRepo.ReplaceAll(ctx, snapshot.Results); err != nil {
			return err
		}
	}
	if snapshot.Documents != nil {
		if err := s.documentRepo.ReplaceAll(ctx, snapshot.Documents); err != nil {
			return err
		}
	}
	if snapshot.Folders != nil {
		if err := s.folderRepo.ReplaceAll(ctx, snapshot.Folders); err != nil {
			return err
		}
	}

	s.logger.Infow("Mirror snapshot pulled",
		"tasks", len(snapshot.Tasks),
		"registrations", len(snapshot.Registrations),
		"campaigns", len(snapshot.Campaigns),
		"accidents", len(snapshot.Accidents),
		"verifications", len(snapshot.Verifications),
		"results", len(snapshot.Results),
		"documents", len(snapshot.Documents),
		"folders", len(snapshot.Folders),
	)

	return nil
}
