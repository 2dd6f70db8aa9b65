package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// VerificationService handles verification requests, OCR extraction and
// response-letter drafting.
type VerificationService struct {
	verificationRepo ports.VerificationRepository
	settingsRepo     ports.SettingsRepository
	generator        ports.Generator
	dispatcher       ports.Dispatcher
	logger           *logger.Logger
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	verificationRepo ports.VerificationRepository,
	settingsRepo ports.SettingsRepository,
	generator ports.Generator,
	dispatcher ports.Dispatcher,
	logger *logger.Logger,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		settingsRepo:     settingsRepo,
		generator:        generator,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

// ListVerifications returns every stored verification request
func (s *VerificationService) ListVerifications(ctx context.Context) ([]entities.VerificationRequest, error) {
	return s.verificationRepo.List(ctx)
}

// GetVerification retrieves a verification request by ID
func (s *VerificationService) GetVerification(ctx context.Context, id string) (*entities.VerificationRequest, error) {
	return s.verificationRepo.GetByID(ctx, id)
}

// SaveVerification upserts a verification request. An empty ID creates a new
// record.
func (s *VerificationService) SaveVerification(ctx context.Context, v entities.VerificationRequest) (*entities.VerificationRequest, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = entities.WorkStatusTodo
	}

	if err := s.verificationRepo.Save(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed to save verification request: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyVerifications, &v)
	s.logger.Infow("Verification request saved", "request_id", v.ID)

	return &v, nil
}

// DeleteVerification removes a verification request
func (s *VerificationService) DeleteVerification(ctx context.Context, id string) error {
	if err := s.verificationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyVerifications, id)
	s.logger.Infow("Verification request deleted", "request_id", id)

	return nil
}

func decodeImages(images []string) ([][]byte, error) {
	decoded := make([][]byte, 0, len(images))
	for i, img := range images {
		data, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 image at index %d: %w", i, err)
		}
		decoded = append(decoded, data)
	}
	return decoded, nil
}

// ExtractFromImage runs AI OCR over a dispatch image and returns the fields
// it could read.
func (s *VerificationService) ExtractFromImage(ctx context.Context, req ports.ExtractRequest) (*ports.ExtractedVerification, error) {
	images, err := decodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	extracted, err := s.generator.ExtractVerificationInfo(ctx, images[0])
	if err != nil {
		s.logger.Errorw("OCR extraction failed", "error", err)
		return nil, fmt.Errorf("failed to extract document information")
	}

	return extracted, nil
}

// ReconstructDocument rebuilds the scanned dispatch pages into printable HTML
// and stores it on the verification request.
func (s *VerificationService) ReconstructDocument(ctx context.Context, id string, req ports.ExtractRequest) (*entities.VerificationRequest, error) {
	v, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := decodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	html, err := s.generator.ReconstructDocument(ctx, images)
	if err != nil {
		s.logger.Errorw("Document reconstruction failed", "request_id", id, "error", err)
		return nil, fmt.Errorf("failed to reconstruct document")
	}

	v.DocumentHTML = html
	if err := s.verificationRepo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save verification request: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyVerifications, v)
	s.logger.Infow("Verification document reconstructed", "request_id", id, "pages", len(images))

	return v, nil
}

// DraftResponseLetter drafts the response letter for a verification request.
// When a stored template is named its placeholders are filled; otherwise the
// letter is drafted free-form.
func (s *VerificationService) DraftResponseLetter(ctx context.Context, id string, req ports.DraftLetterRequest) (string, error) {
	v, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var tpl string
	if req.TemplateName != "" {
		stored, ok, err := s.settingsRepo.Template(ctx, req.TemplateName)
		if err != nil {
			return "", err
		}
		if ok {
			tpl = stored
		}
	}

	letter, err := s.generator.GenerateResponseLetter(ctx, v, tpl)
	if err != nil {
		s.logger.Errorw("Response letter generation failed", "request_id", id, "error", err)
		return "", fmt.Errorf("failed to generate response letter")
	}

	return letter, nil
}
