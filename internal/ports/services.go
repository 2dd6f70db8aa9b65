package ports

import (
	"context"

	"github.com/patroldesk/core/internal/domain/entities"
)

// Generator is the opaque generative-text port. Implementations talk to an
// external model; failures surface as a single generic error.
type Generator interface {
	// ExtractVerificationInfo runs OCR extraction over a document image and
	// returns the fields it could read.
	ExtractVerificationInfo(ctx context.Context, imageJPEG []byte) (*ExtractedVerification, error)
	// ReconstructDocument rebuilds scanned document pages into printable HTML.
	ReconstructDocument(ctx context.Context, pagesJPEG [][]byte) (string, error)
	// GenerateResponseLetter drafts a verification response, filling the
	// template when one is given and free-drafting otherwise.
	GenerateResponseLetter(ctx context.Context, req *entities.VerificationRequest, tpl string) (string, error)
	// GenerateReport writes the narrative report body from the aggregated
	// context.
	GenerateReport(ctx context.Context, reportCtx interface{}, suggestions, directions string) (string, error)
}

// ExtractedVerification holds the OCR field schema returned by the model.
type ExtractedVerification struct {
	DispatchNumber   string `json:"dispatchNumber"`
	Date             string `json:"date"`
	OffenderName     string `json:"offenderName"`
	IDCard           string `json:"idCard"`
	YearOfBirth      string `json:"yob"`
	Address          string `json:"address"`
	ViolationContent string `json:"violationContent"`
}

// Request types

// CreateTaskRequest carries the task form fields. Recurrence is kept only
// when enabled.
type CreateTaskRequest struct {
	Title       string                     `json:"title" validate:"required,max=300"`
	Description string                     `json:"description" validate:"max=2000"`
	Date        string                     `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string                     `json:"time" validate:"omitempty,datetime=15:04"`
	Type        entities.TaskType          `json:"type" validate:"required"`
	Priority    entities.TaskPriority      `json:"priority" validate:"required"`
	Recurrence  *entities.RecurrenceConfig `json:"recurrence"`
}

// UpdateTaskRequest carries partial task edits; nil fields are left as-is.
type UpdateTaskRequest struct {
	Title       *string                    `json:"title" validate:"omitempty,max=300"`
	Description *string                    `json:"description" validate:"omitempty,max=2000"`
	Date        *string                    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string                    `json:"time" validate:"omitempty,datetime=15:04"`
	Type        *entities.TaskType         `json:"type"`
	Priority    *entities.TaskPriority     `json:"priority"`
	IsCompleted *bool                      `json:"isCompleted"`
	Recurrence  *entities.RecurrenceConfig `json:"recurrence"`
}

// RegistrationCell is one matrix form cell for a daily registration entry.
type RegistrationCell struct {
	Type        entities.RegistrationType `json:"type" validate:"required"`
	VehicleType entities.VehicleType      `json:"vehicleType" validate:"required"`
	Count       int                       `json:"count" validate:"min=0"`
	Revenue     float64                   `json:"revenue" validate:"min=0"`
}

// SaveDailyRegistrationsRequest is the whole matrix submitted for one date.
// Zero cells are dropped; the rest are upserted under their natural key.
type SaveDailyRegistrationsRequest struct {
	Date  string             `json:"date" validate:"required,datetime=2006-01-02"`
	Cells []RegistrationCell `json:"cells" validate:"required,dive"`
}

// CreateCampaignRequest carries the campaign form fields.
type CreateCampaignRequest struct {
	Name             string                  `json:"name" validate:"required,max=300"`
	DispatchNumber   string                  `json:"dispatchNumber"`
	DispatchDate     string                  `json:"dispatchDate" validate:"omitempty,datetime=2006-01-02"`
	IssuingAuthority string                  `json:"issuingAuthority"`
	Description      string                  `json:"description"`
	StartDate        string                  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string                  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Status           entities.CampaignStatus `json:"status" validate:"required"`
	Targets          []CampaignTargetInput   `json:"targets" validate:"dive"`
}

// CampaignTargetInput is one quota line in the campaign form. An empty ID
// creates a new target.
type CampaignTargetInput struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required,max=300"`
	Target int    `json:"target" validate:"min=0"`
	Unit   string `json:"unit" validate:"max=50"`
}

// LogProgressRequest appends one daily progress entry to a campaign.
type LogProgressRequest struct {
	Date   string                   `json:"date" validate:"required,datetime=2006-01-02"`
	Deltas []entities.ProgressDelta `json:"deltas" validate:"required"`
}

// SaveDocumentRequest carries the document form plus the conflict choice:
// when OverwriteID is set the save replaces that document instead of failing
// on a duplicate name.
type SaveDocumentRequest struct {
	Document    entities.Document `json:"document" validate:"required"`
	OverwriteID string            `json:"overwriteId"`
	AsCopy      bool              `json:"asCopy"`
}

// GenerateReportRequest selects the reporting period.
type GenerateReportRequest struct {
	Period      string `json:"period" validate:"required,oneof=week month quarter year"`
	Suggestions string `json:"suggestions"`
}

// DraftLetterRequest optionally names the stored template to fill.
type DraftLetterRequest struct {
	TemplateName string `json:"templateName"`
}

// ExtractRequest carries base64-encoded JPEG page images.
type ExtractRequest struct {
	Images []string `json:"images" validate:"required,min=1"`
}
