package ports

import (
	"context"

	"github.com/patroldesk/core/internal/domain/entities"
)

// Store is the flat key-value persistence port. Collection keys hold JSON
// arrays of full records; template and setting keys hold raw strings. The
// store is injected into repositories so tests can substitute an in-memory
// implementation.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Store keys. One key per collection; templates live under a prefix
// namespace.
const (
	KeyAccidents        = "accidents"
	KeyRegistrations    = "registrations"
	KeyCampaigns        = "campaigns"
	KeyVerifications    = "verifications"
	KeyResults          = "results"
	KeyDocuments        = "documents"
	KeyFolders          = "folders"
	KeyTasks            = "tasks"
	KeySyncEndpointURL  = "sync-endpoint-url"
	KeyReportDirections = "report-directions-text"
	TemplateKeyPrefix   = "template:"
)

// Dispatcher is the outbound mirror port: callers append an intent and move
// on. Implementations deliver at most once, never retry and never surface
// failures to the caller.
type Dispatcher interface {
	// RecordSaved mirrors one upserted entity of the named collection.
	RecordSaved(collection string, entity interface{})
	// RecordDeleted mirrors one deletion by id.
	RecordDeleted(collection, id string)
}

// TaskRepository persists calendar tasks.
type TaskRepository interface {
	List(ctx context.Context) ([]entities.Task, error)
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	Save(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, tasks []entities.Task) error
}

// RegistrationRepository persists vehicle-registration tallies.
type RegistrationRepository interface {
	List(ctx context.Context) ([]entities.VehicleRegistration, error)
	// SaveDaily upserts a batch sharing natural-key IDs: existing records
	// with matching IDs are replaced, everything else is kept.
	SaveDaily(ctx context.Context, records []entities.VehicleRegistration) error
	ReplaceAll(ctx context.Context, records []entities.VehicleRegistration) error
}

// CampaignRepository persists campaigns with their targets and logs.
type CampaignRepository interface {
	List(ctx context.Context) ([]entities.Campaign, error)
	GetByID(ctx context.Context, id string) (*entities.Campaign, error)
	Save(ctx context.Context, campaign *entities.Campaign) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, campaigns []entities.Campaign) error
}

// AccidentRepository persists traffic-accident cases.
type AccidentRepository interface {
	List(ctx context.Context) ([]entities.AccidentCase, error)
	GetByID(ctx context.Context, id string) (*entities.AccidentCase, error)
	Save(ctx context.Context, c *entities.AccidentCase) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, cases []entities.AccidentCase) error
}

// VerificationRepository persists verification requests.
type VerificationRepository interface {
	List(ctx context.Context) ([]entities.VerificationRequest, error)
	GetByID(ctx context.Context, id string) (*entities.VerificationRequest, error)
	Save(ctx context.Context, v *entities.VerificationRequest) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, reqs []entities.VerificationRequest) error
}

// ResultRepository persists work results.
type ResultRepository interface {
	List(ctx context.Context) ([]entities.WorkResult, error)
	GetByID(ctx context.Context, id string) (*entities.WorkResult, error)
	Save(ctx context.Context, r *entities.WorkResult) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, results []entities.WorkResult) error
}

// DocumentRepository persists documents.
type DocumentRepository interface {
	List(ctx context.Context) ([]entities.Document, error)
	GetByID(ctx context.Context, id string) (*entities.Document, error)
	Save(ctx context.Context, d *entities.Document) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, docs []entities.Document) error
}

// FolderRepository persists the document folder tree.
type FolderRepository interface {
	List(ctx context.Context) ([]entities.Folder, error)
	GetByID(ctx context.Context, id string) (*entities.Folder, error)
	Save(ctx context.Context, f *entities.Folder) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, folders []entities.Folder) error
}

// SettingsRepository holds the raw-string configuration and template keys.
type SettingsRepository interface {
	SyncURL(ctx context.Context) (string, error)
	SetSyncURL(ctx context.Context, url string) error
	ReportDirections(ctx context.Context) (string, error)
	SetReportDirections(ctx context.Context, text string) error
	Template(ctx context.Context, name string) (string, bool, error)
	SetTemplate(ctx context.Context, name, content string) error
}
