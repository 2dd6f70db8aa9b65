package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/ports"
)

// collection stores one record type as a JSON array under a single key.
// Mutations re-read, modify and re-write the whole array; the store
// serializes concurrent writers.
type collection[T any] struct {
	store   ports.Store
	key     string
	id      func(*T) string
	missing error
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s collection: %w", c.key, err)
	}
	return items, nil
}

func (c *collection[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, raw)
}

// List returns every record in the collection
func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// GetByID returns the record with the given id
func (c *collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, c.missing
}

// Save upserts one record by id: an existing record with the same id is
// replaced in place, otherwise the record is appended.
func (c *collection[T]) Save(ctx context.Context, item *T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if c.id(&items[i]) == c.id(item) {
			items[i] = *item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, *item)
	}

	return c.persist(ctx, items)
}

// Delete removes the record with the given id
func (c *collection[T]) Delete(ctx context.Context, id string) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for i := range items {
		if c.id(&items[i]) == id {
			found = true
			continue
		}
		kept = append(kept, items[i])
	}
	if !found {
		return c.missing
	}

	return c.persist(ctx, kept)
}

// ReplaceAll overwrites the whole collection
func (c *collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	return c.persist(ctx, items)
}

// TaskRepo persists calendar tasks.
type TaskRepo struct {
	collection[entities.Task]
}

// NewTaskRepo creates a task repository over the record store
func NewTaskRepo(store ports.Store) *TaskRepo {
	return &TaskRepo{collection[entities.Task]{
		store:   store,
		key:     ports.KeyTasks,
		id:      func(t *entities.Task) string { return t.ID },
		missing: entities.ErrTaskNotFound,
	}}
}

// CampaignRepo persists campaigns with their targets and logs.
type CampaignRepo struct {
	collection[entities.Campaign]
}

// NewCampaignRepo creates a campaign repository over the record store
func NewCampaignRepo(store ports.Store) *CampaignRepo {
	return &CampaignRepo{collection[entities.Campaign]{
		store:   store,
		key:     ports.KeyCampaigns,
		id:      func(c *entities.Campaign) string { return c.ID },
		missing: entities.ErrCampaignNotFound,
	}}
}

// AccidentRepo persists traffic-accident cases.
type AccidentRepo struct {
	collection[entities.AccidentCase]
}

// NewAccidentRepo creates an accident-case repository over the record store
func NewAccidentRepo(store ports.Store) *AccidentRepo {
	return &AccidentRepo{collection[entities.AccidentCase]{
		store:   store,
		key:     ports.KeyAccidents,
		id:      func(c *entities.AccidentCase) string { return c.ID },
		missing: entities.ErrAccidentNotFound,
	}}
}

// VerificationRepo persists verification requests.
type VerificationRepo struct {
	collection[entities.VerificationRequest]
}

// NewVerificationRepo creates a verification-request repository over the record store
func NewVerificationRepo(store ports.Store) *VerificationRepo {
	return &VerificationRepo{collection[entities.VerificationRequest]{
		store:   store,
		key:     ports.KeyVerifications,
		id:      func(v *entities.VerificationRequest) string { return v.ID },
		missing: entities.ErrVerificationNotFound,
	}}
}

// ResultRepo persists work results.
type ResultRepo struct {
	collection[entities.WorkResult]
}

// NewResultRepo creates a work-result repository over the record store
func NewResultRepo(store ports.Store) *ResultRepo {
	return &ResultRepo{collection[entities.WorkResult]{
		store:   store,
		key:     ports.KeyResults,
		id:      func(r *entities.WorkResult) string { return r.ID },
		missing: entities.ErrResultNotFound,
	}}
}

// DocumentRepo persists documents.
type DocumentRepo struct {
	collection[entities.Document]
}

// NewDocumentRepo creates a document repository over the record store
func NewDocumentRepo(store ports.Store) *DocumentRepo {
	return &DocumentRepo{collection[entities.Document]{
		store:   store,
		key:     ports.KeyDocuments,
		id:      func(d *entities.Document) string { return d.ID },
		missing: entities.ErrDocumentNotFound,
	}}
}

// FolderRepo persists the document folder tree.
type FolderRepo struct {
	collection[entities.Folder]
}

// NewFolderRepo creates a folder repository over the record store
func NewFolderRepo(store ports.Store) *FolderRepo {
	return &FolderRepo{collection[entities.Folder]{
		store:   store,
		key:     ports.KeyFolders,
		id:      func(f *entities.Folder) string { return f.ID },
		missing: entities.ErrFolderNotFound,
	}}
}

// RegistrationRepo persists vehicle-registration tallies. Registration IDs
// are derived from date, registration type and vehicle type, so a day's
// batch replaces exactly the existing records for that day's cells.
type RegistrationRepo struct {
	inner collection[entities.VehicleRegistration]
}

// NewRegistrationRepo creates a registration repository over the record store
func NewRegistrationRepo(store ports.Store) *RegistrationRepo {
	return &RegistrationRepo{inner: collection[entities.VehicleRegistration]{
		store: store,
		key:   ports.KeyRegistrations,
		id:    func(r *entities.VehicleRegistration) string { return r.ID },
	}}
}

// List returns every registration record
func (r *RegistrationRepo) List(ctx context.Context) ([]entities.VehicleRegistration, error) {
	return r.inner.List(ctx)
}

// SaveDaily upserts a batch of registration records: existing records with
// matching IDs are replaced, everything else is kept.
func (r *RegistrationRepo) SaveDaily(ctx context.Context, records []entities.VehicleRegistration) error {
	existing, err := r.inner.load(ctx)
	if err != nil {
		return err
	}

	incoming := make(map[string]struct{}, len(records))
	for i := range records {
		incoming[records[i].ID] = struct{}{}
	}

	kept := existing[:0]
	for i := range existing {
		if _, replaced := incoming[existing[i].ID]; !replaced {
			kept = append(kept, existing[i])
		}
	}
	kept = append(kept, records...)

	return r.inner.persist(ctx, kept)
}

// ReplaceAll overwrites the whole registration collection
func (r *RegistrationRepo) ReplaceAll(ctx context.Context, records []entities.VehicleRegistration) error {
	return r.inner.ReplaceAll(ctx, records)
}

var (
	_ ports.TaskRepository         = (*TaskRepo)(nil)
	_ ports.CampaignRepository     = (*CampaignRepo)(nil)
	_ ports.AccidentRepository     = (*AccidentRepo)(nil)
	_ ports.VerificationRepository = (*VerificationRepo)(nil)
	_ ports.ResultRepository       = (*ResultRepo)(nil)
	_ ports.DocumentRepository     = (*DocumentRepo)(nil)
	_ ports.FolderRepository       = (*FolderRepo)(nil)
	_ ports.RegistrationRepository = (*RegistrationRepo)(nil)
)
