package repository

import (
	"context"

	"github.com/patroldesk/core/internal/ports"
)

// SettingsRepo holds the raw-string configuration and template records.
type SettingsRepo struct {
	store ports.Store
}

// NewSettingsRepo creates a settings repository over the record store
func NewSettingsRepo(store ports.Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

func (r *SettingsRepo) getString(ctx context.Context, key string) (string, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// SyncURL returns the stored mirror endpoint URL, empty when unset
func (r *SettingsRepo) SyncURL(ctx context.Context) (string, error) {
	return r.getString(ctx, ports.KeySyncEndpointURL)
}

// SetSyncURL stores the mirror endpoint URL; empty clears it
func (r *SettingsRepo) SetSyncURL(ctx context.Context, url string) error {
	if url == "" {
		return r.store.Delete(ctx, ports.KeySyncEndpointURL)
	}
	return r.store.Set(ctx, ports.KeySyncEndpointURL, []byte(url))
}

// ReportDirections returns the stored report directions text, empty when unset
func (r *SettingsRepo) ReportDirections(ctx context.Context) (string, error) {
	return r.getString(ctx, ports.KeyReportDirections)
}

// SetReportDirections stores the report directions text
func (r *SettingsRepo) SetReportDirections(ctx context.Context, text string) error {
	return r.store.Set(ctx, ports.KeyReportDirections, []byte(text))
}

// Template returns the stored template content by name
func (r *SettingsRepo) Template(ctx context.Context, name string) (string, bool, error) {
	raw, ok, err := r.store.Get(ctx, ports.TemplateKeyPrefix+name)
	if err != nil || !ok {
		return "", false, err
	}
	return string(raw), true, nil
}

// SetTemplate stores template content under name
func (r *SettingsRepo) SetTemplate(ctx context.Context, name, content string) error {
	return r.store.Set(ctx, ports.TemplateKeyPrefix+name, []byte(content))
}

var _ ports.SettingsRepository = (*SettingsRepo)(nil)
