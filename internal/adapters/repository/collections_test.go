package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/template"
)

func TestCollectionSaveUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(NewMemoryStore())

	if err := repo.Save(ctx, &entities.Task{ID: "a", Title: "Tuần tra"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &entities.Task{ID: "b", Title: "Họp giao ban"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &entities.Task{ID: "a", Title: "Tuần tra đêm"}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].Title != "Tuần tra đêm" {
		t.Errorf("upsert did not replace in place: %+v", tasks[0])
	}

	got, err := repo.GetByID(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Họp giao ban" {
		t.Errorf("GetByID returned %+v", got)
	}
}

func TestCollectionDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewCampaignRepo(NewMemoryStore())

	if err := repo.Delete(ctx, "nope"); !errors.Is(err, entities.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, entities.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}

	if err := repo.Save(ctx, &entities.Campaign{ID: "c1", Name: "Cao điểm"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty collection, got %d", len(list))
	}
}

func TestCollectionListEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepo(NewMemoryStore())

	results, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", results)
	}
}

func TestRegistrationSaveDaily(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepo(NewMemoryStore())

	mk := func(date string, rt entities.RegistrationType, vt entities.VehicleType, count int) entities.VehicleRegistration {
		return entities.VehicleRegistration{
			ID:          entities.RegistrationID(date, rt, vt),
			Date:        date,
			Type:        rt,
			VehicleType: vt,
			Count:       count,
		}
	}

	day1Car := mk("2025-03-01", entities.RegistrationNew, entities.VehicleCar, 2)
	day1Moto := mk("2025-03-01", entities.RegistrationNew, entities.VehicleMotorbike, 5)
	day2Car := mk("2025-03-02", entities.RegistrationNew, entities.VehicleCar, 1)

	if err := repo.SaveDaily(ctx, []entities.VehicleRegistration{day1Car, day1Moto, day2Car}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Resaving one of day 1's cells replaces it and leaves the rest alone.
	day1Car.Count = 7
	if err := repo.SaveDaily(ctx, []entities.VehicleRegistration{day1Car}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	byID := make(map[string]entities.VehicleRegistration, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	if byID[day1Car.ID].Count != 7 {
		t.Errorf("day1 car cell = %d, want 7", byID[day1Car.ID].Count)
	}
	if byID[day1Moto.ID].Count != 5 {
		t.Errorf("day1 motorbike cell touched: %d", byID[day1Moto.ID].Count)
	}
	if byID[day2Car.ID].Count != 1 {
		t.Errorf("other day touched: %d", byID[day2Car.ID].Count)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepo(NewMemoryStore())

	url, err := repo.SyncURL(ctx)
	if err != nil || url != "" {
		t.Fatalf("unset sync url: %q, %v", url, err)
	}

	if err := repo.SetSyncURL(ctx, "https://script.example/exec"); err != nil {
		t.Fatalf("set: %v", err)
	}
	url, err = repo.SyncURL(ctx)
	if err != nil || url != "https://script.example/exec" {
		t.Fatalf("stored sync url: %q, %v", url, err)
	}

	if err := repo.SetSyncURL(ctx, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	url, err = repo.SyncURL(ctx)
	if err != nil || url != "" {
		t.Fatalf("cleared sync url: %q, %v", url, err)
	}

	if _, ok, err := repo.Template(ctx, template.NameReport); ok || err != nil {
		t.Fatalf("unset template: ok=%v err=%v", ok, err)
	}
	if err := repo.SetTemplate(ctx, template.NameReport, "<div><<Kỳ>></div>"); err != nil {
		t.Fatalf("set template: %v", err)
	}
	content, ok, err := repo.Template(ctx, template.NameReport)
	if err != nil || !ok || content != "<div><<Kỳ>></div>" {
		t.Fatalf("stored template: %q ok=%v err=%v", content, ok, err)
	}
}

func TestMemoryStoreKeysPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, key := range []string{"template:report", "template:document", "tasks"} {
		if err := store.Set(ctx, key, []byte("x")); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	keys, err := store.Keys(ctx, "template:")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "template:document" || keys[1] != "template:report" {
		t.Errorf("unexpected keys: %v", keys)
	}
}
