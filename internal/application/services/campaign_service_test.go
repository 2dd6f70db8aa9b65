package services

import (
	"context"
	"errors"
	"testing"

	"github.com/patroldesk/core/internal/adapters/repository"
	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/ports"
)

func newCampaignService() (*CampaignService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	repo := repository.NewCampaignRepo(repository.NewMemoryStore())
	return NewCampaignService(repo, dispatcher, testLogger()), dispatcher
}

func campaignForm() ports.CreateCampaignRequest {
	return ports.CreateCampaignRequest{
		Name:      "Cao điểm nồng độ cồn",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Status:    entities.CampaignActive,
		Targets: []ports.CampaignTargetInput{
			{Name: "Xử phạt", Target: 20, Unit: "trường hợp"},
			{Name: "Tuyên truyền", Target: 5, Unit: "buổi"},
		},
	}
}

func TestCreateCampaignAssignsTargetIDs(t *testing.T) {
	svc, dispatcher := newCampaignService()

	campaign, err := svc.CreateCampaign(context.Background(), campaignForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if campaign.ID == "" {
		t.Error("campaign ID not assigned")
	}
	if len(campaign.Targets) != 2 {
		t.Fatalf("targets = %+v", campaign.Targets)
	}
	for _, target := range campaign.Targets {
		if target.ID == "" {
			t.Error("target ID not assigned")
		}
		if target.Current != 0 {
			t.Errorf("new target has progress: %+v", target)
		}
	}
	if len(dispatcher.saved) != 1 || dispatcher.saved[0] != ports.KeyCampaigns {
		t.Errorf("mirror events = %v", dispatcher.saved)
	}
}

func TestCreateCampaignRejectsUnknownStatus(t *testing.T) {
	svc, _ := newCampaignService()
	form := campaignForm()
	form.Status = entities.CampaignStatus("Paused")

	if _, err := svc.CreateCampaign(context.Background(), form); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateCampaignPreservesProgress(t *testing.T) {
	svc, _ := newCampaignService()
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, campaignForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.LogProgress(ctx, campaign.ID, ports.LogProgressRequest{
		Date:   "2025-03-05",
		Deltas: []entities.ProgressDelta{{TargetID: campaign.Targets[0].ID, Value: 8}},
	}); err != nil {
		t.Fatalf("log progress: %v", err)
	}

	// Keep the first target, drop the second, add a new one.
	form := campaignForm()
	form.Name = "Cao điểm sửa đổi"
	form.Targets = []ports.CampaignTargetInput{
		{ID: campaign.Targets[0].ID, Name: "Xử phạt", Target: 30, Unit: "trường hợp"},
		{Name: "Kiểm tra quán bar", Target: 10, Unit: "lượt"},
	}

	updated, err := svc.UpdateCampaign(ctx, campaign.ID, form)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Cao điểm sửa đổi" {
		t.Errorf("name = %s", updated.Name)
	}
	if len(updated.Targets) != 2 {
		t.Fatalf("targets = %+v", updated.Targets)
	}
	if updated.Targets[0].Current != 8 || updated.Targets[0].Target != 30 {
		t.Errorf("kept target lost progress: %+v", updated.Targets[0])
	}
	if updated.Targets[1].Current != 0 || updated.Targets[1].ID == "" {
		t.Errorf("new target = %+v", updated.Targets[1])
	}
	if len(updated.Logs) != 1 {
		t.Errorf("progress log not carried over: %+v", updated.Logs)
	}
}

func TestLogProgressAppendsAndMirrors(t *testing.T) {
	svc, dispatcher := newCampaignService()
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, campaignForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.LogProgress(ctx, campaign.ID, ports.LogProgressRequest{
		Date: "2025-03-05",
		Deltas: []entities.ProgressDelta{
			{TargetID: campaign.Targets[0].ID, Value: 3},
			{TargetID: campaign.Targets[1].ID, Value: 0},
		},
	})
	if err != nil {
		t.Fatalf("log progress: %v", err)
	}

	if updated.Targets[0].Current != 3 {
		t.Errorf("target current = %d", updated.Targets[0].Current)
	}
	if len(updated.Logs) != 1 || len(updated.Logs[0].Results) != 1 {
		t.Errorf("logs = %+v", updated.Logs)
	}
	// Create plus the progress save.
	if len(dispatcher.saved) != 2 {
		t.Errorf("mirror events = %v", dispatcher.saved)
	}

	if _, err := svc.LogProgress(ctx, campaign.ID, ports.LogProgressRequest{
		Date:   "2025-03-06",
		Deltas: []entities.ProgressDelta{{TargetID: campaign.Targets[0].ID, Value: -4}},
	}); !errors.Is(err, entities.ErrEmptyProgress) {
		t.Errorf("expected ErrEmptyProgress, got %v", err)
	}

	if _, err := svc.LogProgress(ctx, "ghost", ports.LogProgressRequest{
		Date:   "2025-03-06",
		Deltas: []entities.ProgressDelta{{TargetID: "x", Value: 1}},
	}); !errors.Is(err, entities.ErrCampaignNotFound) {
		t.Errorf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestDeleteCampaign(t *testing.T) {
	svc, dispatcher := newCampaignService()
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, campaignForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteCampaign(ctx, campaign.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(dispatcher.deleted) != 1 {
		t.Errorf("mirror deletes = %v", dispatcher.deleted)
	}
	if _, err := svc.GetCampaign(ctx, campaign.ID); !errors.Is(err, entities.ErrCampaignNotFound) {
		t.Errorf("expected ErrCampaignNotFound, got %v", err)
	}
}
