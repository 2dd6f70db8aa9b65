package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/patroldesk/core/internal/adapters/repository"
	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/stats"
	"github.com/patroldesk/core/internal/domain/template"
	"github.com/patroldesk/core/internal/ports"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return d
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name       string
		period     string
		today      string
		start, end string
	}{
		{"week from wednesday", "week", "2025-03-12", "2025-03-10", "2025-03-16"},
		{"week from monday", "week", "2025-03-10", "2025-03-10", "2025-03-16"},
		{"week from sunday", "week", "2025-03-16", "2025-03-10", "2025-03-16"},
		{"month", "month", "2025-02-14", "2025-02-01", "2025-02-28"},
		{"quarter q1", "quarter", "2025-02-14", "2025-01-01", "2025-03-31"},
		{"quarter q4", "quarter", "2025-11-30", "2025-10-01", "2025-12-31"},
		{"year", "year", "2025-06-15", "2025-01-01", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := resolvePeriod(tt.period, mustDate(t, tt.today))
			if err != nil {
				t.Fatalf("resolvePeriod: %v", err)
			}
			if rng.Start != tt.start || rng.End != tt.end {
				t.Errorf("range = %s..%s, want %s..%s", rng.Start, rng.End, tt.start, tt.end)
			}
		})
	}

	if _, err := resolvePeriod("decade", time.Now()); err == nil {
		t.Error("unknown period should error")
	}
}

func newReportService(t *testing.T, gen ports.Generator, today string) (*ReportService, *repository.SettingsRepo, context.Context) {
	t.Helper()
	store := repository.NewMemoryStore()
	settings := repository.NewSettingsRepo(store)
	svc := NewReportService(
		repository.NewAccidentRepo(store),
		repository.NewCampaignRepo(store),
		repository.NewRegistrationRepo(store),
		repository.NewResultRepo(store),
		settings,
		gen,
		testLogger(),
	)
	svc.now = func() time.Time { return mustDate(t, today) }
	return svc, settings, context.Background()
}

func TestBuildContext(t *testing.T) {
	svc, _, ctx := newReportService(t, &stubGenerator{}, "2025-03-12")
	store := repository.NewMemoryStore()
	accidents := repository.NewAccidentRepo(store)
	campaigns := repository.NewCampaignRepo(store)
	results := repository.NewResultRepo(store)
	svc.accidentRepo = accidents
	svc.campaignRepo = campaigns
	svc.resultRepo = results
	svc.regRepo = repository.NewRegistrationRepo(store)

	if err := accidents.Save(ctx, &entities.AccidentCase{
		ID: "a1", Date: "2025-03-11", Location: "Ngã tư chợ", Content: "Va chạm xe máy",
		Fatalities: 0, Injuries: 2,
	}); err != nil {
		t.Fatalf("seed accident: %v", err)
	}
	if err := accidents.Save(ctx, &entities.AccidentCase{ID: "a2", Date: "2025-01-01"}); err != nil {
		t.Fatalf("seed accident: %v", err)
	}
	if err := campaigns.Save(ctx, &entities.Campaign{
		ID: "c1", Name: "Cao điểm nồng độ cồn", Status: entities.CampaignActive,
		Targets: []entities.CampaignTarget{{ID: "t1", Name: "Xử phạt", Target: 20, Current: 8, Unit: "trường hợp"}},
	}); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	if err := campaigns.Save(ctx, &entities.Campaign{ID: "c2", Name: "Đã xong", Status: entities.CampaignCompleted}); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	if err := results.Save(ctx, &entities.WorkResult{
		ID: "r1", Date: "2025-03-10", Category: entities.CategoryIncidentTips,
		Content: "Tin báo đánh nhau", Note: "đã giải quyết",
	}); err != nil {
		t.Fatalf("seed result: %v", err)
	}
	if err := results.Save(ctx, &entities.WorkResult{
		ID: "r2", Date: "2025-03-11", Category: entities.CategoryPatrol, Content: "Tuần tra đêm",
	}); err != nil {
		t.Fatalf("seed result: %v", err)
	}

	reportCtx, err := svc.BuildContext(ctx, "Tuần", stats.DateRange{Start: "2025-03-10", End: "2025-03-16"})
	if err != nil {
		t.Fatalf("build context: %v", err)
	}

	if reportCtx.AccidentCount != 1 {
		t.Errorf("accident count = %d, want 1", reportCtx.AccidentCount)
	}
	if len(reportCtx.Accidents) != 1 || reportCtx.Accidents[0].Consequences != "Chết: 0, Bị thương: 2" {
		t.Errorf("accidents = %+v", reportCtx.Accidents)
	}
	if len(reportCtx.ActiveCampaigns) != 1 {
		t.Fatalf("active campaigns = %+v", reportCtx.ActiveCampaigns)
	}
	if reportCtx.ActiveCampaigns[0].Targets != "Xử phạt: 8/20 trường hợp" {
		t.Errorf("campaign targets = %q", reportCtx.ActiveCampaigns[0].Targets)
	}
	if reportCtx.Reports113 != "Tin báo đánh nhau (đã giải quyết)" {
		t.Errorf("reports113 = %q", reportCtx.Reports113)
	}
	if reportCtx.WorkResultCount != 2 {
		t.Errorf("work result count = %d", reportCtx.WorkResultCount)
	}
	if !strings.Contains(reportCtx.RecentHighlights, "Tuần tra đêm") {
		t.Errorf("highlights = %q", reportCtx.RecentHighlights)
	}
}

func TestGenerateMergesTemplate(t *testing.T) {
	svc, _, ctx := newReportService(t, &stubGenerator{report: "<p>thân báo cáo</p>"}, "2025-03-12")

	report, err := svc.Generate(ctx, ports.GenerateReportRequest{Period: "week"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if report.Start != "2025-03-10" || report.End != "2025-03-16" {
		t.Errorf("range = %s..%s", report.Start, report.End)
	}
	if !strings.Contains(report.HTML, "<p>thân báo cáo</p>") {
		t.Error("generated body missing from merged template")
	}
	if !strings.Contains(report.HTML, "TUẦN") {
		t.Error("period label not upper-cased into template")
	}
	if strings.Contains(report.HTML, template.TokenAIBody) {
		t.Error("AI-body token left unreplaced")
	}
}

func TestGenerateUsesStoredTemplate(t *testing.T) {
	svc, settings, ctx := newReportService(t, &stubGenerator{report: "nội dung"}, "2025-03-12")
	if err := settings.SetTemplate(ctx, template.NameReport, "BÁO CÁO <<Kỳ>>: <<Nội dung AI>>"); err != nil {
		t.Fatalf("set template: %v", err)
	}

	report, err := svc.Generate(ctx, ports.GenerateReportRequest{Period: "month"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.HTML != "BÁO CÁO THÁNG: nội dung" {
		t.Errorf("html = %q", report.HTML)
	}
}

func TestGenerateUnknownPeriod(t *testing.T) {
	svc, _, ctx := newReportService(t, &stubGenerator{}, "2025-03-12")
	if _, err := svc.Generate(ctx, ports.GenerateReportRequest{Period: "fortnight"}); err == nil {
		t.Error("unknown period should error")
	}
}

func TestDirectionsFallback(t *testing.T) {
	svc, settings, ctx := newReportService(t, &stubGenerator{}, "2025-03-12")

	text, err := svc.Directions(ctx)
	if err != nil {
		t.Fatalf("directions: %v", err)
	}
	if text != template.DefaultReportDirections {
		t.Error("unset directions should fall back to the default")
	}

	if err := settings.SetReportDirections(ctx, "1. Nhiệm vụ mới"); err != nil {
		t.Fatalf("set: %v", err)
	}
	text, err = svc.Directions(ctx)
	if err != nil || text != "1. Nhiệm vụ mới" {
		t.Errorf("directions = %q, %v", text, err)
	}
}
