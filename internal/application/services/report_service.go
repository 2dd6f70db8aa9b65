package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/stats"
	"github.com/patroldesk/core/internal/domain/template"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// ReportService builds the periodic work report: it aggregates the period's
// records into a context blob, asks the AI generator for the narrative body
// and merges the result into the stored report template.
type ReportService struct {
	accidentRepo ports.AccidentRepository
	campaignRepo ports.CampaignRepository
	regRepo      ports.RegistrationRepository
	resultRepo   ports.ResultRepository
	settingsRepo ports.SettingsRepository
	generator    ports.Generator
	logger       *logger.Logger
	now          func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	accidentRepo ports.AccidentRepository,
	campaignRepo ports.CampaignRepository,
	regRepo ports.RegistrationRepository,
	resultRepo ports.ResultRepository,
	settingsRepo ports.SettingsRepository,
	generator ports.Generator,
	logger *logger.Logger,
) *ReportService {
	return &ReportService{
		accidentRepo: accidentRepo,
		campaignRepo: campaignRepo,
		regRepo:      regRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
		logger:       logger,
		now:          time.Now,
	}
}

// Report period names and their Vietnamese display labels.
var periodLabels = map[string]string{
	"week":    "Tuần",
	"month":   "Tháng",
	"quarter": "Quý",
	"year":    "Năm",
}

// resolvePeriod maps a period name onto the current calendar range:
// Monday-Sunday week, calendar month, calendar quarter or calendar year.
func resolvePeriod(period string, today time.Time) (stats.DateRange, error) {
	y, m, d := today.Date()
	var start, end time.Time

	switch period {
	case "week":
		offset := int(today.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 0, 6)
	case "month":
		start = time.Date(y, m, 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
	case "quarter":
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 3, -1)
	case "year":
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, today.Location())
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, today.Location())
	default:
		return stats.DateRange{}, fmt.Errorf("unknown report period: %s", period)
	}

	return stats.DateRange{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}, nil
}

// AccidentSummary is one accident case in the report context.
type AccidentSummary struct {
	Date         string `json:"date"`
	Location     string `json:"location"`
	Content      string `json:"content"`
	Consequences string `json:"consequences"`
}

// CampaignSummary is one active campaign in the report context.
type CampaignSummary struct {
	Name    string `json:"name"`
	Targets string `json:"targets"`
}

// ReportContext is the aggregated data blob handed to the AI generator.
type ReportContext struct {
	Period           string                      `json:"period"`
	AccidentCount    int                         `json:"accidentCount"`
	Accidents        []AccidentSummary           `json:"accidents"`
	ActiveCampaigns  []CampaignSummary           `json:"activeCampaigns"`
	Registrations    stats.RegistrationBreakdown `json:"registrations"`
	WorkResultCount  int                         `json:"workResultCount"`
	Reports113       string                      `json:"reports113"`
	RecentHighlights string                      `json:"recentHighlights"`
}

// BuildContext gathers and aggregates every record inside the range
func (s *ReportService) BuildContext(ctx context.Context, periodLabel string, rng stats.DateRange) (*ReportContext, error) {
	accidents, err := s.accidentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	registrations, err := s.regRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	rangedAccidents := stats.FilterAccidents(accidents, rng)
	rangedResults := stats.FilterResults(results, rng)

	accidentList := make([]AccidentSummary, 0, len(rangedAccidents))
	for _, a := range rangedAccidents {
		accidentList = append(accidentList, AccidentSummary{
			Date:         a.Date,
			Location:     a.Location,
			Content:      a.Content,
			Consequences: fmt.Sprintf("Chết: %d, Bị thương: %d", a.Fatalities, a.Injuries),
		})
	}

	var active []CampaignSummary
	for _, c := range campaigns {
		if c.Status != entities.CampaignActive {
			continue
		}
		lines := make([]string, 0, len(c.Targets))
		for _, t := range c.Targets {
			lines = append(lines, fmt.Sprintf("%s: %d/%d %s", t.Name, t.Current, t.Target, t.Unit))
		}
		active = append(active, CampaignSummary{
			Name:    c.Name,
			Targets: strings.Join(lines, "; "),
		})
	}

	var tips []string
	for _, r := range rangedResults {
		if r.Category != entities.CategoryIncidentTips {
			continue
		}
		line := r.Content
		if r.Note != "" {
			line += fmt.Sprintf(" (%s)", r.Note)
		}
		tips = append(tips, line)
	}

	var highlights []string
	for i, r := range rangedResults {
		if i >= 15 {
			break
		}
		highlights = append(highlights, fmt.Sprintf("%s (%s)", r.Content, r.Category))
	}

	return &ReportContext{
		Period:           periodLabel,
		AccidentCount:    len(rangedAccidents),
		Accidents:        accidentList,
		ActiveCampaigns:  active,
		Registrations:    stats.BreakdownRegistrations(registrations, rng),
		WorkResultCount:  len(rangedResults),
		Reports113:       strings.Join(tips, "; "),
		RecentHighlights: strings.Join(highlights, "; "),
	}, nil
}

// GeneratedReport is the finished report plus the range it covers.
type GeneratedReport struct {
	Period string `json:"period"`
	Start  string `json:"start"`
	End    string `json:"end"`
	HTML   string `json:"html"`
}

// Generate resolves the period range, builds the context, generates the
// narrative body and merges it into the stored report template.
func (s *ReportService) Generate(ctx context.Context, req ports.GenerateReportRequest) (*GeneratedReport, error) {
	label, ok := periodLabels[req.Period]
	if !ok {
		return nil, fmt.Errorf("unknown report period: %s", req.Period)
	}

	rng, err := resolvePeriod(req.Period, s.now())
	if err != nil {
		return nil, err
	}

	reportCtx, err := s.BuildContext(ctx, label, rng)
	if err != nil {
		return nil, err
	}

	directions, err := s.settingsRepo.ReportDirections(ctx)
	if err != nil {
		return nil, err
	}
	if directions == "" {
		directions = template.DefaultReportDirections
	}

	body, err := s.generator.GenerateReport(ctx, reportCtx, req.Suggestions, directions)
	if err != nil {
		s.logger.Errorw("Report generation failed", "period", req.Period, "error", err)
		return nil, fmt.Errorf("failed to generate report")
	}

	tpl, ok, err := s.settingsRepo.Template(ctx, template.NameReport)
	if err != nil {
		return nil, err
	}
	if !ok {
		tpl = template.DefaultReportTemplate
	}

	html := template.Render(tpl, map[string]string{
		template.TokenPeriod:     strings.ToUpper(label),
		template.TokenRangeStart: rng.Start,
		template.TokenRangeEnd:   rng.End,
		template.TokenAIBody:     body,
	})

	s.logger.Infow("Report generated", "period", req.Period, "start", rng.Start, "end", rng.End)

	return &GeneratedReport{
		Period: req.Period,
		Start:  rng.Start,
		End:    rng.End,
		HTML:   html,
	}, nil
}

// Directions returns the stored future-directions text, falling back to the
// built-in default.
func (s *ReportService) Directions(ctx context.Context) (string, error) {
	text, err := s.settingsRepo.ReportDirections(ctx)
	if err != nil {
		return "", err
	}
	if text == "" {
		return template.DefaultReportDirections, nil
	}
	return text, nil
}

// SetDirections stores the future-directions text
func (s *ReportService) SetDirections(ctx context.Context, text string) error {
	if err := s.settingsRepo.SetReportDirections(ctx, text); err != nil {
		return err
	}
	s.logger.Infow("Report directions updated")
	return nil
}
