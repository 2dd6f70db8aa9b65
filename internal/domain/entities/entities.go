package entities

import (
	"errors"
	"fmt"
	"math"
)

// Common errors
var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrAccidentNotFound      = errors.New("accident case not found")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrTargetNotFound        = errors.New("campaign target not found")
	ErrVerificationNotFound  = errors.New("verification request not found")
	ErrResultNotFound        = errors.New("work result not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrFolderNotFound        = errors.New("folder not found")
	ErrEmptyProgress         = errors.New("progress log contains no positive deltas")
	ErrDuplicateDocumentName = errors.New("a document with this name already exists in the folder")
	ErrMirrorNotConfigured   = errors.New("mirror endpoint URL is not configured")
)

// Enums and types. The string values are the persisted wire values: records
// written by earlier deployments and rows pulled from the mirror carry them,
// so they must round-trip unchanged.

type TaskType string

const (
	TaskTypeWork     TaskType = "Công việc"
	TaskTypeMeeting  TaskType = "Họp"
	TaskTypePersonal TaskType = "Cá nhân"
	TaskTypeRoutine  TaskType = "Thường xuyên"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "Cao"
	TaskPriorityMedium TaskPriority = "Trung bình"
	TaskPriorityLow    TaskPriority = "Thấp"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type RegistrationType string

const (
	RegistrationNew      RegistrationType = "Mới"
	RegistrationTransfer RegistrationType = "Sang tên"
	RegistrationRevoke   RegistrationType = "Thu hồi"
	RegistrationReissue  RegistrationType = "Cấp đổi"
)

// RegistrationTypes lists the four categories in presentation order. The
// aggregation matrix is initialized from this list, never from the data.
var RegistrationTypes = []RegistrationType{
	RegistrationNew,
	RegistrationTransfer,
	RegistrationRevoke,
	RegistrationReissue,
}

type VehicleType string

const (
	VehicleCar       VehicleType = "Ô tô"
	VehicleMotorbike VehicleType = "Xe máy"
)

var VehicleTypes = []VehicleType{VehicleCar, VehicleMotorbike}

type ResultCategory string

const (
	CategoryQuota        ResultCategory = "Chỉ tiêu"
	CategoryViolation    ResultCategory = "Xử lý vi phạm"
	CategoryAdvisory     ResultCategory = "Công tác tham mưu"
	CategoryPatrol       ResultCategory = "Tuần tra kiểm soát"
	CategoryEventGuard   ResultCategory = "Bảo vệ kỳ cuộc"
	CategoryIncidentTips ResultCategory = "Tiếp nhận tin báo"
	CategoryPropaganda   ResultCategory = "Tuyên truyền"
	CategoryVerification ResultCategory = "Công tác xác minh"
	CategoryOther        ResultCategory = "Kết quả khác"
)

type WorkStatus string

const (
	WorkStatusTodo       WorkStatus = "Chưa thực hiện"
	WorkStatusInProgress WorkStatus = "Đang thực hiện"
	WorkStatusDone       WorkStatus = "Hoàn thành"
)

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "Active"
	CampaignCompleted CampaignStatus = "Completed"
	CampaignPlanned   CampaignStatus = "Planned"
)

type DocType string

const (
	DocTypeLetter DocType = "Công văn"
	DocTypePlan   DocType = "Kế hoạch"
	DocTypeReport DocType = "Báo cáo"
	DocTypeOther  DocType = "Khác"
)

type DocStatus string

const (
	DocStatusDraft  DocStatus = "Dự thảo"
	DocStatusIssued DocStatus = "Đã ban hành"
)

type FolderType string

const (
	FolderTypeYear     FolderType = "year"
	FolderTypeCategory FolderType = "category"
)

// RecurrenceConfig describes how a task repeats. Fields other than Frequency
// are interpreted only when Frequency selects them: weekly reads WeekDays,
// monthly reads DayOfMonth, yearly reads DayOfMonth and MonthOfYear. Daily
// ignores all of them. Zero values for the unselected fields never match any
// calendar day, so a malformed config degrades to "never occurs".
type RecurrenceConfig struct {
	Enabled     bool      `json:"enabled"`
	Frequency   Frequency `json:"frequency"`
	WeekDays    []int     `json:"weekDays,omitempty"`    // 0=Sunday .. 6=Saturday
	DayOfMonth  int       `json:"dayOfMonth,omitempty"`  // 1-31, no clamping in short months
	MonthOfYear int       `json:"monthOfYear,omitempty"` // 1-12
}

// Task is a calendar item. A task with an enabled recurrence represents a
// series of virtual occurrences; Date and Time then only carry the pattern's
// time of day.
type Task struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Date        string            `json:"date"`           // YYYY-MM-DD anchor date
	Time        string            `json:"time,omitempty"` // HH:mm, empty for all-day tasks
	Type        TaskType          `json:"type"`
	Priority    TaskPriority      `json:"priority"`
	IsCompleted bool              `json:"isCompleted"`
	Recurrence  *RecurrenceConfig `json:"recurrence,omitempty"`
}

// IsRecurring reports whether the task expands into virtual occurrences.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil && t.Recurrence.Enabled
}

// VehicleRegistration is a count+revenue tally for one (date, type,
// vehicleType) triple. Its ID is the natural key, so saving the same triple
// twice overwrites instead of duplicating.
type VehicleRegistration struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Type        RegistrationType `json:"type"`
	VehicleType VehicleType      `json:"vehicleType"`
	Count       int              `json:"count"`
	Revenue     float64          `json:"revenue"`
}

// RegistrationID derives the deterministic natural-key identifier.
func RegistrationID(date string, t RegistrationType, v VehicleType) string {
	return fmt.Sprintf("%s_%s_%s", date, t, v)
}

// WorkResult records one unit of day-to-day work output.
type WorkResult struct {
	ID             string         `json:"id"`
	Date           string         `json:"date"`
	Category       ResultCategory `json:"category"`
	CustomCategory string         `json:"customCategory,omitempty"` // only when Category is CategoryOther
	Content        string         `json:"content"`
	Quantity       int            `json:"quantity,omitempty"`
	Unit           string         `json:"unit,omitempty"`
	Note           string         `json:"note,omitempty"`
}

// HasQuantity reports whether the category carries a numeric tally.
func (c ResultCategory) HasQuantity() bool {
	return c == CategoryQuota || c == CategoryViolation
}

// Normalize enforces the category invariants before a save: quantity and unit
// are meaningful only for the numeric categories, and the custom label only
// for CategoryOther.
func (r *WorkResult) Normalize() {
	if !r.Category.HasQuantity() {
		r.Quantity = 0
		r.Unit = ""
	}
	if r.Category != CategoryOther {
		r.CustomCategory = ""
	}
}

// CampaignTarget is one quota line inside a campaign. Current is a running
// sum of all positive log deltas for this target.
type CampaignTarget struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
	Unit    string `json:"unit"`
}

// CompletionPercent returns min(100, round(100*current/target)), 0 when the
// target is 0.
func (t *CampaignTarget) CompletionPercent() int {
	if t.Target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(t.Current) * 100 / float64(t.Target)))
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressDelta is one target increment inside a daily progress log.
type ProgressDelta struct {
	TargetID string `json:"targetId"`
	Value    int    `json:"value"`
}

// CampaignLog is one append-only daily progress entry.
type CampaignLog struct {
	Date    string          `json:"date"`
	Results []ProgressDelta `json:"results"`
}

// Campaign is a time-bounded enforcement drive with quota targets and an
// append-only progress log.
type Campaign struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	DispatchNumber   string           `json:"dispatchNumber,omitempty"`
	DispatchDate     string           `json:"dispatchDate,omitempty"`
	IssuingAuthority string           `json:"issuingAuthority,omitempty"`
	Description      string           `json:"description,omitempty"`
	StartDate        string           `json:"startDate"`
	EndDate          string           `json:"endDate"`
	Targets          []CampaignTarget `json:"targets"`
	Logs             []CampaignLog    `json:"logs,omitempty"`
	Status           CampaignStatus   `json:"status"`
}

// ApplyProgress filters deltas to positive values, adds each to its matching
// target and appends one log entry holding the filtered set. Deltas naming an
// unknown target are skipped. Returns ErrEmptyProgress when nothing positive
// remains; the campaign is left untouched in that case.
func (c *Campaign) ApplyProgress(date string, deltas []ProgressDelta) error {
	filtered := make([]ProgressDelta, 0, len(deltas))
	for _, d := range deltas {
		if d.Value > 0 {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == 0 {
		return ErrEmptyProgress
	}

	for _, d := range filtered {
		for i := range c.Targets {
			if c.Targets[i].ID == d.TargetID {
				c.Targets[i].Current += d.Value
				break
			}
		}
	}
	c.Logs = append(c.Logs, CampaignLog{Date: date, Results: filtered})
	return nil
}

// AccidentCase is a traffic-accident record.
type AccidentCase struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Location        string  `json:"location"`
	Content         string  `json:"content"`
	Fatalities      int     `json:"fatalities"`
	Injuries        int     `json:"injuries"`
	EstimatedDamage float64 `json:"estimatedDamage"` // VND
	AlcoholLevel    float64 `json:"alcoholLevel"`    // mg/L
	HandlingUnit    string  `json:"handlingUnit"`
	Status          string  `json:"status"`
	Result          string  `json:"result,omitempty"`
}

// VerificationRequest tracks an incoming residency/violation verification
// dispatch and the drafted response.
type VerificationRequest struct {
	ID                 string     `json:"id"`
	DispatchNumber     string     `json:"dispatchNumber"`
	Date               string     `json:"date"`
	OffenderName       string     `json:"offenderName"`
	IDCard             string     `json:"idCard"`
	YearOfBirth        string     `json:"yob"`
	Address            string     `json:"address"`
	ViolationContent   string     `json:"violationContent"`
	VerificationResult string     `json:"verificationResult,omitempty"`
	Status             WorkStatus `json:"status"`
	DocumentHTML       string     `json:"documentHtml,omitempty"`
}

// Folder is a node in the document tree. An empty ParentID marks a root year
// folder.
type Folder struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	ParentID string     `json:"parentId,omitempty"`
	Type     FolderType `json:"type"`
}

// Document is an administrative document filed under a folder. The folder
// reference is advisory: deleting the folder does not cascade.
type Document struct {
	ID             string    `json:"id"`
	FolderID       string    `json:"folderId,omitempty"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	About          string    `json:"about,omitempty"`
	Type           DocType   `json:"type"`
	DispatchNumber string    `json:"dispatchNumber,omitempty"`
	Date           string    `json:"date"`
	Content        string    `json:"content"`
	HTMLTemplate   string    `json:"htmlTemplate,omitempty"`
	Status         DocStatus `json:"status"`
}

// Utility methods
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeWork, TaskTypeMeeting, TaskTypePersonal, TaskTypeRoutine:
		return true
	default:
		return false
	}
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	default:
		return false
	}
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

func (t RegistrationType) IsValid() bool {
	switch t {
	case RegistrationNew, RegistrationTransfer, RegistrationRevoke, RegistrationReissue:
		return true
	default:
		return false
	}
}

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleCar, VehicleMotorbike:
		return true
	default:
		return false
	}
}

func (c ResultCategory) IsValid() bool {
	switch c {
	case CategoryQuota, CategoryViolation, CategoryAdvisory, CategoryPatrol,
		CategoryEventGuard, CategoryIncidentTips, CategoryPropaganda,
		CategoryVerification, CategoryOther:
		return true
	default:
		return false
	}
}

func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusTodo, WorkStatusInProgress, WorkStatusDone:
		return true
	default:
		return false
	}
}

func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignActive, CampaignCompleted, CampaignPlanned:
		return true
	default:
		return false
	}
}

func (d DocType) IsValid() bool {
	switch d {
	case DocTypeLetter, DocTypePlan, DocTypeReport, DocTypeOther:
		return true
	default:
		return false
	}
}

func (s DocStatus) IsValid() bool {
	switch s {
	case DocStatusDraft, DocStatusIssued:
		return true
	default:
		return false
	}
}

func (f FolderType) IsValid() bool {
	switch f {
	case FolderTypeYear, FolderTypeCategory:
		return true
	default:
		return false
	}
}
