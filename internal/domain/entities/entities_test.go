package entities

import (
	"errors"
	"testing"
)

func TestApplyProgressAccumulates(t *testing.T) {
	c := Campaign{
		Targets: []CampaignTarget{
			{ID: "t1", Name: "Xử phạt", Target: 20},
			{ID: "t2", Name: "Tuyên truyền", Target: 10},
		},
	}

	if err := c.ApplyProgress("2025-03-01", []ProgressDelta{{TargetID: "t1", Value: 5}}); err != nil {
		t.Fatalf("first log: %v", err)
	}
	if err := c.ApplyProgress("2025-03-02", []ProgressDelta{
		{TargetID: "t1", Value: 3},
		{TargetID: "t2", Value: 4},
	}); err != nil {
		t.Fatalf("second log: %v", err)
	}

	if c.Targets[0].Current != 8 {
		t.Errorf("t1 current = %d, want 8", c.Targets[0].Current)
	}
	if c.Targets[1].Current != 4 {
		t.Errorf("t2 current = %d, want 4", c.Targets[1].Current)
	}
	if len(c.Logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(c.Logs))
	}
	if c.Logs[0].Date != "2025-03-01" || c.Logs[1].Date != "2025-03-02" {
		t.Errorf("log dates out of order: %s, %s", c.Logs[0].Date, c.Logs[1].Date)
	}
}

func TestApplyProgressFiltersNonPositive(t *testing.T) {
	c := Campaign{Targets: []CampaignTarget{{ID: "t1", Target: 10}}}

	err := c.ApplyProgress("2025-03-01", []ProgressDelta{
		{TargetID: "t1", Value: 0},
		{TargetID: "t1", Value: -2},
	})
	if !errors.Is(err, ErrEmptyProgress) {
		t.Fatalf("expected ErrEmptyProgress, got %v", err)
	}
	if c.Targets[0].Current != 0 || len(c.Logs) != 0 {
		t.Error("campaign modified by rejected progress log")
	}

	if err := c.ApplyProgress("2025-03-01", []ProgressDelta{
		{TargetID: "t1", Value: -1},
		{TargetID: "t1", Value: 6},
	}); err != nil {
		t.Fatalf("mixed log: %v", err)
	}
	if c.Targets[0].Current != 6 {
		t.Errorf("current = %d, want 6", c.Targets[0].Current)
	}
	if len(c.Logs[0].Results) != 1 || c.Logs[0].Results[0].Value != 6 {
		t.Errorf("log should hold only the positive delta: %+v", c.Logs[0].Results)
	}
}

func TestApplyProgressSkipsUnknownTarget(t *testing.T) {
	c := Campaign{Targets: []CampaignTarget{{ID: "t1", Target: 10}}}

	if err := c.ApplyProgress("2025-03-01", []ProgressDelta{{TargetID: "ghost", Value: 7}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Targets[0].Current != 0 {
		t.Errorf("unknown target must not change known ones: %d", c.Targets[0].Current)
	}
	if len(c.Logs) != 1 {
		t.Error("the log entry is still appended")
	}
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		current, target, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{5, 10, 50},
		{1, 3, 33},
		{2, 3, 67},
		{15, 10, 100},
		{10, 10, 100},
	}
	for _, tt := range tests {
		tgt := CampaignTarget{Current: tt.current, Target: tt.target}
		if got := tgt.CompletionPercent(); got != tt.want {
			t.Errorf("CompletionPercent(%d/%d) = %d, want %d", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestWorkResultNormalize(t *testing.T) {
	r := WorkResult{
		Category:       CategoryPatrol,
		CustomCategory: "tự đặt",
		Quantity:       4,
		Unit:           "trường hợp",
	}
	r.Normalize()
	if r.Quantity != 0 || r.Unit != "" {
		t.Errorf("non-quantity category kept tally: %+v", r)
	}
	if r.CustomCategory != "" {
		t.Error("custom label kept outside CategoryOther")
	}

	q := WorkResult{Category: CategoryViolation, Quantity: 3, Unit: "vụ"}
	q.Normalize()
	if q.Quantity != 3 || q.Unit != "vụ" {
		t.Errorf("quantity category lost tally: %+v", q)
	}

	o := WorkResult{Category: CategoryOther, CustomCategory: "Khác nữa", Quantity: 2}
	o.Normalize()
	if o.CustomCategory != "Khác nữa" {
		t.Error("CategoryOther must keep the custom label")
	}
	if o.Quantity != 0 {
		t.Error("CategoryOther carries no tally")
	}
}

func TestRegistrationID(t *testing.T) {
	got := RegistrationID("2025-03-01", RegistrationNew, VehicleCar)
	if got != "2025-03-01_Mới_Ô tô" {
		t.Errorf("RegistrationID = %q", got)
	}
}

func TestIsRecurring(t *testing.T) {
	plain := Task{}
	if plain.IsRecurring() {
		t.Error("task without recurrence reported recurring")
	}
	disabled := Task{Recurrence: &RecurrenceConfig{Enabled: false, Frequency: FrequencyDaily}}
	if disabled.IsRecurring() {
		t.Error("disabled recurrence reported recurring")
	}
	weekly := Task{Recurrence: &RecurrenceConfig{Enabled: true, Frequency: FrequencyWeekly, WeekDays: []int{1}}}
	if !weekly.IsRecurring() {
		t.Error("enabled recurrence not reported recurring")
	}
}
