package schedule

import (
	"testing"
	"time"

	"github.com/patroldesk/core/internal/domain/entities"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		t.Fatalf("bad test date %s: %v", date, err)
	}
	return d
}

func TestInstancesOnPlainTask(t *testing.T) {
	tasks := []entities.Task{
		{ID: "a", Title: "hop giao ban", Date: "2025-03-10"},
		{ID: "b", Title: "truc ban", Date: "2025-03-11"},
	}

	got := InstancesOn(tasks, day(t, "2025-03-10"))
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only task a on 2025-03-10, got %+v", got)
	}
}

func TestInstancesOnWeekly(t *testing.T) {
	// 2025-03-10 is a Monday, 2025-03-12 a Wednesday.
	task := entities.Task{
		ID:   "w",
		Date: "2025-01-01",
		Recurrence: &entities.RecurrenceConfig{
			Enabled:   true,
			Frequency: entities.FrequencyWeekly,
			WeekDays:  []int{1, 3},
		},
	}

	for _, tc := range []struct {
		date string
		want bool
	}{
		{"2025-03-10", true},  // Monday
		{"2025-03-11", false}, // Tuesday
		{"2025-03-12", true},  // Wednesday
		{"2025-03-16", false}, // Sunday
	} {
		got := InstancesOn([]entities.Task{task}, day(t, tc.date))
		if (len(got) == 1) != tc.want {
			t.Errorf("weekly task on %s: got %d instances, want match=%v", tc.date, len(got), tc.want)
		}
	}
}

func TestInstancesOnMonthly31SkipsShortMonths(t *testing.T) {
	task := entities.Task{
		ID:   "m",
		Date: "2025-01-31",
		Recurrence: &entities.RecurrenceConfig{
			Enabled:    true,
			Frequency:  entities.FrequencyMonthly,
			DayOfMonth: 31,
		},
	}

	if got := InstancesOn([]entities.Task{task}, day(t, "2025-03-31")); len(got) != 1 {
		t.Errorf("expected occurrence on 2025-03-31, got %d", len(got))
	}
	// April has no 31st; the task must not appear on the 30th instead.
	if got := InstancesOn([]entities.Task{task}, day(t, "2025-04-30")); len(got) != 0 {
		t.Errorf("expected no occurrence on 2025-04-30, got %d", len(got))
	}
}

func TestInstancesOnMalformedRecurrenceNeverMatches(t *testing.T) {
	task := entities.Task{
		ID:   "x",
		Date: "2025-01-01",
		Recurrence: &entities.RecurrenceConfig{
			Enabled:   true,
			Frequency: entities.Frequency("biweekly"),
		},
	}

	if got := InstancesOn([]entities.Task{task}, day(t, "2025-01-01")); len(got) != 0 {
		t.Errorf("malformed recurrence matched: %+v", got)
	}
}

func TestBucketUrgencyWindow(t *testing.T) {
	today := day(t, "2025-03-10")
	now := time.Date(2025, 3, 10, 7, 45, 0, 0, time.Local)

	tasks := []entities.Task{
		{ID: "soon", Date: "2025-03-10", Time: "08:30"},
		{ID: "later", Date: "2025-03-10", Time: "09:00"},
		{ID: "past", Date: "2025-03-10", Time: "07:30"},
		{ID: "done", Date: "2025-03-10", Time: "08:00", IsCompleted: true},
	}

	b := Bucket(tasks, today, now)

	if len(b.Urgent) != 1 || b.Urgent[0].ID != "soon" {
		t.Errorf("expected only 'soon' urgent, got %+v", b.Urgent)
	}
	if len(b.Completed) != 1 || b.Completed[0].ID != "done" {
		t.Errorf("expected 'done' completed, got %+v", b.Completed)
	}
	// 'later' at 09:00 and 'past' at 07:30 both land in morning.
	if len(b.Morning) != 2 {
		t.Fatalf("expected 2 morning tasks, got %+v", b.Morning)
	}
	if b.Morning[0].ID != "past" || b.Morning[1].ID != "later" {
		t.Errorf("morning tasks not time-sorted: %+v", b.Morning)
	}
}

func TestBucketUrgencyOnlyToday(t *testing.T) {
	tomorrow := day(t, "2025-03-11")
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

	tasks := []entities.Task{{ID: "t", Date: "2025-03-11", Time: "08:30"}}
	b := Bucket(tasks, tomorrow, now)

	if len(b.Urgent) != 0 {
		t.Errorf("task on another day must not be urgent: %+v", b.Urgent)
	}
	if len(b.Morning) != 1 {
		t.Errorf("expected task in morning, got %+v", b)
	}
}

func TestBucketTimelessGoesToMorning(t *testing.T) {
	today := day(t, "2025-03-10")
	b := Bucket([]entities.Task{{ID: "t", Date: "2025-03-10"}}, today, time.Now())
	if len(b.Morning) != 1 {
		t.Errorf("timeless task should land in morning, got %+v", b)
	}
}

func TestBucketTimeOfDay(t *testing.T) {
	today := day(t, "2025-03-10")
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local)

	tasks := []entities.Task{
		{ID: "m", Date: "2025-03-10", Time: "11:59"},
		{ID: "a", Date: "2025-03-10", Time: "12:00"},
		{ID: "e", Date: "2025-03-10", Time: "18:00"},
	}
	b := Bucket(tasks, today, now)

	if len(b.Morning) != 1 || b.Morning[0].ID != "m" {
		t.Errorf("11:59 should be morning, got %+v", b.Morning)
	}
	if len(b.Afternoon) != 1 || b.Afternoon[0].ID != "a" {
		t.Errorf("12:00 should be afternoon, got %+v", b.Afternoon)
	}
	if len(b.Evening) != 1 || b.Evening[0].ID != "e" {
		t.Errorf("18:00 should be evening, got %+v", b.Evening)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(nil); got != 0 {
		t.Errorf("empty day progress = %d, want 0", got)
	}

	instances := []entities.Task{
		{ID: "1", IsCompleted: true},
		{ID: "2"},
		{ID: "3"},
	}
	if got := Progress(instances); got != 33 {
		t.Errorf("1/3 progress = %d, want 33", got)
	}

	instances[1].IsCompleted = true
	if got := Progress(instances); got != 67 {
		t.Errorf("2/3 progress = %d, want 67", got)
	}
}
