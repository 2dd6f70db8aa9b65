// Package schedule resolves the task list against a calendar date: which
// tasks occur on a given day, and how a day's occurrences partition into
// presentation buckets.
package schedule

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patroldesk/core/internal/domain/entities"
)

// DateLayout is the ISO calendar-date format used by every dated record.
const DateLayout = "2006-01-02"

// urgentWindow is how far ahead of the current time an incomplete timed task
// counts as urgent.
const urgentWindow = 60 * time.Minute

// InstancesOn returns the tasks active on day: non-recurring tasks whose
// anchor date equals day, plus recurring tasks whose pattern matches day.
// Input order is preserved.
func InstancesOn(tasks []entities.Task, day time.Time) []entities.Task {
	dayStr := day.Format(DateLayout)
	var out []entities.Task
	for _, t := range tasks {
		if !t.IsRecurring() {
			if t.Date == dayStr {
				out = append(out, t)
			}
			continue
		}
		if matches(t.Recurrence, day) {
			out = append(out, t)
		}
	}
	return out
}

// matches applies the per-frequency rule. A dayOfMonth of 29-31 simply never
// matches in months lacking that day; there is no last-day-of-month rollover.
func matches(rc *entities.RecurrenceConfig, day time.Time) bool {
	switch rc.Frequency {
	case entities.FrequencyDaily:
		return true
	case entities.FrequencyWeekly:
		wd := int(day.Weekday()) // 0=Sunday .. 6=Saturday
		for _, d := range rc.WeekDays {
			if d == wd {
				return true
			}
		}
		return false
	case entities.FrequencyMonthly:
		return day.Day() == rc.DayOfMonth
	case entities.FrequencyYearly:
		return day.Day() == rc.DayOfMonth && int(day.Month()) == rc.MonthOfYear
	default:
		return false
	}
}

// DayBuckets partitions a day's task instances for display. A completed task
// is always in Completed; an urgent task is excluded from the time-of-day
// buckets so it appears exactly once.
type DayBuckets struct {
	Urgent    []entities.Task `json:"urgent"`
	Morning   []entities.Task `json:"morning"`   // 00:00-11:59, and tasks without a time
	Afternoon []entities.Task `json:"afternoon"` // 12:00-17:59
	Evening   []entities.Task `json:"evening"`   // 18:00-23:59
	Completed []entities.Task `json:"completed"`
}

// Bucket sorts a day's instances into DayBuckets. Urgency only applies when
// day is the calendar date of now: a task is urgent iff it is incomplete, has
// a time, and that time is more than zero and at most sixty minutes ahead of
// now. Each bucket is ordered by time-of-day string, timeless tasks first.
func Bucket(instances []entities.Task, day, now time.Time) DayBuckets {
	var b DayBuckets
	for _, t := range instances {
		switch {
		case t.IsCompleted:
			b.Completed = append(b.Completed, t)
		case isUrgent(t, day, now):
			b.Urgent = append(b.Urgent, t)
		default:
			switch hourOf(t.Time) {
			case timeMorning:
				b.Morning = append(b.Morning, t)
			case timeAfternoon:
				b.Afternoon = append(b.Afternoon, t)
			default:
				b.Evening = append(b.Evening, t)
			}
		}
	}

	byTime := func(ts []entities.Task) {
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Time < ts[j].Time })
	}
	byTime(b.Urgent)
	byTime(b.Morning)
	byTime(b.Afternoon)
	byTime(b.Evening)
	byTime(b.Completed)
	return b
}

type timeOfDay int

const (
	timeMorning timeOfDay = iota
	timeAfternoon
	timeEvening
)

func hourOf(hhmm string) timeOfDay {
	if hhmm == "" {
		return timeMorning // no time defaults to morning
	}
	h, err := strconv.Atoi(strings.SplitN(hhmm, ":", 2)[0])
	if err != nil {
		return timeMorning
	}
	switch {
	case h < 12:
		return timeMorning
	case h < 18:
		return timeAfternoon
	default:
		return timeEvening
	}
}

func isUrgent(t entities.Task, day, now time.Time) bool {
	if t.IsCompleted || t.Time == "" {
		return false
	}
	if day.Format(DateLayout) != now.Format(DateLayout) {
		return false
	}
	due, err := time.ParseInLocation(DateLayout+" 15:04", day.Format(DateLayout)+" "+t.Time, now.Location())
	if err != nil {
		return false
	}
	until := due.Sub(now)
	return until > 0 && until <= urgentWindow
}

// Progress is the day's completion percentage: round(100*completed/total),
// 0 for an empty day.
func Progress(instances []entities.Task) int {
	if len(instances) == 0 {
		return 0
	}
	completed := 0
	for _, t := range instances {
		if t.IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(instances))))
}
