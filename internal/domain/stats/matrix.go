// Package stats holds the pure aggregation logic shared by the registration
// dashboard and the report generator: inclusive date-range filtering, the
// dense category-by-vehicle-type matrix, and the per-type registration
// breakdown.
package stats

import (
	"sort"

	"github.com/patroldesk/core/internal/domain/entities"
)

// DateRange is an inclusive ISO calendar-date interval. Comparison is
// lexicographic, which is exact for YYYY-MM-DD strings.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether date falls inside the range, both ends inclusive.
// An empty bound leaves that side open.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// Cell is one matrix entry: summed count and revenue.
type Cell struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Matrix is the dense registration aggregation table: every known category
// and vehicle type has a cell even when no record touched it. Records with an
// unrecognized category or vehicle type are dropped silently, mirroring the
// policy applied to result categories elsewhere.
type Matrix struct {
	Cells map[entities.RegistrationType]map[entities.VehicleType]Cell `json:"cells"`
}

// NewMatrix returns an all-zero matrix over the full category/vehicle-type
// product.
func NewMatrix() Matrix {
	cells := make(map[entities.RegistrationType]map[entities.VehicleType]Cell, len(entities.RegistrationTypes))
	for _, rt := range entities.RegistrationTypes {
		row := make(map[entities.VehicleType]Cell, len(entities.VehicleTypes))
		for _, vt := range entities.VehicleTypes {
			row[vt] = Cell{}
		}
		cells[rt] = row
	}
	return Matrix{Cells: cells}
}

// AggregateRegistrations folds the records inside the range into a dense
// matrix. Each record lands in exactly one cell keyed by its (type,
// vehicleType) pair.
func AggregateRegistrations(records []entities.VehicleRegistration, rng DateRange) Matrix {
	m := NewMatrix()
	for _, rec := range records {
		if !rng.Contains(rec.Date) {
			continue
		}
		row, ok := m.Cells[rec.Type]
		if !ok {
			continue
		}
		cell, ok := row[rec.VehicleType]
		if !ok {
			continue
		}
		cell.Count += rec.Count
		cell.Revenue += rec.Revenue
		row[rec.VehicleType] = cell
	}
	return m
}

// Totals are the second-pass sums over all matrix cells.
type Totals struct {
	Cars       int     `json:"cars"`
	Motorbikes int     `json:"motorbikes"`
	Revenue    float64 `json:"revenue"`
}

// Totals sums every cell into per-vehicle-type counts and overall revenue.
func (m Matrix) Totals() Totals {
	var t Totals
	for _, row := range m.Cells {
		t.Cars += row[entities.VehicleCar].Count
		t.Motorbikes += row[entities.VehicleMotorbike].Count
		t.Revenue += row[entities.VehicleCar].Revenue + row[entities.VehicleMotorbike].Revenue
	}
	return t
}

// TypeBreakdown is the per-vehicle-type registration tally used by the
// narrative report context.
type TypeBreakdown struct {
	Total    int `json:"total"`
	New      int `json:"new"`
	Transfer int `json:"transfer"`
	Reissue  int `json:"reissue"`
	Revoke   int `json:"revoke"`
}

// RegistrationBreakdown splits ranged registration counts per vehicle type
// and category. Unknown categories contribute to neither bucket.
type RegistrationBreakdown struct {
	Cars       TypeBreakdown `json:"cars"`
	Motorbikes TypeBreakdown `json:"motorbikes"`
}

// BreakdownRegistrations computes the report-facing per-type tallies for the
// records inside the range.
func BreakdownRegistrations(records []entities.VehicleRegistration, rng DateRange) RegistrationBreakdown {
	var b RegistrationBreakdown
	for _, rec := range records {
		if !rng.Contains(rec.Date) {
			continue
		}
		var tb *TypeBreakdown
		switch rec.VehicleType {
		case entities.VehicleCar:
			tb = &b.Cars
		case entities.VehicleMotorbike:
			tb = &b.Motorbikes
		default:
			continue
		}
		switch rec.Type {
		case entities.RegistrationNew:
			tb.New += rec.Count
		case entities.RegistrationTransfer:
			tb.Transfer += rec.Count
		case entities.RegistrationReissue:
			tb.Reissue += rec.Count
		case entities.RegistrationRevoke:
			tb.Revoke += rec.Count
		default:
			continue
		}
		tb.Total += rec.Count
	}
	return b
}

// DailyGroup is one date's registrations in the list view.
type DailyGroup struct {
	Date    string                         `json:"date"`
	Records []entities.VehicleRegistration `json:"records"`
}

// GroupByDate buckets ranged records per date, newest date first. Record
// order within a date follows input order.
func GroupByDate(records []entities.VehicleRegistration, rng DateRange) []DailyGroup {
	byDate := make(map[string][]entities.VehicleRegistration)
	for _, rec := range records {
		if !rng.Contains(rec.Date) {
			continue
		}
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}
	groups := make([]DailyGroup, 0, len(byDate))
	for date, recs := range byDate {
		groups = append(groups, DailyGroup{Date: date, Records: recs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	return groups
}

// FilterResults returns the work results inside the range, preserving order.
func FilterResults(results []entities.WorkResult, rng DateRange) []entities.WorkResult {
	var out []entities.WorkResult
	for _, r := range results {
		if rng.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// FilterAccidents returns the accident cases inside the range, preserving
// order.
func FilterAccidents(cases []entities.AccidentCase, rng DateRange) []entities.AccidentCase {
	var out []entities.AccidentCase
	for _, c := range cases {
		if rng.Contains(c.Date) {
			out = append(out, c)
		}
	}
	return out
}
