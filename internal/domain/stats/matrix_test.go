package stats

import (
	"testing"

	"github.com/patroldesk/core/internal/domain/entities"
)

func reg(date string, t entities.RegistrationType, v entities.VehicleType, count int, revenue float64) entities.VehicleRegistration {
	return entities.VehicleRegistration{
		ID:          entities.RegistrationID(date, t, v),
		Date:        date,
		Type:        t,
		VehicleType: v,
		Count:       count,
		Revenue:     revenue,
	}
}

func TestNewMatrixIsDense(t *testing.T) {
	m := NewMatrix()

	if len(m.Cells) != len(entities.RegistrationTypes) {
		t.Fatalf("expected %d rows, got %d", len(entities.RegistrationTypes), len(m.Cells))
	}
	for _, rt := range entities.RegistrationTypes {
		row, ok := m.Cells[rt]
		if !ok {
			t.Fatalf("missing row %s", rt)
		}
		if len(row) != len(entities.VehicleTypes) {
			t.Fatalf("row %s has %d cells", rt, len(row))
		}
		for _, vt := range entities.VehicleTypes {
			if cell := row[vt]; cell.Count != 0 || cell.Revenue != 0 {
				t.Errorf("cell %s/%s not zero: %+v", rt, vt, cell)
			}
		}
	}
}

func TestAggregateRegistrationsRouting(t *testing.T) {
	records := []entities.VehicleRegistration{
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleCar, 2, 400000),
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleMotorbike, 5, 250000),
		reg("2025-03-02", entities.RegistrationTransfer, entities.VehicleMotorbike, 1, 50000),
	}

	m := AggregateRegistrations(records, DateRange{})

	if cell := m.Cells[entities.RegistrationNew][entities.VehicleCar]; cell.Count != 2 || cell.Revenue != 400000 {
		t.Errorf("new/car cell = %+v", cell)
	}
	if cell := m.Cells[entities.RegistrationNew][entities.VehicleMotorbike]; cell.Count != 5 {
		t.Errorf("new/motorbike cell = %+v", cell)
	}
	if cell := m.Cells[entities.RegistrationTransfer][entities.VehicleMotorbike]; cell.Count != 1 {
		t.Errorf("transfer/motorbike cell = %+v", cell)
	}

	totals := m.Totals()
	if totals.Cars != 2 || totals.Motorbikes != 6 {
		t.Errorf("totals = %+v, want cars 2 motorbikes 6", totals)
	}
	if totals.Revenue != 700000 {
		t.Errorf("revenue = %v, want 700000", totals.Revenue)
	}
}

func TestAggregateRegistrationsDropsUnknownCategory(t *testing.T) {
	records := []entities.VehicleRegistration{
		reg("2025-03-01", entities.RegistrationType("Tạm giữ"), entities.VehicleCar, 3, 100),
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleType("Xe đạp"), 4, 100),
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleCar, 1, 100),
	}

	m := AggregateRegistrations(records, DateRange{})
	totals := m.Totals()
	if totals.Cars != 1 || totals.Motorbikes != 0 {
		t.Errorf("unknown categories leaked into totals: %+v", totals)
	}
}

func TestDateRangeInclusive(t *testing.T) {
	rng := DateRange{Start: "2025-03-01", End: "2025-03-07"}

	for date, want := range map[string]bool{
		"2025-02-28": false,
		"2025-03-01": true,
		"2025-03-07": true,
		"2025-03-08": false,
	} {
		if got := rng.Contains(date); got != want {
			t.Errorf("Contains(%s) = %v, want %v", date, got, want)
		}
	}

	open := DateRange{}
	if !open.Contains("1999-01-01") {
		t.Error("open range should contain any date")
	}

	startOnly := DateRange{Start: "2025-03-01"}
	if startOnly.Contains("2025-02-01") || !startOnly.Contains("2025-12-31") {
		t.Error("start-only range bounds wrong")
	}
}

func TestBreakdownRegistrations(t *testing.T) {
	records := []entities.VehicleRegistration{
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleMotorbike, 3, 0),
		reg("2025-03-02", entities.RegistrationTransfer, entities.VehicleMotorbike, 2, 0),
		reg("2025-03-03", entities.RegistrationRevoke, entities.VehicleCar, 1, 0),
		reg("2025-04-01", entities.RegistrationNew, entities.VehicleCar, 9, 0), // out of range
	}

	b := BreakdownRegistrations(records, DateRange{Start: "2025-03-01", End: "2025-03-31"})

	if b.Motorbikes.Total != 5 || b.Motorbikes.New != 3 || b.Motorbikes.Transfer != 2 {
		t.Errorf("motorbike breakdown = %+v", b.Motorbikes)
	}
	if b.Cars.Total != 1 || b.Cars.Revoke != 1 || b.Cars.New != 0 {
		t.Errorf("car breakdown = %+v", b.Cars)
	}
}

func TestGroupByDateNewestFirst(t *testing.T) {
	records := []entities.VehicleRegistration{
		reg("2025-03-01", entities.RegistrationNew, entities.VehicleCar, 1, 0),
		reg("2025-03-03", entities.RegistrationNew, entities.VehicleCar, 1, 0),
		reg("2025-03-03", entities.RegistrationTransfer, entities.VehicleCar, 1, 0),
		reg("2025-03-02", entities.RegistrationNew, entities.VehicleCar, 1, 0),
	}

	groups := GroupByDate(records, DateRange{})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Date != "2025-03-03" || groups[1].Date != "2025-03-02" || groups[2].Date != "2025-03-01" {
		t.Errorf("groups not newest-first: %s %s %s", groups[0].Date, groups[1].Date, groups[2].Date)
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("expected 2 records on 2025-03-03, got %d", len(groups[0].Records))
	}
}
