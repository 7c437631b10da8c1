package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Filter narrows the report universe. All fields are optional and combine
// conjunctively.
type Filter struct {
	EmployeeID   *uuid.UUID
	UnitID       *uuid.UUID
	ZoneID       *uuid.UUID
	SupervisorID *uuid.UUID
}

// RosterEntry is a read-only snapshot of one employee's current
// organizational assignment.
type RosterEntry struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Code       string    `json:"code"`
	FullName   string    `json:"fullName"`
	UnitName   string    `json:"unitName"`
	Position   string    `json:"position"`
	Zone       string    `json:"zone"`
	Supervisor string    `json:"supervisor"`
	Night      bool      `json:"night"`
}

// ProjectionRow is a per-employee, per-date attendance record. The
// denormalized names reflect the assignment as of that record, which may
// differ from the roster's current values.
type ProjectionRow struct {
	EmployeeID uuid.UUID
	Date       time.Time
	Present    bool
	UnitName   string
	Position   string
	Zone       string
	Supervisor string
}

type RosterProvider interface {
	Find(ctx context.Context, filter Filter) ([]RosterEntry, error)
}

type ProjectionStore interface {
	FindProjection(ctx context.Context, filter Filter, from, to time.Time) ([]ProjectionRow, error)
}

type EmployeeRow struct {
	Code       string `json:"code"`
	FullName   string `json:"fullName"`
	UnitName   string `json:"unitName"`
	Position   string `json:"position"`
	Zone       string `json:"zone"`
	Supervisor string `json:"supervisor"`
	Attendance []int  `json:"attendance"`
}

// Matrix is the date-by-employee presence grid. Every row's Attendance slice
// has the same length as Dates.
type Matrix struct {
	Dates     []string      `json:"dates"`
	Employees []EmployeeRow `json:"employees"`
}

// Aggregator merges the filtered roster with attendance projections into a
// dense presence matrix. Read-only; built per request.
type Aggregator struct {
	roster      RosterProvider
	projections ProjectionStore
}

func NewAggregator(roster RosterProvider, projections ProjectionStore) *Aggregator {
	return &Aggregator{roster: roster, projections: projections}
}

func (a *Aggregator) Build(ctx context.Context, filter Filter, from, to time.Time) (Matrix, error) {
	roster, err := a.roster.Find(ctx, filter)
	if err != nil {
		return Matrix{}, fmt.Errorf("load roster: %w", err)
	}

	if filter.EmployeeID != nil {
		narrowed := roster[:0]
		for _, entry := range roster {
			if entry.EmployeeID == *filter.EmployeeID {
				narrowed = append(narrowed, entry)
			}
		}
		roster = narrowed
	}

	if len(roster) == 0 {
		return Matrix{Dates: []string{}, Employees: []EmployeeRow{}}, nil
	}

	dates := dateRange(from, to)

	rows, err := a.projections.FindProjection(ctx, filter, from, to)
	if err != nil {
		return Matrix{}, fmt.Errorf("load projection: %w", err)
	}

	// Group rows by employee, then by date. Duplicate (employee, date) pairs
	// keep the first row encountered; firstRow holds each employee's first
	// row in store order for display metadata.
	byEmployee := make(map[uuid.UUID]map[string]ProjectionRow)
	firstRow := make(map[uuid.UUID]ProjectionRow)
	for _, row := range rows {
		byDate, ok := byEmployee[row.EmployeeID]
		if !ok {
			byDate = make(map[string]ProjectionRow)
			byEmployee[row.EmployeeID] = byDate
			firstRow[row.EmployeeID] = row
		}
		key := row.Date.Format(dateLayout)
		if _, exists := byDate[key]; !exists {
			byDate[key] = row
		}
	}

	matrix := Matrix{
		Dates:     make([]string, len(dates)),
		Employees: make([]EmployeeRow, 0, len(roster)),
	}
	for i, date := range dates {
		matrix.Dates[i] = date.Format(dateLayout)
	}

	for _, entry := range roster {
		byDate := byEmployee[entry.EmployeeID]

		unitName, position, zone, supervisor := entry.UnitName, entry.Position, entry.Zone, entry.Supervisor
		if meta, ok := firstRow[entry.EmployeeID]; ok {
			unitName, position, zone, supervisor = meta.UnitName, meta.Position, meta.Zone, meta.Supervisor
		}

		attendance := make([]int, len(matrix.Dates))
		for i, key := range matrix.Dates {
			if row, ok := byDate[key]; ok && row.Present {
				attendance[i] = 1
			}
		}

		matrix.Employees = append(matrix.Employees, EmployeeRow{
			Code:       entry.Code,
			FullName:   entry.FullName,
			UnitName:   unitName,
			Position:   position,
			Zone:       zone,
			Supervisor: supervisor,
			Attendance: attendance,
		})
	}

	return matrix, nil
}

// dateRange returns every calendar day from from to to inclusive, ascending.
func dateRange(from, to time.Time) []time.Time {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
