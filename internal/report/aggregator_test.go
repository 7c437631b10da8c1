package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	entries []RosterEntry
	err     error
}

func (f *fakeRoster) Find(ctx context.Context, filter Filter) ([]RosterEntry, error) {
	return f.entries, f.err
}

type fakeProjections struct {
	rows []ProjectionRow
	err  error
}

func (f *fakeProjections) FindProjection(ctx context.Context, filter Filter, from, to time.Time) ([]ProjectionRow, error) {
	return f.rows, f.err
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMatrix(t *testing.T) {
	employeeX := uuid.New()
	employeeY := uuid.New()

	roster := &fakeRoster{entries: []RosterEntry{
		{EmployeeID: employeeX, Code: "E001", FullName: "Ada Lovelace", UnitName: "North Plant", Position: "Operator"},
		{EmployeeID: employeeY, Code: "E002", FullName: "Grace Hopper", UnitName: "North Plant", Position: "Operator"},
	}}
	projections := &fakeProjections{rows: []ProjectionRow{
		{EmployeeID: employeeX, Date: day(2024, 1, 1), Present: true, UnitName: "North Plant", Position: "Operator"},
		{EmployeeID: employeeX, Date: day(2024, 1, 3), Present: true, UnitName: "North Plant", Position: "Operator"},
	}}

	aggregator := NewAggregator(roster, projections)
	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, matrix.Dates)
	require.Len(t, matrix.Employees, 2)
	assert.Equal(t, []int{1, 0, 1}, matrix.Employees[0].Attendance)
	assert.Equal(t, []int{0, 0, 0}, matrix.Employees[1].Attendance)
	assert.Equal(t, "E001", matrix.Employees[0].Code)
	assert.Equal(t, "E002", matrix.Employees[1].Code)
}

func TestBuildEveryRowMatchesDateLength(t *testing.T) {
	employee := uuid.New()
	roster := &fakeRoster{entries: []RosterEntry{{EmployeeID: employee, Code: "E001"}}}

	aggregator := NewAggregator(roster, &fakeProjections{})
	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 2, 26), day(2024, 3, 3))
	require.NoError(t, err)

	// 2024 is a leap year; the range crosses February 29.
	assert.Len(t, matrix.Dates, 7)
	for _, row := range matrix.Employees {
		assert.Len(t, row.Attendance, len(matrix.Dates))
	}
	assert.Equal(t, "2024-02-29", matrix.Dates[3])
}

func TestBuildEmptyRosterShortCircuits(t *testing.T) {
	aggregator := NewAggregator(&fakeRoster{}, &fakeProjections{err: errors.New("must not be called")})

	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, matrix.Dates)
	assert.Empty(t, matrix.Employees)
}

func TestBuildEmployeeFilterNarrowsUniverse(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()
	roster := &fakeRoster{entries: []RosterEntry{
		{EmployeeID: drop, Code: "E001"},
		{EmployeeID: keep, Code: "E002"},
	}}

	aggregator := NewAggregator(roster, &fakeProjections{})
	matrix, err := aggregator.Build(context.Background(), Filter{EmployeeID: &keep}, day(2024, 1, 1), day(2024, 1, 2))
	require.NoError(t, err)

	require.Len(t, matrix.Employees, 1)
	assert.Equal(t, "E002", matrix.Employees[0].Code)
}

func TestBuildDuplicateRowsFirstWins(t *testing.T) {
	employee := uuid.New()
	roster := &fakeRoster{entries: []RosterEntry{{EmployeeID: employee, Code: "E001"}}}
	projections := &fakeProjections{rows: []ProjectionRow{
		{EmployeeID: employee, Date: day(2024, 1, 1), Present: true},
		{EmployeeID: employee, Date: day(2024, 1, 1), Present: false},
	}}

	aggregator := NewAggregator(roster, projections)
	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, []int{1}, matrix.Employees[0].Attendance)
}

func TestBuildAbsentRowNotCountedPresent(t *testing.T) {
	employee := uuid.New()
	roster := &fakeRoster{entries: []RosterEntry{{EmployeeID: employee, Code: "E001"}}}
	projections := &fakeProjections{rows: []ProjectionRow{
		{EmployeeID: employee, Date: day(2024, 1, 1), Present: false},
	}}

	aggregator := NewAggregator(roster, projections)
	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, []int{0}, matrix.Employees[0].Attendance)
}

func TestBuildMetadataPrefersAttendanceRows(t *testing.T) {
	moved := uuid.New()
	unchanged := uuid.New()
	roster := &fakeRoster{entries: []RosterEntry{
		{EmployeeID: moved, Code: "E001", UnitName: "New Unit", Position: "New Role", Zone: "New Zone", Supervisor: "New Boss"},
		{EmployeeID: unchanged, Code: "E002", UnitName: "Static Unit", Position: "Clerk", Zone: "South", Supervisor: "Old Boss"},
	}}
	projections := &fakeProjections{rows: []ProjectionRow{
		{EmployeeID: moved, Date: day(2024, 1, 1), Present: true, UnitName: "Old Unit", Position: "Old Role", Zone: "Old Zone", Supervisor: "Former Boss"},
	}}

	aggregator := NewAggregator(roster, projections)
	matrix, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 2))
	require.NoError(t, err)

	// Rows in the window carry the names as of that date.
	assert.Equal(t, "Old Unit", matrix.Employees[0].UnitName)
	assert.Equal(t, "Old Role", matrix.Employees[0].Position)
	assert.Equal(t, "Old Zone", matrix.Employees[0].Zone)
	assert.Equal(t, "Former Boss", matrix.Employees[0].Supervisor)

	// No rows in the window falls back to the roster snapshot.
	assert.Equal(t, "Static Unit", matrix.Employees[1].UnitName)
	assert.Equal(t, "Old Boss", matrix.Employees[1].Supervisor)
}

func TestBuildRosterErrorPropagates(t *testing.T) {
	aggregator := NewAggregator(&fakeRoster{err: errors.New("db down")}, &fakeProjections{})
	_, err := aggregator.Build(context.Background(), Filter{}, day(2024, 1, 1), day(2024, 1, 2))
	require.Error(t, err)
}

func TestDateRangeSingleDay(t *testing.T) {
	dates := dateRange(day(2024, 1, 10), day(2024, 1, 10))
	require.Len(t, dates, 1)
	assert.Equal(t, day(2024, 1, 10), dates[0])
}
