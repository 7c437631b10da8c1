package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/models"
	"github.com/exon-reyes/integra-ws/internal/report"
	"github.com/exon-reyes/integra-ws/internal/shift"
)

// AttendanceStore is the gorm-backed persistence layer for shifts and pauses.
type AttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// FindOpenShifts returns every shift not yet closed, with the employee name
// and position id the closure sweep needs. Shifts whose employee record is
// gone are still returned; they close by start hour alone.
func (s *AttendanceStore) FindOpenShifts(ctx context.Context) ([]shift.OpenShift, error) {
	var shifts []models.Shift
	if err := s.db.WithContext(ctx).
		Where("closed = ?", false).
		Order("start_at asc").
		Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("find open shifts: %w", err)
	}
	if len(shifts) == 0 {
		return nil, nil
	}

	employeeIDs := make([]uuid.UUID, 0, len(shifts))
	seen := make(map[uuid.UUID]bool, len(shifts))
	for _, sh := range shifts {
		if !seen[sh.EmployeeID] {
			seen[sh.EmployeeID] = true
			employeeIDs = append(employeeIDs, sh.EmployeeID)
		}
	}

	var employees []models.Employee
	if err := s.db.WithContext(ctx).
		Find(&employees, "id IN ?", employeeIDs).Error; err != nil {
		return nil, fmt.Errorf("load shift employees: %w", err)
	}
	byID := make(map[uuid.UUID]models.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	open := make([]shift.OpenShift, 0, len(shifts))
	for _, sh := range shifts {
		entry := shift.OpenShift{Shift: sh}
		if emp, ok := byID[sh.EmployeeID]; ok {
			entry.EmployeeName = emp.FullName()
			if emp.PositionID != nil {
				entry.PositionID = *emp.PositionID
			}
		}
		open = append(open, entry)
	}
	return open, nil
}

// CloseShift persists the closed shift and terminates the employee's active
// pause (if any) at closeAt, both inside one transaction. An absent active
// pause is a no-op.
func (s *AttendanceStore) CloseShift(ctx context.Context, sh *models.Shift, closeAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pause models.Pause
		err := tx.Where("employee_id = ? AND end_at IS NULL", sh.EmployeeID).
			Order("start_at desc").
			First(&pause).Error
		switch {
		case err == nil:
			pause.EndAt = &closeAt
			if err := tx.Save(&pause).Error; err != nil {
				return fmt.Errorf("close pause %s: %w", pause.ID, err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("find active pause: %w", err)
		}

		if err := tx.Save(sh).Error; err != nil {
			return fmt.Errorf("save shift %s: %w", sh.ID, err)
		}
		return nil
	})
}

// FindActivePause returns the employee's most recent pause without an end,
// or nil when none exists.
func (s *AttendanceStore) FindActivePause(ctx context.Context, employeeID uuid.UUID) (*models.Pause, error) {
	var pause models.Pause
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND end_at IS NULL", employeeID).
		Order("start_at desc").
		First(&pause).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active pause: %w", err)
	}
	return &pause, nil
}

type projectionScan struct {
	EmployeeID   uuid.UUID
	WorkDate     time.Time
	StartAt      time.Time
	UnitName     string
	PositionName string
	ZoneName     string
	SupFirstName string
	SupLastName  string
}

// FindProjection runs the filtered attendance projection for the report
// window. The filter clauses are optional and conjunctive, applied in a
// fixed order; the date bound is on the shift's calendar date.
func (s *AttendanceStore) FindProjection(ctx context.Context, filter report.Filter, from, to time.Time) ([]report.ProjectionRow, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Shift{}).
		Select(strings.Join([]string{
			"shifts.employee_id AS employee_id",
			"shifts.work_date AS work_date",
			"shifts.start_at AS start_at",
			"COALESCE(units.name, '') AS unit_name",
			"COALESCE(positions.name, '') AS position_name",
			"COALESCE(zones.name, '') AS zone_name",
			"COALESCE(sup.first_name, '') AS sup_first_name",
			"COALESCE(sup.last_name, '') AS sup_last_name",
		}, ", ")).
		Joins("JOIN employees ON employees.id = shifts.employee_id").
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Joins("LEFT JOIN units ON units.id = employees.unit_id").
		Joins("LEFT JOIN zones ON zones.id = units.zone_id").
		Joins("LEFT JOIN employees sup ON sup.id = units.supervisor_id")

	if filter.EmployeeID != nil {
		query = query.Where("employees.id = ?", *filter.EmployeeID)
	}
	if filter.UnitID != nil {
		query = query.Where("units.id = ?", *filter.UnitID)
	}
	if filter.SupervisorID != nil {
		query = query.Where("units.supervisor_id = ?", *filter.SupervisorID)
	}
	if filter.ZoneID != nil {
		query = query.Where("zones.id = ?", *filter.ZoneID)
	}
	query = query.Where("shifts.work_date BETWEEN ? AND ?", dateOnly(from), dateOnly(to))

	var scanned []projectionScan
	if err := query.Order("shifts.work_date asc").Scan(&scanned).Error; err != nil {
		return nil, fmt.Errorf("find projection: %w", err)
	}

	rows := make([]report.ProjectionRow, 0, len(scanned))
	for _, sc := range scanned {
		supervisor := strings.TrimSpace(sc.SupFirstName + " " + sc.SupLastName)
		rows = append(rows, report.ProjectionRow{
			EmployeeID: sc.EmployeeID,
			Date:       sc.WorkDate,
			Present:    !sc.StartAt.IsZero(),
			UnitName:   sc.UnitName,
			Position:   sc.PositionName,
			Zone:       sc.ZoneName,
			Supervisor: supervisor,
		})
	}
	return rows, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
