package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/models"
	"github.com/exon-reyes/integra-ws/internal/report"
)

// RosterStore resolves the employee universe for the organizational filters.
type RosterStore struct {
	db *gorm.DB
}

func NewRosterStore(db *gorm.DB) *RosterStore {
	return &RosterStore{db: db}
}

type rosterScan struct {
	EmployeeID   uuid.UUID
	Code         string
	FirstName    string
	LastName     string
	UnitName     string
	PositionName string
	ZoneName     string
	SupFirstName string
	SupLastName  string
	Night        bool
}

// Find returns roster entries matching the unit/zone/supervisor filters. The
// employee filter is intentionally not applied here; the aggregator narrows
// the universe after the fact.
func (s *RosterStore) Find(ctx context.Context, filter report.Filter) ([]report.RosterEntry, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Select(strings.Join([]string{
			"employees.id AS employee_id",
			"employees.code AS code",
			"employees.first_name AS first_name",
			"employees.last_name AS last_name",
			"COALESCE(units.name, '') AS unit_name",
			"COALESCE(positions.name, '') AS position_name",
			"COALESCE(zones.name, '') AS zone_name",
			"COALESCE(sup.first_name, '') AS sup_first_name",
			"COALESCE(sup.last_name, '') AS sup_last_name",
			"COALESCE(positions.night, false) AS night",
		}, ", ")).
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Joins("LEFT JOIN units ON units.id = employees.unit_id").
		Joins("LEFT JOIN zones ON zones.id = units.zone_id").
		Joins("LEFT JOIN employees sup ON sup.id = units.supervisor_id")

	if filter.UnitID != nil {
		query = query.Where("units.id = ?", *filter.UnitID)
	}
	if filter.SupervisorID != nil {
		query = query.Where("units.supervisor_id = ?", *filter.SupervisorID)
	}
	if filter.ZoneID != nil {
		query = query.Where("zones.id = ?", *filter.ZoneID)
	}

	var scanned []rosterScan
	if err := query.Order("employees.code asc").Scan(&scanned).Error; err != nil {
		return nil, fmt.Errorf("find roster: %w", err)
	}

	entries := make([]report.RosterEntry, 0, len(scanned))
	for _, sc := range scanned {
		entries = append(entries, report.RosterEntry{
			EmployeeID: sc.EmployeeID,
			Code:       sc.Code,
			FullName:   strings.TrimSpace(sc.FirstName + " " + sc.LastName),
			UnitName:   sc.UnitName,
			Position:   sc.PositionName,
			Zone:       sc.ZoneName,
			Supervisor: strings.TrimSpace(sc.SupFirstName + " " + sc.SupLastName),
			Night:      sc.Night,
		})
	}
	return entries, nil
}
