package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exon-reyes/integra-ws/internal/report"
)

type EmployeeHandler struct {
	Roster report.RosterProvider
	Logger *zap.Logger
}

func NewEmployeeHandler(roster report.RosterProvider, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{Roster: roster, Logger: logger.Named("employee-handler")}
}

// List returns the roster filtered by the same organizational criteria as
// the attendance report.
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter report.Filter
	for param, target := range map[string]**uuid.UUID{
		"unitId":       &filter.UnitID,
		"zoneId":       &filter.ZoneID,
		"supervisorId": &filter.SupervisorID,
	} {
		value := c.Query(param)
		if value == "" {
			continue
		}
		parsed, err := uuid.Parse(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
			return
		}
		*target = &parsed
	}

	entries, err := h.Roster.Find(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("roster load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load employees"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
