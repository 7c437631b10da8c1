package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exon-reyes/integra-ws/internal/report"
)

type ReportBuilder interface {
	Build(ctx context.Context, filter report.Filter, from, to time.Time) (report.Matrix, error)
}

type ReportHandler struct {
	Aggregator ReportBuilder
	Logger     *zap.Logger
}

func NewReportHandler(aggregator ReportBuilder, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{Aggregator: aggregator, Logger: logger.Named("report-handler")}
}

// Get serves the attendance matrix. employeeId/unitId/zoneId/supervisorId
// are optional and combine conjunctively; dateFrom/dateTo are required.
func (h *ReportHandler) Get(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("dateFrom"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateFrom"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("dateTo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateTo"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo before dateFrom"})
		return
	}

	var filter report.Filter
	for param, target := range map[string]**uuid.UUID{
		"employeeId":   &filter.EmployeeID,
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

	matrix, err := h.Aggregator.Build(c.Request.Context(), filter, from, to)
	if err != nil {
		h.Logger.Error("report build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}

	c.JSON(http.StatusOK, matrix)
}
