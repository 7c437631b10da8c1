package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/middleware"
	"github.com/exon-reyes/integra-ws/internal/models"
)

// AttendanceHandler captures check-ins, checkouts and breaks. It is the only
// writer that creates shifts; automatic closure of dangling shifts is the
// closer's job, not this handler's.
type AttendanceHandler struct {
	DB *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{DB: db}
}

func parseAdminTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	localFormats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, format := range localFormats {
		parsed, err := time.ParseInLocation(format, value, time.Local)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format")
}

type checkInRequest struct {
	EmployeeID string `json:"employeeId"`
	CheckInAt  string `json:"checkInAt"`
}

type checkOutRequest struct {
	EmployeeID string `json:"employeeId"`
	CheckOutAt string `json:"checkOutAt"`
}

type breakRequest struct {
	EmployeeID string `json:"employeeId"`
}

// resolveEmployeeID returns the employee the request acts on. Employees act
// on themselves; admins and managers pass an explicit employeeId.
func resolveEmployeeID(c *gin.Context, requested string) (uuid.UUID, bool) {
	role, _ := c.Get(middleware.ContextRole)
	if role == "employee" {
		contextEmployeeID, ok := c.Get(middleware.ContextEmployeeID)
		if !ok || contextEmployeeID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return uuid.Nil, false
		}
		requested = contextEmployeeID.(string)
	}
	if requested == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId required"})
		return uuid.Nil, false
	}
	employeeID, err := uuid.Parse(requested)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employeeId"})
		return uuid.Nil, false
	}
	return employeeID, true
}

func (h *AttendanceHandler) findOpenShift(employeeID uuid.UUID) (models.Shift, error) {
	var record models.Shift
	err := h.DB.Where("employee_id = ? AND closed = ?", employeeID, false).
		Order("start_at desc").First(&record).Error
	return record, err
}

func (h *AttendanceHandler) List(c *gin.Context) {
	role, _ := c.Get(middleware.ContextRole)

	query := h.DB.Preload("Pauses", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_at asc")
	}).Order("start_at desc")

	if role == "employee" {
		employeeID, ok := c.Get(middleware.ContextEmployeeID)
		if !ok || employeeID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		id, err := uuid.Parse(employeeID.(string))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employeeId"})
			return
		}
		query = query.Where("employee_id = ?", id)
	}

	var records []models.Shift
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employeeID, ok := resolveEmployeeID(c, req.EmployeeID)
	if !ok {
		return
	}

	role, _ := c.Get(middleware.ContextRole)
	checkInTime := time.Now()
	if role != "employee" && req.CheckInAt != "" {
		parsed, err := parseAdminTime(req.CheckInAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkInAt"})
			return
		}
		if parsed.After(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "checkInAt cannot be in the future"})
			return
		}
		checkInTime = parsed
	}

	if _, err := h.findOpenShift(employeeID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "open shift exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkin failed"})
		return
	}

	record := models.Shift{
		EmployeeID: employeeID,
		WorkDate:   time.Date(checkInTime.Year(), checkInTime.Month(), checkInTime.Day(), 0, 0, 0, 0, checkInTime.Location()),
		StartAt:    checkInTime,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkin failed"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employeeID, ok := resolveEmployeeID(c, req.EmployeeID)
	if !ok {
		return
	}

	record, err := h.findOpenShift(employeeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "open shift not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	role, _ := c.Get(middleware.ContextRole)
	checkOutTime := time.Now()
	if role != "employee" && req.CheckOutAt != "" {
		parsed, err := parseAdminTime(req.CheckOutAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOutAt"})
			return
		}
		checkOutTime = parsed
	}
	if checkOutTime.Before(record.StartAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOutAt cannot be before check-in"})
		return
	}

	var openPause models.Pause
	if err := h.DB.Where("employee_id = ? AND end_at IS NULL", employeeID).
		Order("start_at desc").First(&openPause).Error; err == nil {
		openPause.EndAt = &checkOutTime
		_ = h.DB.Save(&openPause).Error
	}

	record.EndAt = &checkOutTime
	record.Closed = true
	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) BreakStart(c *gin.Context) {
	var req breakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employeeID, ok := resolveEmployeeID(c, req.EmployeeID)
	if !ok {
		return
	}

	record, err := h.findOpenShift(employeeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "open shift not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "break start failed"})
		return
	}

	var active models.Pause
	if err := h.DB.Where("employee_id = ? AND end_at IS NULL", employeeID).
		First(&active).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "break already active"})
		return
	}

	now := time.Now()
	if now.Before(record.StartAt) {
		now = record.StartAt
	}

	pause := models.Pause{
		ShiftID:    record.ID,
		EmployeeID: employeeID,
		StartAt:    now,
	}
	if err := h.DB.Create(&pause).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "break start failed"})
		return
	}

	c.JSON(http.StatusCreated, pause)
}

func (h *AttendanceHandler) BreakEnd(c *gin.Context) {
	var req breakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employeeID, ok := resolveEmployeeID(c, req.EmployeeID)
	if !ok {
		return
	}

	var openPause models.Pause
	if err := h.DB.Where("employee_id = ? AND end_at IS NULL", employeeID).
		Order("start_at desc").First(&openPause).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no active break"})
		return
	}

	now := time.Now()
	if now.Before(openPause.StartAt) {
		now = openPause.StartAt
	}
	openPause.EndAt = &now
	if err := h.DB.Save(&openPause).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "break end failed"})
		return
	}

	c.JSON(http.StatusOK, openPause)
}
