package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/config"
	"github.com/exon-reyes/integra-ws/internal/handlers"
	"github.com/exon-reyes/integra-ws/internal/middleware"
	"github.com/exon-reyes/integra-ws/internal/report"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, aggregator handlers.ReportBuilder, roster report.RosterProvider, logger *zap.Logger) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "integra-ws"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(db, cfg)
	attendanceHandler := handlers.NewAttendanceHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(roster, logger)
	reportHandler := handlers.NewReportHandler(aggregator, logger)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		protected.POST("/users", middleware.RequireAnyRole("admin"), authHandler.CreateUser)

		protected.GET("/employees", middleware.RequireAnyRole("admin", "manager"), employeeHandler.List)

		protected.GET("/attendance", middleware.RequireAnyRole("admin", "manager", "employee"), attendanceHandler.List)
		protected.POST("/attendance/checkin", middleware.RequireAnyRole("admin", "manager", "employee"), attendanceHandler.CheckIn)
		protected.POST("/attendance/checkout", middleware.RequireAnyRole("admin", "manager", "employee"), attendanceHandler.CheckOut)
		protected.POST("/attendance/break/start", middleware.RequireAnyRole("admin", "manager", "employee"), attendanceHandler.BreakStart)
		protected.POST("/attendance/break/end", middleware.RequireAnyRole("admin", "manager", "employee"), attendanceHandler.BreakEnd)

		protected.GET("/reports/attendance", middleware.RequireAnyRole("admin", "manager"), reportHandler.Get)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
