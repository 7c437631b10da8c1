package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/exon-reyes/integra-ws/internal/config"
	"github.com/exon-reyes/integra-ws/internal/db"
	"github.com/exon-reyes/integra-ws/internal/email"
	"github.com/exon-reyes/integra-ws/internal/report"
	"github.com/exon-reyes/integra-ws/internal/routes"
	"github.com/exon-reyes/integra-ws/internal/scheduler"
	"github.com/exon-reyes/integra-ws/internal/shift"
	"github.com/exon-reyes/integra-ws/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		logger.Fatal("db error", zap.Error(err))
	}

	attendanceStore := store.NewAttendanceStore(database)
	rosterStore := store.NewRosterStore(database)
	nightLookup := store.NewNightLookup(database, cfg.NightPositionID, logger)

	mailer := email.NewMailer(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SmtpFrom,
	})
	notifier := email.NewNotifier(mailer, cfg.NotifyRecipient, cfg.NotifyQueueSize, cfg.NotifyWorkers, logger)
	notifier.Start(context.Background())

	classifier := shift.NewClassifier(cfg.NightStartHour)
	closer := shift.NewCloser(attendanceStore, nightLookup, notifier, classifier, logger, cfg.ClosureWorkers)

	sweeps, err := scheduler.New(closer, cfg.DaySweepSpec, cfg.NightSweepSpec, logger)
	if err != nil {
		logger.Fatal("scheduler error", zap.Error(err))
	}
	sweeps.Start()
	defer sweeps.Stop()

	aggregator := report.NewAggregator(rosterStore, attendanceStore)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg, aggregator, rosterStore, logger)

	logger.Info("server starting", zap.String("addr", cfg.Addr))
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
