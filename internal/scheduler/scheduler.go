package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper is the closure processor's scheduling surface.
type Sweeper interface {
	CloseDayShifts(ctx context.Context)
	CloseNightShifts(ctx context.Context)
}

// Scheduler fires the two closure sweeps on independent wall-clock
// schedules. A single instance is assumed; concurrent instances would race
// to close the same shifts.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func New(sweeper Sweeper, daySpec string, nightSpec string, logger *zap.Logger) (*Scheduler, error) {
	scheduler := &Scheduler{
		cron:   cron.New(),
		logger: logger.Named("scheduler"),
	}

	if _, err := scheduler.cron.AddFunc(daySpec, func() {
		scheduler.logger.Info("day sweep triggered")
		sweeper.CloseDayShifts(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid day sweep spec %q: %w", daySpec, err)
	}

	if _, err := scheduler.cron.AddFunc(nightSpec, func() {
		scheduler.logger.Info("night sweep triggered")
		sweeper.CloseNightShifts(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid night sweep spec %q: %w", nightSpec, err)
	}

	return scheduler, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
