package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exon-reyes/integra-ws/internal/models"
)

// AutoCloseComment is stamped on every shift the sweep closes.
const AutoCloseComment = "Automatic closure due to missing checkout."

const (
	dayCloseHour     = 23
	dayCloseMinute   = 59
	nightCloseHour   = 9
	nightCloseMinute = 59
)

// OpenShift is an open shift together with the employee and position context
// needed to classify and notify it.
type OpenShift struct {
	Shift        models.Shift
	EmployeeName string
	PositionID   uuid.UUID
}

// Store is the persistence surface the closer needs. CloseShift must persist
// the shift mutation and terminate the employee's active pause (if any) at
// closeAt inside a single transaction scoped to that shift.
type Store interface {
	FindOpenShifts(ctx context.Context) ([]OpenShift, error)
	CloseShift(ctx context.Context, shift *models.Shift, closeAt time.Time) error
}

// NightLookup reports whether a position is inherently night-shift.
type NightLookup interface {
	IsNightPosition(ctx context.Context, positionID uuid.UUID) bool
}

// CheckoutNotifier delivers a best-effort missing-checkout notice. It must
// not block; delivery outcome has no bearing on the closure itself.
type CheckoutNotifier interface {
	NotifyMissingCheckout(employeeName string, shiftID uuid.UUID, startAt time.Time)
}

// Closer runs the automatic closure sweeps. Each open shift is an
// independent unit of work: one shift failing to close is logged and skipped,
// the sweep keeps going, and the shift stays eligible for the next sweep.
type Closer struct {
	store      Store
	lookup     NightLookup
	notifier   CheckoutNotifier
	classifier Classifier
	logger     *zap.Logger
	workers    int
}

func NewCloser(store Store, lookup NightLookup, notifier CheckoutNotifier, classifier Classifier, logger *zap.Logger, workers int) *Closer {
	if workers <= 0 {
		workers = 1
	}
	return &Closer{
		store:      store,
		lookup:     lookup,
		notifier:   notifier,
		classifier: classifier,
		logger:     logger.Named("closer"),
		workers:    workers,
	}
}

// CloseDayShifts is the evening sweep; it only closes day-class shifts.
func (c *Closer) CloseDayShifts(ctx context.Context) {
	c.sweep(ctx, ClassDay)
}

// CloseNightShifts is the mid-morning sweep for shifts that ran past
// midnight; it only closes night-class shifts.
func (c *Closer) CloseNightShifts(ctx context.Context) {
	c.sweep(ctx, ClassNight)
}

func (c *Closer) sweep(ctx context.Context, mode Class) {
	open, err := c.store.FindOpenShifts(ctx)
	if err != nil {
		c.logger.Error("could not load open shifts", zap.String("mode", mode.String()), zap.Error(err))
		return
	}
	if len(open) == 0 {
		return
	}

	c.logger.Info("closure sweep started",
		zap.String("mode", mode.String()),
		zap.Int("openShifts", len(open)),
	)

	var group errgroup.Group
	group.SetLimit(c.workers)
	for i := range open {
		sh := open[i]
		group.Go(func() error {
			c.process(ctx, sh, mode)
			return nil
		})
	}
	_ = group.Wait()
}

func (c *Closer) process(ctx context.Context, sh OpenShift, mode Class) {
	nightPosition := c.lookup.IsNightPosition(ctx, sh.PositionID)
	if c.classifier.Classify(sh.Shift.StartAt, nightPosition) != mode {
		return
	}

	closeAt := closeTime(mode, sh.Shift.StartAt)

	sh.Shift.EndAt = &closeAt
	sh.Shift.Closed = true
	sh.Shift.AutoClosed = true
	sh.Shift.Comment = AutoCloseComment

	if err := c.store.CloseShift(ctx, &sh.Shift, closeAt); err != nil {
		c.logger.Error("shift closure failed",
			zap.String("shiftId", sh.Shift.ID.String()),
			zap.Error(err),
		)
		return
	}

	c.notifier.NotifyMissingCheckout(sh.EmployeeName, sh.Shift.ID, sh.Shift.StartAt)

	c.logger.Info("shift closed",
		zap.String("shiftId", sh.Shift.ID.String()),
		zap.String("mode", mode.String()),
		zap.Time("closeAt", closeAt),
	)
}

// closeTime computes the deterministic closure timestamp: a day shift closes
// at end of business on its own start date, a night shift closes mid-morning
// on the following day.
func closeTime(mode Class, startAt time.Time) time.Time {
	if mode == ClassNight {
		next := startAt.AddDate(0, 0, 1)
		return time.Date(next.Year(), next.Month(), next.Day(), nightCloseHour, nightCloseMinute, 0, 0, startAt.Location())
	}
	return time.Date(startAt.Year(), startAt.Month(), startAt.Day(), dayCloseHour, dayCloseMinute, 0, 0, startAt.Location())
}
