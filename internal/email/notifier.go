package email

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender is the mail transport consumed by the Notifier.
type Sender interface {
	Send(to string, subject string, htmlBody string) error
}

type notice struct {
	to      string
	subject string
	body    string
}

// Notifier delivers notifications through a bounded queue consumed by
// background workers. Enqueueing never blocks: when the queue is full the
// notice is dropped and logged. Delivery is best-effort with no retry.
type Notifier struct {
	sender    Sender
	recipient string
	logger    *zap.Logger
	queue     chan notice
	workers   int
	wg        sync.WaitGroup
}

func NewNotifier(sender Sender, recipient string, queueSize int, workers int, logger *zap.Logger) *Notifier {
	if queueSize <= 0 {
		queueSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	return &Notifier{
		sender:    sender,
		recipient: recipient,
		logger:    logger.Named("notifier"),
		queue:     make(chan notice, queueSize),
		workers:   workers,
	}
}

// Start launches the delivery workers. Non-blocking; workers exit when ctx
// is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.run(ctx)
	}
}

// Wait blocks until all workers have exited.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) run(ctx context.Context) {
	defer n.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.queue:
			if err := n.sender.Send(msg.to, msg.subject, msg.body); err != nil {
				n.logger.Error("notification delivery failed",
					zap.String("to", msg.to),
					zap.String("subject", msg.subject),
					zap.Error(err),
				)
			}
		}
	}
}

// NotifyMissingCheckout queues the missing-checkout notice for a shift the
// sweep just closed. The shift id doubles as the support reference.
func (n *Notifier) NotifyMissingCheckout(employeeName string, shiftID uuid.UUID, startAt time.Time) {
	if n.recipient == "" {
		return
	}
	ref := shiftID.String()
	msg := notice{
		to:      n.recipient,
		subject: "Attendance notice - Ref #" + ref,
		body: missingCheckoutHTML(
			employeeName,
			startAt.Format("02/01/2006"),
			startAt.Format("15:04"),
			ref,
		),
	}
	select {
	case n.queue <- msg:
	default:
		n.logger.Warn("notification queue full, dropping notice",
			zap.String("shiftId", ref),
		)
	}
}
