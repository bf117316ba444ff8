package audit

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
)

type Event struct {
	SalonID  string
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists audit events.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   logger.OrNop(log),
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks the request path; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.AuditQueueDropped.Inc()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
