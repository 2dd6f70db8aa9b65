package mirror

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// DispatchTotal counts mirror dispatch outcomes by action and result.
var DispatchTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mirror_dispatch_total",
		Help: "Total number of mirror dispatch attempts",
	},
	[]string{"action", "result"},
)

type event struct {
	action     string
	collection string
	record     interface{}
	id         string
}

// Dispatcher delivers record changes to the mirror in the background.
// Enqueueing never blocks: when the queue is full the event is dropped, and
// delivery failures are logged and counted but never retried. Local state is
// the source of truth; the mirror is best effort.
type Dispatcher struct {
	client  *Client
	logger  *logger.Logger
	queue   chan event
	done    chan struct{}
	closeMu sync.Once
}

// NewDispatcher creates a dispatcher and starts its delivery worker
func NewDispatcher(client *Client, queueSize int, appLogger *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		client: client,
		logger: appLogger,
		queue:  make(chan event, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// RecordSaved mirrors one upserted record of the named collection
func (d *Dispatcher) RecordSaved(collection string, record interface{}) {
	d.enqueue(event{action: "SAVE", collection: collection, record: record})
}

// RecordDeleted mirrors one deletion by id
func (d *Dispatcher) RecordDeleted(collection, id string) {
	d.enqueue(event{action: "DELETE", collection: collection, id: id})
}

func (d *Dispatcher) enqueue(ev event) {
	select {
	case d.queue <- ev:
	default:
		DispatchTotal.WithLabelValues(ev.action, "dropped").Inc()
		d.logger.Warnw("Mirror queue full, event dropped",
			"action", ev.action,
			"collection", ev.collection,
		)
	}
}

func (d *Dispatcher) run() {
	for ev := range d.queue {
		d.deliver(ev)
	}
	close(d.done)
}

func (d *Dispatcher) deliver(ev event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch ev.action {
	case "SAVE":
		err = d.client.Save(ctx, ev.collection, ev.record)
	case "DELETE":
		err = d.client.Delete(ctx, ev.collection, ev.id)
	}

	if errors.Is(err, entities.ErrMirrorNotConfigured) {
		DispatchTotal.WithLabelValues(ev.action, "skipped").Inc()
		return
	}
	if err != nil {
		DispatchTotal.WithLabelValues(ev.action, "error").Inc()
		d.logger.LogMirrorDispatch(ev.action, ev.collection, err)
		return
	}
	DispatchTotal.WithLabelValues(ev.action, "ok").Inc()
	d.logger.LogMirrorDispatch(ev.action, ev.collection, nil)
}

// Close stops the worker after draining queued events
func (d *Dispatcher) Close() {
	d.closeMu.Do(func() {
		close(d.queue)
		<-d.done
	})
}

var _ ports.Dispatcher = (*Dispatcher)(nil)
