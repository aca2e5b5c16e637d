package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConfirmed = "appointment_confirmed"
	ActionAppointmentRefused   = "appointment_refused"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentUpdated   = "appointment_updated"
	ActionBarberRegistered     = "barber_registered"
	ActionBarberLogin          = "barber_login"
)

type Event struct {
	BarberID *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events on a background worker. Dispatch never
// blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	logger *Logger
	log    *logrus.Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger, log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100), // buffer seguro
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.WithField("action", ev.Action).Errorf("audit error: %v", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close drains the queue and waits for the worker. Dispatch must not be
// called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
