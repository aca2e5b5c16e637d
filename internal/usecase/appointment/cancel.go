package appointment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CancelAppointmentInput struct {
	AppointmentID uint
	Reason        string

	// BarberID, when set, restricts the cancellation to that barber's
	// appointments.
	BarberID *uint
}

type CancelAppointment struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	log      *logrus.Logger
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = loadAppointment(ctx, tx, in.AppointmentID)
		if err != nil {
			return err
		}

		if in.BarberID != nil && ap.BarberID != *in.BarberID {
			return httperr.ErrConflict("appointment_not_owned", "Agendamento pertence a outro barbeiro.")
		}

		if err := domain.Cancel(ap, in.Reason, uc.now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, message.KindAppointmentCancelled, ap)

	uc.audit.Dispatch(audit.Event{
		BarberID: in.BarberID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": in.Reason},
	})

	uc.log.WithField("appointment_id", ap.ID).Info("appointment cancelled")

	return ap, nil
}
