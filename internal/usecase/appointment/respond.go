package appointment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type RespondToAppointmentInput struct {
	BarberID      uint
	AppointmentID uint
	Accept        bool
	Reason        string
}

type RespondToAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	now   func() time.Time
}

func NewRespondToAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *RespondToAppointment {
	return &RespondToAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// Execute confirms or refuses a pending appointment. Confirmation re-checks
// the slot, so of two pending requests for the same window only the first
// confirmed one wins.
func (uc *RespondToAppointment) Execute(
	ctx context.Context,
	in RespondToAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = loadAppointment(ctx, tx, in.AppointmentID)
		if err != nil {
			return err
		}

		if ap.BarberID != in.BarberID {
			return httperr.ErrConflict("appointment_not_owned", "Agendamento pertence a outro barbeiro.")
		}

		if err := domain.CanRespond(domain.Status(ap.Status)); err != nil {
			return err
		}

		if in.Accept {
			if err := ensureAvailable(ctx, tx, ap.BarberID, ap.StartTime, ap.DurationMin, ap.ID); err != nil {
				return err
			}
		}

		if err := domain.Respond(ap, in.Accept, in.Reason, uc.now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionAppointmentRefused
	if in.Accept {
		action = audit.ActionAppointmentConfirmed
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &in.BarberID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": in.Reason},
	})

	uc.log.WithFields(logrus.Fields{
		"appointment_id": ap.ID,
		"barber_id":      in.BarberID,
		"status":         ap.Status,
	}).Info("appointment answered")

	return ap, nil
}
