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

type UpdateAppointmentInput struct {
	AppointmentID uint
	StartTime     *time.Time
	ServiceIDs    []uint

	// BarberID, when set, restricts the change to that barber's appointments.
	BarberID *uint
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *logrus.Logger
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
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

		if err := domain.CanUpdate(domain.Status(ap.Status)); err != nil {
			return err
		}

		if in.StartTime == nil && len(in.ServiceIDs) == 0 {
			return httperr.ErrValidation("nothing_to_update", "Informe nova data ou novos serviços.")
		}

		if in.StartTime != nil {
			if err := ensureFuture(*in.StartTime, uc.now()); err != nil {
				return err
			}
		}

		var services []models.Service
		if len(in.ServiceIDs) > 0 {
			services, err = resolveServices(ctx, tx, in.ServiceIDs)
			if err != nil {
				return err
			}
		}

		if err := domain.Reschedule(ap, in.StartTime, services); err != nil {
			return err
		}

		if err := ensureAvailable(ctx, tx, ap.BarberID, ap.StartTime, ap.DurationMin, ap.ID); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		if services != nil {
			return tx.ReplaceAppointmentServices(ctx, ap, services)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: in.BarberID,
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"start_time":  ap.StartTime,
			"total_price": ap.TotalPrice.StringFixed(2),
		},
	})

	uc.log.WithField("appointment_id", ap.ID).Info("appointment updated")

	return ap, nil
}
