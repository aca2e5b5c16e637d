package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Notifier interface {
	Notify(ctx context.Context, kind message.Kind, ap *models.Appointment)
}

// ======================================================
// SHARED STEPS
// ======================================================

func loadBarber(ctx context.Context, repo domain.Repository, id uint) (*models.Barber, error) {
	barber, err := repo.GetBarber(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found", "Barbeiro não encontrado.")
	}
	return barber, err
}

func loadAppointment(ctx context.Context, repo domain.Repository, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	return ap, err
}

// resolveServices keeps only the ids that exist. An empty result is a
// validation failure.
func resolveServices(ctx context.Context, repo domain.Repository, ids []uint) ([]models.Service, error) {
	services, err := repo.FindServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, httperr.ErrValidation("services_required", "Selecione pelo menos um serviço válido.")
	}
	return services, nil
}

// ensureAvailable checks the window against the barber's confirmed
// appointments. skipID excludes the appointment being changed.
func ensureAvailable(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	start time.Time,
	durationMin int,
	skipID uint,
) error {

	confirmed, err := repo.ListConfirmedForBarber(ctx, barberID)
	if err != nil {
		return err
	}

	if skipID != 0 {
		kept := confirmed[:0]
		for _, ap := range confirmed {
			if ap.ID != skipID {
				kept = append(kept, ap)
			}
		}
		confirmed = kept
	}

	if !domain.IsAvailable(confirmed, start, durationMin) {
		return httperr.ErrConflict("barber_unavailable", "Barbeiro não disponível neste horário.")
	}
	return nil
}

func ensureFuture(start, now time.Time) error {
	if !start.After(now) {
		return httperr.ErrValidation("start_time_not_future", "A data do agendamento deve ser futura.")
	}
	return nil
}
