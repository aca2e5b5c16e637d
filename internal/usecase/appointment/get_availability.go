package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

type AvailabilityInput struct {
	BarberID uint
	Start    time.Time

	// DurationMin wins over ServiceIDs when both are set. With neither, the
	// default single service duration is used.
	DurationMin int
	ServiceIDs  []uint
}

type AvailabilityResult struct {
	BarberID    uint      `json:"barber_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
	Available   bool      `json:"available"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	if in.Start.IsZero() {
		return nil, httperr.ErrValidation("start_time_required", "Informe a data e hora.")
	}
	if in.DurationMin < 0 {
		return nil, httperr.ErrValidation("invalid_duration", "Duração inválida.")
	}

	barber, err := loadBarber(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}

	duration := in.DurationMin
	if duration == 0 && len(in.ServiceIDs) > 0 {
		services, err := resolveServices(ctx, uc.repo, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		duration = domain.TotalDuration(services)
	}
	if duration == 0 {
		duration = domain.DefaultServiceDurationMin
	}

	confirmed, err := uc.repo.ListConfirmedForBarber(ctx, barber.ID)
	if err != nil {
		return nil, err
	}

	window := domain.NewInterval(in.Start, duration)
	return &AvailabilityResult{
		BarberID:    barber.ID,
		Start:       window.Start,
		End:         window.End,
		DurationMin: duration,
		Available:   domain.IsAvailable(confirmed, in.Start, duration),
	}, nil
}
