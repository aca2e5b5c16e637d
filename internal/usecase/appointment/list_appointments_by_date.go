package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
)

// agendaStatuses is everything but cancelled.
var agendaStatuses = []domain.Status{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusRefused,
	domain.StatusCompleted,
}

type ListAppointmentsByWeek struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByWeek(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByWeek {
	return &ListAppointmentsByWeek{
		repo: repo,
		loc:  loc,
	}
}

// Execute returns the barber's agenda for [weekStart, weekStart+7d), with
// weekStart truncated to midnight in the shop timezone.
func (uc *ListAppointmentsByWeek) Execute(
	ctx context.Context,
	barberID uint,
	weekStart time.Time,
) ([]dto.AppointmentListDTO, error) {

	ws := weekStart.In(uc.loc)
	start := time.Date(
		ws.Year(),
		ws.Month(),
		ws.Day(),
		0, 0, 0, 0,
		uc.loc,
	)
	end := start.AddDate(0, 0, 7)

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		BarberID: barberID,
		Statuses: agendaStatuses,
		From:     &start,
		To:       &end,
	})
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
