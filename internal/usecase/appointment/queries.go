package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// Queries groups the read side of appointments.
type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return loadAppointment(ctx, q.repo, id)
}

func (q *Queries) ListByClientEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	email = validators.NormalizeEmail(email)
	if email == "" {
		return nil, httperr.ErrValidation("client_email_required", "Email do cliente é obrigatório.")
	}
	return q.repo.ListAppointments(ctx, domain.ListFilter{ClientEmail: email})
}

func (q *Queries) ListByStatus(ctx context.Context, raw string) ([]models.Appointment, error) {
	status, ok := domain.ParseStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		return nil, httperr.ErrValidation("invalid_status", "Status inválido.")
	}
	return q.repo.ListAppointments(ctx, domain.ListFilter{Statuses: []domain.Status{status}})
}

func (q *Queries) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return q.repo.ListAppointments(ctx, domain.ListFilter{})
}

func (q *Queries) ListPendingForBarber(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	return q.repo.ListAppointments(ctx, domain.ListFilter{
		BarberID: barberID,
		Statuses: []domain.Status{domain.StatusPending},
	})
}
