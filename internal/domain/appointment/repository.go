package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ListFilter narrows ListAppointments. Zero fields are ignored; From/To bound
// the start time as [From, To).
type ListFilter struct {
	BarberID    uint
	ClientEmail string
	Statuses    []Status
	From        *time.Time
	To          *time.Time
}

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Service --------
	FindServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		fullName string,
		email string,
	) (*models.Client, bool, error)

	// -------- Appointment (create / conflict) --------
	ListConfirmedForBarber(
		ctx context.Context,
		barberID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ReplaceAppointmentServices(
		ctx context.Context,
		ap *models.Appointment,
		services []models.Service,
	) error

	// -------- Queries --------
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
