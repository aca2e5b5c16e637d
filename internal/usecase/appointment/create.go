package appointment

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

const maxNotesLength = 500

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string
	ClientEmail string

	BarberID   uint
	ServiceIDs []uint

	StartTime time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	log      *logrus.Logger
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrValidation("client_name_required", "Nome do cliente é obrigatório.")
	}

	email := validators.NormalizeEmail(in.ClientEmail)
	if email == "" {
		return nil, httperr.ErrValidation("client_email_required", "Email do cliente é obrigatório.")
	}

	// --------------------------------------------------
	// 2️⃣ Data futura
	// --------------------------------------------------
	if err := ensureFuture(in.StartTime, uc.now()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Barbeiro
	// --------------------------------------------------
	barber, err := loadBarber(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Serviços
	// --------------------------------------------------
	services, err := resolveServices(ctx, uc.repo, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	duration := domain.TotalDuration(services)

	// --------------------------------------------------
	// 5️⃣ Disponibilidade
	// --------------------------------------------------
	if err := ensureAvailable(ctx, uc.repo, barber.ID, in.StartTime, duration, 0); err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(in.Notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return nil, httperr.ErrValidation("notes_too_long", "Observações devem ter no máximo 500 caracteres.")
	}

	// --------------------------------------------------
	// 6️⃣ Persistência atômica
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:    barber.ID,
		Services:    services,
		StartTime:   in.StartTime,
		DurationMin: duration,
		TotalPrice:  domain.TotalPrice(services),
		Status:      string(domain.InitialStatus()),
		Notes:       notes,
	}

	var clientCreated bool
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if !validators.IsEmailFormatValid(email) {
			return httperr.ErrValidation("invalid_email", "Email inválido.")
		}

		client, created, err := tx.GetOrCreateClient(ctx, name, email)
		if err != nil {
			return err
		}
		clientCreated = created
		ap.ClientID = client.ID

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Notificação + audit
	// --------------------------------------------------
	full, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, message.KindAppointmentCreated, full)

	uc.audit.Dispatch(audit.Event{
		BarberID: &full.BarberID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &full.ID,
		Metadata: map[string]any{
			"client_id":      full.ClientID,
			"client_created": clientCreated,
			"total_price":    full.TotalPrice.StringFixed(2),
		},
	})

	uc.log.WithFields(logrus.Fields{
		"appointment_id": full.ID,
		"barber_id":      full.BarberID,
		"client_id":      full.ClientID,
	}).Info("appointment created")

	return full, nil
}
