package inbox

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	GetMessage(ctx context.Context, id uint) (*models.Message, error)
	ListMessagesForRecipient(ctx context.Context, recipientID uint, unreadOnly bool) ([]models.Message, error)
	ListMessagesForAppointment(ctx context.Context, appointmentID uint) ([]models.Message, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkMessageRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) (int64, error)
}

// Inbox is the barber's view over stored messages.
type Inbox struct {
	repo Repository
}

func New(repo Repository) *Inbox {
	return &Inbox{repo: repo}
}

func (i *Inbox) ListForBarber(ctx context.Context, barberID uint, unreadOnly bool) ([]models.Message, error) {
	return i.repo.ListMessagesForRecipient(ctx, barberID, unreadOnly)
}

func (i *Inbox) CountUnread(ctx context.Context, barberID uint) (int64, error) {
	return i.repo.CountUnread(ctx, barberID)
}

// MarkRead hides other barbers' messages behind NotFound.
func (i *Inbox) MarkRead(ctx context.Context, barberID, messageID uint) (*models.Message, error) {
	m, err := i.repo.GetMessage(ctx, messageID)
	if errors.Is(err, models.ErrNotFound) || (err == nil && m.RecipientID != barberID) {
		return nil, httperr.ErrNotFound("message_not_found", "Mensagem não encontrada.")
	}
	if err != nil {
		return nil, err
	}

	if !m.Read {
		if err := i.repo.MarkMessageRead(ctx, m.ID); err != nil {
			return nil, err
		}
		m.Read = true
	}
	return m, nil
}

func (i *Inbox) MarkAllRead(ctx context.Context, barberID uint) (int64, error) {
	return i.repo.MarkAllRead(ctx, barberID)
}

func (i *Inbox) ListForAppointment(ctx context.Context, appointmentID uint) ([]models.Message, error) {
	return i.repo.ListMessagesForAppointment(ctx, appointmentID)
}
