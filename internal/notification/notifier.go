package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type MessageWriter interface {
	CreateMessage(ctx context.Context, m *models.Message) error
}

// Notifier stores messages for barbers. Emission is fire-and-forget: a
// failure is logged and never reaches the caller.
type Notifier struct {
	store MessageWriter
	log   *logrus.Logger
	loc   *time.Location
	now   func() time.Time
}

func NewNotifier(store MessageWriter, log *logrus.Logger, loc *time.Location) *Notifier {
	return &Notifier{
		store: store,
		log:   log,
		loc:   loc,
		now:   time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, kind message.Kind, ap *models.Appointment) {
	apID := ap.ID
	m := &models.Message{
		Content:       Compose(kind, ap, n.loc),
		SentAt:        n.now(),
		AppointmentID: &apID,
		RecipientID:   ap.BarberID,
		Kind:          string(kind),
	}

	if err := n.store.CreateMessage(ctx, m); err != nil {
		n.log.WithFields(logrus.Fields{
			"appointment_id": ap.ID,
			"barber_id":      ap.BarberID,
			"kind":           kind,
		}).Warnf("failed to store notification: %v", err)
	}
}
