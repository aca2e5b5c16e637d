package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/notification"
)

var fixedNow = time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	log      *logrus.Logger
	notifier *notification.Notifier

	barber  models.Barber
	corte   models.Service
	barba   models.Service
	ctx     context.Context
	clockAt func() time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	log, _ := test.NewNullLogger()
	ctx := context.Background()

	f := &fixture{
		store:    store,
		log:      log,
		notifier: notification.NewNotifier(store, log, time.UTC),
		ctx:      ctx,
		clockAt:  func() time.Time { return fixedNow },
	}

	f.barber = models.Barber{Name: "Carlos", Login: "carlos", Active: true}
	require.NoError(t, store.CreateBarber(ctx, &f.barber))

	f.corte = models.Service{Name: "Corte", Price: decimal.NewFromInt(20), DurationMin: 30, Active: true}
	require.NoError(t, store.CreateService(ctx, &f.corte))

	f.barba = models.Service{Name: "Barba", Price: decimal.NewFromInt(15), Active: true}
	require.NoError(t, store.CreateService(ctx, &f.barba))

	return f
}

func (f *fixture) create() *CreateAppointment {
	uc := NewCreateAppointment(f.store, f.notifier, nil, f.log)
	uc.now = f.clockAt
	return uc
}

func (f *fixture) respond() *RespondToAppointment {
	uc := NewRespondToAppointment(f.store, nil, f.log)
	uc.now = f.clockAt
	return uc
}

func (f *fixture) cancel() *CancelAppointment {
	uc := NewCancelAppointment(f.store, f.notifier, nil, f.log)
	uc.now = f.clockAt
	return uc
}

func (f *fixture) update() *UpdateAppointment {
	uc := NewUpdateAppointment(f.store, nil, f.log)
	uc.now = f.clockAt
	return uc
}

// book creates a pending appointment for the given client at start.
func (f *fixture) book(t *testing.T, name, email string, start time.Time, services ...models.Service) *models.Appointment {
	t.Helper()

	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}

	ap, err := f.create().Execute(f.ctx, CreateAppointmentInput{
		ClientName:  name,
		ClientEmail: email,
		BarberID:    f.barber.ID,
		ServiceIDs:  ids,
		StartTime:   start,
	})
	require.NoError(t, err)
	return ap
}

func (f *fixture) confirm(t *testing.T, ap *models.Appointment) {
	t.Helper()
	_, err := f.respond().Execute(f.ctx, RespondToAppointmentInput{
		BarberID:      ap.BarberID,
		AppointmentID: ap.ID,
		Accept:        true,
	})
	require.NoError(t, err)
}
