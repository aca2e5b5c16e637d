package notification

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type recordingWriter struct {
	msgs []models.Message
	err  error
}

func (w *recordingWriter) CreateMessage(_ context.Context, m *models.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, *m)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:         7,
		BarberID:   2,
		Client:     models.Client{FullName: "Ana"},
		StartTime:  time.Date(2030, 5, 10, 13, 30, 0, 0, time.UTC),
		TotalPrice: decimal.RequireFromString("35"),
		Services:   []models.Service{{Name: "Corte"}, {Name: "Barba"}},
	}
}

func TestCompose_Created(t *testing.T) {
	got := Compose(message.KindAppointmentCreated, sampleAppointment(), time.UTC)

	assert.Equal(t, "Novo agendamento criado!\nCliente: Ana\nData/Hora: 10/05/2030 13:30\nServiços: Corte, Barba\nValor: R$ 35.00", got)
}

func TestCompose_UsesShopLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got := Compose(message.KindAppointmentCancelled, sampleAppointment(), loc)

	assert.Contains(t, got, "10/05/2030 10:30")
}

func TestNotifier_StoresMessageForBarber(t *testing.T) {
	w := &recordingWriter{}
	n := NewNotifier(w, quietLogger(), time.UTC)

	n.Notify(context.Background(), message.KindAppointmentCreated, sampleAppointment())

	require.Len(t, w.msgs, 1)
	m := w.msgs[0]
	assert.Equal(t, uint(2), m.RecipientID)
	require.NotNil(t, m.AppointmentID)
	assert.Equal(t, uint(7), *m.AppointmentID)
	assert.Equal(t, string(message.KindAppointmentCreated), m.Kind)
	assert.False(t, m.Read)
}

func TestNotifier_SwallowsStoreErrors(t *testing.T) {
	w := &recordingWriter{err: errors.New("disk full")}
	n := NewNotifier(w, quietLogger(), time.UTC)

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), message.KindAppointmentCancelled, sampleAppointment())
	})
	assert.Empty(t, w.msgs)
}
