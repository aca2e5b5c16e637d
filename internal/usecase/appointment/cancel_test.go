package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestCancel_TwiceYieldsSuccessThenConflict(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "Ana", "ana@x.com", fixedNow.Add(time.Hour), f.corte)

	cancelled, err := f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: ap.ID, Reason: "imprevisto"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Equal(t, "Cancelado: imprevisto", cancelled.Notes)
	require.NotNil(t, cancelled.RespondedAt)

	_, err = f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: ap.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsBusiness(err, "appointment_already_cancelled"))

	msgs, err := f.store.ListMessagesForAppointment(f.ctx, ap.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, string(message.KindAppointmentCancelled), msgs[0].Kind)
}

func TestCancel_ConfirmedFreesTheSlot(t *testing.T) {
	f := newFixture(t)
	start := fixedNow.Add(time.Hour)

	ap := f.book(t, "Ana", "ana@x.com", start, f.corte)
	f.confirm(t, ap)

	_, err := f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: ap.ID})
	require.NoError(t, err)

	again := f.book(t, "Bia", "bia@x.com", start, f.corte)
	f.confirm(t, again)
}

func TestCancel_OwnershipOnOperatorPath(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "Ana", "ana@x.com", fixedNow.Add(time.Hour), f.corte)

	stranger := f.barber.ID + 100
	_, err := f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: ap.ID, BarberID: &stranger})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_owned"))

	_, err = f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: 999})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// brokenWrites hands fn a transaction whose appointment writes fail.
type brokenWrites struct {
	domain.Repository
	txCalls int
}

type failingTx struct {
	domain.Repository
}

var errDiskFull = errors.New("disk full")

func (failingTx) UpdateAppointment(context.Context, *models.Appointment) error {
	return errDiskFull
}

func (b *brokenWrites) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	b.txCalls++
	return b.Repository.Transaction(ctx, func(tx domain.Repository) error {
		return fn(failingTx{tx})
	})
}

func TestCancel_FailedWriteLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "Ana", "ana@x.com", fixedNow.Add(time.Hour), f.corte)

	repo := &brokenWrites{Repository: f.store}
	uc := NewCancelAppointment(repo, f.notifier, nil, f.log)
	uc.now = f.clockAt

	_, err := uc.Execute(f.ctx, CancelAppointmentInput{AppointmentID: ap.ID, Reason: "imprevisto"})
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, repo.txCalls)

	stored, err := f.store.GetAppointment(f.ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
	assert.Empty(t, stored.Notes)

	msgs, err := f.store.ListMessagesForAppointment(f.ctx, ap.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, string(message.KindAppointmentCreated), msgs[0].Kind)
}
