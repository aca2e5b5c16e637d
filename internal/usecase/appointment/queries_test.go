package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

func TestRecalculateTotal(t *testing.T) {
	f := newFixture(t)
	uc := NewRecalculateTotal(f.store)

	q, err := uc.Execute(f.ctx, []uint{f.corte.ID, f.barba.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, "35.00", q.Total.StringFixed(2))
	assert.Equal(t, 60, q.DurationMin)

	_, err = uc.Execute(f.ctx, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = uc.Execute(f.ctx, []uint{998, 999})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	start := fixedNow.Add(24 * time.Hour)
	ap := f.book(t, "Ana", "ana@x.com", start, f.corte)
	uc := NewGetAvailability(f.store)

	res, err := uc.Execute(f.ctx, AvailabilityInput{BarberID: f.barber.ID, Start: start})
	require.NoError(t, err)
	assert.True(t, res.Available, "pending does not block")

	f.confirm(t, ap)

	res, err = uc.Execute(f.ctx, AvailabilityInput{BarberID: f.barber.ID, Start: start.Add(-30 * time.Minute), ServiceIDs: []uint{f.corte.ID}})
	require.NoError(t, err)
	assert.True(t, res.Available, "ends exactly when the confirmed one starts")

	res, err = uc.Execute(f.ctx, AvailabilityInput{BarberID: f.barber.ID, Start: start.Add(-30 * time.Minute), DurationMin: 31})
	require.NoError(t, err)
	assert.False(t, res.Available)

	_, err = uc.Execute(f.ctx, AvailabilityInput{BarberID: 999, Start: start})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	start := fixedNow.Add(24 * time.Hour)

	a := f.book(t, "Ana", "ana@x.com", start, f.corte)
	f.book(t, "Bia", "bia@x.com", start.Add(time.Hour), f.corte)
	f.confirm(t, a)

	q := NewQueries(f.store)

	byEmail, err := q.ListByClientEmail(f.ctx, " ANA@x.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, a.ID, byEmail[0].ID)

	confirmed, err := q.ListByStatus(f.ctx, "Confirmed")
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = q.ListByStatus(f.ctx, "bogus")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	pending, err := q.ListPendingForBarber(f.ctx, f.barber.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := q.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = q.Get(f.ctx, 999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestAgenda_WeekAndMonthExcludeCancelled(t *testing.T) {
	f := newFixture(t)
	monday := time.Date(2030, 3, 11, 9, 0, 0, 0, time.UTC)

	a := f.book(t, "Ana", "ana@x.com", monday, f.corte)
	f.book(t, "Bia", "bia@x.com", monday.Add(48*time.Hour), f.corte, f.barba)
	f.book(t, "Caio", "caio@x.com", monday.Add(7*24*time.Hour), f.corte)

	_, err := f.cancel().Execute(f.ctx, CancelAppointmentInput{AppointmentID: a.ID})
	require.NoError(t, err)

	week, err := NewListAppointmentsByWeek(f.store, time.UTC).Execute(f.ctx, f.barber.ID, monday.Add(5*time.Hour))
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "Bia", week[0].ClientName)
	assert.Equal(t, []string{"Corte", "Barba"}, week[0].ServiceNames)
	assert.Equal(t, "Pendente", week[0].StatusLabel)

	month, err := NewListAppointmentsByMonth(f.store, time.UTC).Execute(f.ctx, f.barber.ID, 2030, 3)
	require.NoError(t, err)
	assert.Len(t, month, 2)

	_, err = NewListAppointmentsByMonth(f.store, time.UTC).Execute(f.ctx, f.barber.ID, 2030, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}
