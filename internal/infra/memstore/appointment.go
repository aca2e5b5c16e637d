package memstore

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// --------------------------------------------------
// Client lookup used by the create flow
// --------------------------------------------------

func (s *Store) GetOrCreateClient(
	_ context.Context,
	fullName string,
	email string,
) (*models.Client, bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.data.clients {
		if c.Email == email && c.FullName == fullName {
			return &c, false, nil
		}
	}

	c := models.Client{
		ID:       s.data.nextID(),
		FullName: fullName,
		Email:    email,
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.data.clients[c.ID] = c
	return &c, true, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *Store) ListConfirmedForBarber(
	_ context.Context,
	barberID uint,
) ([]models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.StatusConfirmed
	return s.data.listAppointments(domain.ListFilter{
		BarberID: barberID,
		Statuses: []domain.Status{status},
	}, false), nil
}

func (s *Store) CreateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	ap.ID = s.data.nextID()
	ap.CreatedAt = s.now()
	ap.UpdatedAt = ap.CreatedAt
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	s.data.putAppointment(*ap)
	s.data.apServices[ap.ID] = serviceIDs(ap.Services)
	return nil
}

func (s *Store) GetAppointment(
	_ context.Context,
	id uint,
) (*models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.data.appointments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	ap = s.data.hydrate(ap)
	return &ap, nil
}

func (s *Store) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.appointments[ap.ID]; !ok {
		return models.ErrNotFound
	}
	ap.UpdatedAt = s.now()
	s.data.putAppointment(*ap)
	return nil
}

func (s *Store) ReplaceAppointmentServices(
	_ context.Context,
	ap *models.Appointment,
	services []models.Service,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.appointments[ap.ID]; !ok {
		return models.ErrNotFound
	}
	s.data.apServices[ap.ID] = serviceIDs(services)
	ap.Services = services
	return nil
}

func (s *Store) ListAppointments(
	_ context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.listAppointments(filter, true), nil
}

// Transaction runs fn against a private copy of the arena and publishes the
// copy only when fn succeeds. Other callers wait until it ends, so a rollback
// never discards their writes.
func (s *Store) Transaction(
	_ context.Context,
	fn func(tx domain.Repository) error,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{data: s.data.clone(), now: s.now}
	if err := fn(tx); err != nil {
		return err
	}

	s.data = tx.data
	return nil
}

// --------------------------------------------------
// arena helpers
// --------------------------------------------------

// putAppointment stores the row without its associations.
func (a *arena) putAppointment(ap models.Appointment) {
	ap.Client = models.Client{}
	ap.Barber = models.Barber{}
	ap.Services = nil
	a.appointments[ap.ID] = ap
}

func (a *arena) hydrate(ap models.Appointment) models.Appointment {
	ap.Client = a.clients[ap.ClientID]
	ap.Barber = a.barbers[ap.BarberID]
	ap.Services = a.servicesByIDs(a.apServices[ap.ID])
	return ap
}

func (a *arena) listAppointments(filter domain.ListFilter, preload bool) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range a.appointments {
		if !a.matches(ap, filter) {
			continue
		}
		if preload {
			ap = a.hydrate(ap)
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (a *arena) matches(ap models.Appointment, f domain.ListFilter) bool {
	if f.BarberID != 0 && ap.BarberID != f.BarberID {
		return false
	}
	if f.ClientEmail != "" && a.clients[ap.ClientID].Email != f.ClientEmail {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if string(st) == ap.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && ap.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && !ap.StartTime.Before(*f.To) {
		return false
	}
	return true
}

func serviceIDs(services []models.Service) []uint {
	ids := make([]uint, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	return ids
}
