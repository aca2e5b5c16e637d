package memstore

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func (s *Store) CreateMessage(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.data.nextID()
	if m.SentAt.IsZero() {
		m.SentAt = s.now()
	}
	stored := *m
	stored.Appointment = nil
	stored.Recipient = models.Barber{}
	s.data.messages[m.ID] = stored
	return nil
}

func (s *Store) GetMessage(_ context.Context, id uint) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data.messages[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ListMessagesForRecipient(
	_ context.Context,
	recipientID uint,
	unreadOnly bool,
) ([]models.Message, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterMessages(func(m models.Message) bool {
		return m.RecipientID == recipientID && (!unreadOnly || !m.Read)
	}), nil
}

func (s *Store) ListMessagesForAppointment(
	_ context.Context,
	appointmentID uint,
) ([]models.Message, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterMessages(func(m models.Message) bool {
		return m.AppointmentID != nil && *m.AppointmentID == appointmentID
	}), nil
}

func (s *Store) CountUnread(_ context.Context, recipientID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, m := range s.data.messages {
		if m.RecipientID == recipientID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (s *Store) MarkMessageRead(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.data.messages[id]
	if !ok {
		return models.ErrNotFound
	}
	m.Read = true
	s.data.messages[id] = m
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, recipientID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, m := range s.data.messages {
		if m.RecipientID == recipientID && !m.Read {
			m.Read = true
			s.data.messages[id] = m
			n++
		}
	}
	return n, nil
}

// filterMessages returns matches newest first. Caller holds the lock.
func (s *Store) filterMessages(keep func(models.Message) bool) []models.Message {
	out := make([]models.Message, 0)
	for _, m := range s.data.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].SentAt.After(out[j].SentAt)
	})
	return out
}
