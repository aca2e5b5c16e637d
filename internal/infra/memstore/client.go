package memstore

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func (s *Store) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.data.nextID()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.data.clients[c.ID] = *c
	return nil
}

func (s *Store) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data.clients[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetClientByEmail(_ context.Context, email string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Client
	for _, c := range s.data.clients {
		if c.Email != email {
			continue
		}
		if found == nil || c.ID < found.ID {
			c := c
			found = &c
		}
	}
	if found == nil {
		return nil, models.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListClients(_ context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, 0, len(s.data.clients))
	for _, c := range s.data.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (s *Store) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.clients[c.ID]; !ok {
		return models.ErrNotFound
	}
	c.UpdatedAt = s.now()
	s.data.clients[c.ID] = *c
	return nil
}

// DeleteClient cascades to the client's appointments and their messages.
func (s *Store) DeleteClient(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.clients[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.data.clients, id)

	for apID, ap := range s.data.appointments {
		if ap.ClientID != id {
			continue
		}
		delete(s.data.appointments, apID)
		delete(s.data.apServices, apID)

		for msgID, m := range s.data.messages {
			if m.AppointmentID != nil && *m.AppointmentID == apID {
				delete(s.data.messages, msgID)
			}
		}
	}
	return nil
}

func (s *Store) ClientEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.data.clients {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}
