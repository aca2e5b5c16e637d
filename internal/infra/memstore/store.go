// Package memstore is an in-memory, arena style store keyed by ids. It
// implements every repository the use cases need and backs the tests and the
// "memory" storage driver.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type arena struct {
	seq uint

	barbers      map[uint]models.Barber
	clients      map[uint]models.Client
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	apServices   map[uint][]uint
	messages     map[uint]models.Message
	auditLogs    []models.AuditLog
}

func newArena() *arena {
	return &arena{
		barbers:      map[uint]models.Barber{},
		clients:      map[uint]models.Client{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
		apServices:   map[uint][]uint{},
		messages:     map[uint]models.Message{},
	}
}

func (a *arena) clone() *arena {
	c := &arena{
		seq:          a.seq,
		barbers:      make(map[uint]models.Barber, len(a.barbers)),
		clients:      make(map[uint]models.Client, len(a.clients)),
		services:     make(map[uint]models.Service, len(a.services)),
		appointments: make(map[uint]models.Appointment, len(a.appointments)),
		apServices:   make(map[uint][]uint, len(a.apServices)),
		messages:     make(map[uint]models.Message, len(a.messages)),
		auditLogs:    append([]models.AuditLog(nil), a.auditLogs...),
	}
	for k, v := range a.barbers {
		c.barbers[k] = v
	}
	for k, v := range a.clients {
		c.clients[k] = v
	}
	for k, v := range a.services {
		c.services[k] = v
	}
	for k, v := range a.appointments {
		c.appointments[k] = v
	}
	for k, v := range a.apServices {
		c.apServices[k] = append([]uint(nil), v...)
	}
	for k, v := range a.messages {
		c.messages[k] = v
	}
	return c
}

func (a *arena) nextID() uint {
	a.seq++
	return a.seq
}

// Store is safe for concurrent use. Transactions hold the write lock for
// their whole duration.
type Store struct {
	mu   sync.RWMutex
	data *arena
	now  func() time.Time
}

func New() *Store {
	return &Store{
		data: newArena(),
		now:  time.Now,
	}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (s *Store) CreateBarber(_ context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.data.nextID()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.data.barbers[b.ID] = *b
	return nil
}

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data.barbers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetBarberByLogin(_ context.Context, login string) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.data.barbers {
		if b.Login == login {
			return &b, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) ListActiveBarbers(_ context.Context) ([]models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Barber, 0)
	for _, b := range s.data.barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateBarber(_ context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.barbers[b.ID]; !ok {
		return models.ErrNotFound
	}
	b.UpdatedAt = s.now()
	s.data.barbers[b.ID] = *b
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.data.nextID()
	svc.CreatedAt = s.now()
	svc.UpdatedAt = svc.CreatedAt
	s.data.services[svc.ID] = *svc
	return nil
}

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.data.services[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &svc, nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.services[svc.ID]; !ok {
		return models.ErrNotFound
	}
	svc.UpdatedAt = s.now()
	s.data.services[svc.ID] = *svc
	return nil
}

func (s *Store) ListActiveServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0)
	for _, svc := range s.data.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) FindServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.servicesByIDs(ids), nil
}

// servicesByIDs resolves ids in ascending id order, skipping unknown and
// duplicated ids.
func (a *arena) servicesByIDs(ids []uint) []models.Service {
	seen := map[uint]bool{}
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if svc, ok := a.services[id]; ok {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.data.nextID()
	l.CreatedAt = s.now()
	s.data.auditLogs = append(s.data.auditLogs, *l)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for _, l := range s.data.auditLogs {
		if l.BarberID == nil || *l.BarberID != f.BarberID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	// newest first
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := f.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Compile-time check
var (
	_ domain.Repository = (*Store)(nil)
	_ audit.Writer      = (*Store)(nil)
	_ audit.Reader      = (*Store)(nil)
)
