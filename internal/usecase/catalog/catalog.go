package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	ListActiveServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
}

// Cache holds the active catalog. A miss is (nil, false, nil).
type Cache interface {
	GetActive(ctx context.Context) ([]models.Service, bool, error)
	SetActive(ctx context.Context, services []models.Service) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache Cache
	log   *logrus.Logger
}

func NewService(repo Repository, cache Cache, log *logrus.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// ListActive reads through the cache. Cache failures only cost a database
// round trip.
func (s *Service) ListActive(ctx context.Context) ([]models.Service, error) {
	if cached, ok, err := s.cache.GetActive(ctx); err != nil {
		s.log.Warnf("catalog cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	services, err := s.repo.ListActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetActive(ctx, services); err != nil {
		s.log.Warnf("catalog cache write failed: %v", err)
	}
	return services, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}
	return svc, err
}

type Input struct {
	Name        string
	Description string
	Price       decimal.Decimal
	DurationMin int
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Service, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	svc := &models.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		DurationMin: in.DurationMin,
		Active:      true,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return svc, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	DurationMin *int
	Active      *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := Input{
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		DurationMin: svc.DurationMin,
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.DurationMin != nil {
		next.DurationMin = *in.DurationMin
	}
	if err := validate(&next); err != nil {
		return nil, err
	}

	svc.Name = next.Name
	svc.Description = next.Description
	svc.Price = next.Price
	svc.DurationMin = next.DurationMin
	if in.Active != nil {
		svc.Active = *in.Active
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return svc, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warnf("catalog cache invalidation failed: %v", err)
	}
}

func validate(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return httperr.ErrValidation("service_name_required", "Nome do serviço é obrigatório.")
	}
	if !in.Price.IsPositive() {
		return httperr.ErrValidation("invalid_price", "O preço deve ser maior que zero.")
	}
	if in.DurationMin < 0 {
		return httperr.ErrValidation("invalid_duration", "Duração inválida.")
	}
	return nil
}
