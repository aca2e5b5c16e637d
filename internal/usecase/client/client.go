package client

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type Repository interface {
	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id uint) error
	ClientEmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	repo   Repository
	emails validators.EmailChecker
	log    *logrus.Logger
}

func NewService(repo Repository, emails validators.EmailChecker, log *logrus.Logger) *Service {
	return &Service{repo: repo, emails: emails, log: log}
}

func (s *Service) Create(ctx context.Context, fullName, email string) (*models.Client, error) {
	name, addr, err := s.validate(fullName, email)
	if err != nil {
		return nil, err
	}

	c := &models.Client{FullName: name, Email: addr}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	s.log.WithField("client_id", c.ID).Info("client created")
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Client, error) {
	return notFound(s.repo.GetClient(ctx, id))
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return notFound(s.repo.GetClientByEmail(ctx, validators.NormalizeEmail(email)))
}

func (s *Service) List(ctx context.Context) ([]models.Client, error) {
	return s.repo.ListClients(ctx)
}

type UpdateInput struct {
	FullName *string
	Email    *string
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Client, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email := c.FullName, c.Email
	if in.FullName != nil {
		name = *in.FullName
	}
	if in.Email != nil {
		email = *in.Email
	}

	c.FullName, c.Email, err = s.validate(name, email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the client together with its appointments and their
// messages.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.repo.DeleteClient(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return clientNotFound()
	}
	if err == nil {
		s.log.WithField("client_id", id).Info("client deleted")
	}
	return err
}

func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ClientEmailExists(ctx, validators.NormalizeEmail(email))
}

func (s *Service) validate(fullName, email string) (string, string, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "", "", httperr.ErrValidation("client_name_required", "Nome do cliente é obrigatório.")
	}

	addr := validators.NormalizeEmail(email)
	if addr == "" {
		return "", "", httperr.ErrValidation("client_email_required", "Email do cliente é obrigatório.")
	}
	if !s.emails.Valid(addr) {
		return "", "", httperr.ErrValidation("invalid_email", "Email inválido.")
	}

	return name, addr, nil
}

func notFound(c *models.Client, err error) (*models.Client, error) {
	if errors.Is(err, models.ErrNotFound) {
		return nil, clientNotFound()
	}
	return c, err
}

func clientNotFound() error {
	return httperr.ErrNotFound("client_not_found", "Cliente não encontrado.")
}
