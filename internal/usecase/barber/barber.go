package barber

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/media"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
)

const minPasswordLength = 6

type Repository interface {
	CreateBarber(ctx context.Context, b *models.Barber) error
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	GetBarberByLogin(ctx context.Context, login string) (*models.Barber, error)
	ListActiveBarbers(ctx context.Context) ([]models.Barber, error)
	UpdateBarber(ctx context.Context, b *models.Barber) error
}

// PhotoStorage stores an object and returns its public URL.
type PhotoStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Service struct {
	repo    Repository
	hasher  security.Hasher
	tokens  *security.TokenIssuer
	storage PhotoStorage
	audit   *audit.Dispatcher
	log     *logrus.Logger
}

// NewService wires the barber use cases. storage may be nil, in which case
// photo uploads are refused.
func NewService(
	repo Repository,
	hasher security.Hasher,
	tokens *security.TokenIssuer,
	storage PhotoStorage,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *Service {
	return &Service{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		storage: storage,
		audit:   audit,
		log:     log,
	}
}

// ======================================================
// REGISTER / LOGIN
// ======================================================

type RegisterInput struct {
	Name     string
	Login    string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Barber, error) {
	name := strings.TrimSpace(in.Name)
	login := normalizeLogin(in.Login)

	if name == "" {
		return nil, httperr.ErrValidation("name_required", "Nome é obrigatório.")
	}
	if login == "" {
		return nil, httperr.ErrValidation("login_required", "Login é obrigatório.")
	}
	if len(in.Password) < minPasswordLength {
		return nil, httperr.ErrValidation("weak_password", "A senha deve ter pelo menos 6 caracteres.")
	}

	if err := s.ensureLoginFree(ctx, login, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	b := &models.Barber{
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.repo.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BarberID: &b.ID,
		Action:   audit.ActionBarberRegistered,
		Entity:   "barber",
		EntityID: &b.ID,
	})
	s.log.WithField("barber_id", b.ID).Info("barber registered")

	return b, nil
}

type Session struct {
	Barber *models.Barber
	Token  string
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*Session, error) {
	invalid := httperr.ErrUnauthorized("invalid_credentials", "Login ou senha inválidos.")

	b, err := s.repo.GetBarberByLogin(ctx, normalizeLogin(login))
	if errors.Is(err, models.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}

	if !b.Active || !s.hasher.Matches(b.PasswordHash, password) {
		return nil, invalid
	}

	token, err := s.tokens.Issue(b)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BarberID: &b.ID,
		Action:   audit.ActionBarberLogin,
		Entity:   "barber",
		EntityID: &b.ID,
	})

	return &Session{Barber: b, Token: token}, nil
}

// ======================================================
// PROFILE
// ======================================================

func (s *Service) Get(ctx context.Context, id uint) (*models.Barber, error) {
	b, err := s.repo.GetBarber(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found", "Barbeiro não encontrado.")
	}
	return b, err
}

func (s *Service) ListActive(ctx context.Context) ([]models.Barber, error) {
	return s.repo.ListActiveBarbers(ctx)
}

type UpdateInput struct {
	Name  *string
	Login *string
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Barber, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("name_required", "Nome é obrigatório.")
		}
		b.Name = name
	}

	if in.Login != nil {
		login := normalizeLogin(*in.Login)
		if login == "" {
			return nil, httperr.ErrValidation("login_required", "Login é obrigatório.")
		}
		if err := s.ensureLoginFree(ctx, login, b.ID); err != nil {
			return nil, err
		}
		b.Login = login
	}

	if err := s.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) SetActive(ctx context.Context, id uint, active bool) (*models.Barber, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Active = active
	if err := s.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ======================================================
// PHOTO
// ======================================================

func (s *Service) UploadPhoto(ctx context.Context, id uint, image []byte) (*models.Barber, error) {
	if s.storage == nil {
		return nil, httperr.ErrConflict("storage_unavailable", "Armazenamento de fotos não configurado.")
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	webp, err := media.ToWebP(image, media.MaxPhotoSide)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_image", "Imagem inválida. Envie JPEG, PNG ou WebP.")
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", b.ID, uuid.NewString())

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	url, err := s.storage.Put(ctx, key, media.ContentTypeWebP, webp)
	if err != nil {
		return nil, err
	}

	b.PhotoURL = url
	if err := s.repo.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"barber_id": b.ID, "key": key}).Info("barber photo uploaded")
	return b, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Service) ensureLoginFree(ctx context.Context, login string, selfID uint) error {
	existing, err := s.repo.GetBarberByLogin(ctx, login)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return httperr.ErrConflict("login_taken", "Login já está em uso.")
	}
	return nil
}

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
