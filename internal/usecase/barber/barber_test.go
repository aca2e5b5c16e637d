package barber

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
)

// plainHasher keeps the tests fast; bcrypt is covered in the security package.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Matches(h, p string) bool      { return h == "h:"+p }

type fakeStorage struct {
	key         string
	contentType string
	err         error
}

func (f *fakeStorage) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key = key
	f.contentType = contentType
	return "https://cdn.test/" + key, nil
}

func newService(t *testing.T, storage PhotoStorage) (*Service, *security.TokenIssuer) {
	t.Helper()
	log, _ := test.NewNullLogger()
	tokens := security.NewTokenIssuer("secret", time.Hour)
	return NewService(memstore.New(), plainHasher{}, tokens, storage, nil, log), tokens
}

func register(t *testing.T, s *Service, login string) uint {
	t.Helper()
	b, err := s.Register(context.Background(), RegisterInput{Name: "Carlos", Login: login, Password: "segredo"})
	require.NoError(t, err)
	return b.ID
}

func TestRegister(t *testing.T) {
	s, _ := newService(t, nil)
	ctx := context.Background()

	b, err := s.Register(ctx, RegisterInput{Name: " Carlos ", Login: " Carlos ", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, "Carlos", b.Name)
	assert.Equal(t, "carlos", b.Login)
	assert.Equal(t, "h:segredo", b.PasswordHash)
	assert.True(t, b.Active)

	_, err = s.Register(ctx, RegisterInput{Name: "Outro", Login: "CARLOS", Password: "segredo"})
	assert.True(t, httperr.IsBusiness(err, "login_taken"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	_, err = s.Register(ctx, RegisterInput{Login: "x", Password: "segredo"})
	assert.True(t, httperr.IsBusiness(err, "name_required"))

	_, err = s.Register(ctx, RegisterInput{Name: "X", Login: "x", Password: "123"})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))
}

func TestAuthenticate(t *testing.T) {
	s, tokens := newService(t, nil)
	ctx := context.Background()
	id := register(t, s, "carlos")

	session, err := s.Authenticate(ctx, "carlos", "segredo")
	require.NoError(t, err)
	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.BarberID)

	_, err = s.Authenticate(ctx, "carlos", "errada")
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	_, err = s.Authenticate(ctx, "ninguem", "segredo")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = s.SetActive(ctx, id, false)
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "carlos", "segredo")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"), "inactive barbers cannot log in")
}

func TestUpdateAndListActive(t *testing.T) {
	s, _ := newService(t, nil)
	ctx := context.Background()
	a := register(t, s, "carlos")
	b := register(t, s, "rui")

	login := "rui"
	_, err := s.Update(ctx, a, UpdateInput{Login: &login})
	assert.True(t, httperr.IsBusiness(err, "login_taken"))

	same := "carlos"
	name := "Carlos Silva"
	updated, err := s.Update(ctx, a, UpdateInput{Name: &name, Login: &same})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Silva", updated.Name)

	_, err = s.SetActive(ctx, b, false)
	require.NoError(t, err)

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a, active[0].ID)

	_, err = s.Get(ctx, 999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20))))

	t.Run("without storage", func(t *testing.T) {
		s, _ := newService(t, nil)
		id := register(t, s, "carlos")
		_, err := s.UploadPhoto(ctx, id, buf.Bytes())
		assert.True(t, httperr.IsBusiness(err, "storage_unavailable"))
	})

	t.Run("stores webp under the barber prefix", func(t *testing.T) {
		storage := &fakeStorage{}
		s, _ := newService(t, storage)
		id := register(t, s, "carlos")

		b, err := s.UploadPhoto(ctx, id, buf.Bytes())
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^barbers/1/[0-9a-f-]{36}\.webp$`), storage.key)
		assert.Equal(t, "image/webp", storage.contentType)
		assert.Equal(t, "https://cdn.test/"+storage.key, b.PhotoURL)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		s, _ := newService(t, &fakeStorage{})
		id := register(t, s, "carlos")
		_, err := s.UploadPhoto(ctx, id, []byte("nope"))
		assert.True(t, httperr.IsBusiness(err, "invalid_image"))
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		s, _ := newService(t, &fakeStorage{err: errors.New("s3 down")})
		id := register(t, s, "carlos")
		_, err := s.UploadPhoto(ctx, id, buf.Bytes())
		assert.EqualError(t, err, "s3 down")
	})
}
