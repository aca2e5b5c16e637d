package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
)

type app struct {
	t      *testing.T
	engine *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := test.NewNullLogger()
	store := memstore.New()

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{
			AppEnv:    "test",
			Timezone:  "America/Sao_Paulo",
			JWTSecret: "test-secret",
			JWTTTL:    time.Hour,
		},
		Log: log,
		Stores: Stores{
			Appointments: store,
			Barbers:      store,
			Clients:      store,
			Services:     store,
			Messages:     store,
			Audit:        store,
		},
		Hasher:  security.NewBcryptHasher(4),
		Catalog: cache.Nop{},
	})

	return &app{t: t, engine: r}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// login registers a barber and returns its id and bearer token.
func (a *app) login(login string) (uint, string) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Carlos", "login": login, "password": "segredo",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"login": login, "password": "segredo",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	body := decode(a.t, w)
	barber := body["barber"].(map[string]any)
	return uint(barber["id"].(float64)), body["token"].(string)
}

func (a *app) createService(token, name, price string, duration int) uint {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/services", token, gin.H{
		"name": name, "price": price, "duration_min": duration,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(a.t, w)["id"].(float64))
}

func (a *app) book(barberID uint, serviceIDs []uint, start, email string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(http.MethodPost, "/api/appointments", "", gin.H{
		"client_name":  "Ana Souza",
		"client_email": email,
		"barber_id":    barberID,
		"service_ids":  serviceIDs,
		"start_time":   start,
	})
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/api/me", "/api/me/messages", "/api/appointments", "/api/clients"} {
		w := a.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "missing_authorization_header", decode(t, w)["error_code"], path)
	}

	w := a.do(http.MethodGet, "/api/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", decode(t, w)["error_code"])
}

func TestLoginWithWrongPassword(t *testing.T) {
	a := newApp(t)
	a.login("carlos")

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"login": "carlos", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])
}

func TestRegisterDuplicateLogin(t *testing.T) {
	a := newApp(t)
	a.login("carlos")

	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Outro", "login": "CARLOS", "password": "segredo",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "login_taken", decode(t, w)["error_code"])
}

func TestAppointmentLifecycle(t *testing.T) {
	a := newApp(t)
	barberID, token := a.login("carlos")

	cut := a.createService(token, "Corte", "35.00", 30)
	beard := a.createService(token, "Barba", "25.50", 0)

	// public catalog
	w := a.do(http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["total"])

	// quote
	w = a.do(http.MethodPost, "/api/appointments/calculate", "", gin.H{"service_ids": []uint{cut, beard}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	quote := decode(t, w)
	assert.Equal(t, "60.50", quote["total"])
	assert.EqualValues(t, 60, quote["duration_min"])

	// booking
	w = a.book(barberID, []uint{cut, beard}, "2099-03-10T10:00", "ana@example.com")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode(t, w)
	apID := uint(ap["id"].(float64))
	assert.Equal(t, "pending", ap["status"])
	assert.Equal(t, "60.5", ap["total_price"])
	assert.EqualValues(t, 60, ap["duration_min"])

	// barber inbox
	w = a.do(http.MethodGet, "/api/me/messages/unread-count", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["unread"])

	w = a.do(http.MethodGet, "/api/me/appointments/pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	// confirm
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/respond", apID), token, gin.H{"accept": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode(t, w)["status"])

	// second response is a conflict
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/respond", apID), token, gin.H{"accept": false})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the slot is now taken
	w = a.book(barberID, []uint{cut}, "2099-03-10T10:30", "bruno@example.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "barber_unavailable", decode(t, w)["error_code"])

	// back-to-back is fine
	w = a.book(barberID, []uint{cut}, "2099-03-10T11:00", "bruno@example.com")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// client lookup
	w = a.do(http.MethodGet, "/api/appointments/client/ana@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	// client cancels
	w = a.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", apID), "", gin.H{"reason": "imprevisto"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := decode(t, w)
	assert.Equal(t, "cancelled", cancelled["status"])
	assert.Contains(t, cancelled["notes"], "Cancelado: imprevisto")

	w = a.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", apID), "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// created + cancelled
	w = a.do(http.MethodGet, fmt.Sprintf("/api/appointments/%d/messages", apID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["total"])
}

func TestRespondToOtherBarbersAppointment(t *testing.T) {
	a := newApp(t)
	carlos, carlosToken := a.login("carlos")
	_, pedroToken := a.login("pedro")

	cut := a.createService(carlosToken, "Corte", "35.00", 30)

	w := a.book(carlos, []uint{cut}, "2099-03-10T10:00", "ana@example.com")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apID := uint(decode(t, w)["id"].(float64))

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/respond", apID), pedroToken, gin.H{"accept": true})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "appointment_not_owned", decode(t, w)["error_code"])
}

func TestCreateAppointmentErrors(t *testing.T) {
	a := newApp(t)
	barberID, token := a.login("carlos")
	cut := a.createService(token, "Corte", "35.00", 30)

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{
			name:   "missing name",
			body:   gin.H{"client_email": "ana@example.com", "barber_id": barberID, "service_ids": []uint{cut}, "start_time": "2099-03-10T10:00"},
			status: http.StatusBadRequest,
		},
		{
			name:   "past start",
			body:   gin.H{"client_name": "Ana", "client_email": "ana@example.com", "barber_id": barberID, "service_ids": []uint{cut}, "start_time": "2000-01-01T10:00"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown barber",
			body:   gin.H{"client_name": "Ana", "client_email": "ana@example.com", "barber_id": 999, "service_ids": []uint{cut}, "start_time": "2099-03-10T10:00"},
			status: http.StatusNotFound,
		},
		{
			name:   "bad date",
			body:   gin.H{"client_name": "Ana", "client_email": "ana@example.com", "barber_id": barberID, "service_ids": []uint{cut}, "start_time": "amanhã"},
			status: http.StatusBadRequest,
			code:   "invalid_date_or_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/api/appointments", "", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode(t, w)["error_code"])
			}
		})
	}
}

func TestGetUnknownAppointment(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/api/appointments/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/api/appointments/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode(t, w)["error_code"])
}

func TestPhotoUploadWithoutStorage(t *testing.T) {
	a := newApp(t)
	_, token := a.login("carlos")

	req := httptest.NewRequest(http.MethodPut, "/api/me/photo", bytes.NewReader([]byte("not an image")))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "storage_unavailable", decode(t, w)["error_code"])
}
