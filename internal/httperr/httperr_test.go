package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusiness_MatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrConflict("barber_unavailable", "Barbeiro indisponível."))

	assert.True(t, IsBusiness(err, "barber_unavailable"))
	assert.False(t, IsBusiness(err, "appointment_not_found"))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(errors.New("boom"), KindConflict))
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation("x", ""), http.StatusBadRequest},
		{ErrNotFound("x", ""), http.StatusNotFound},
		{ErrConflict("x", ""), http.StatusConflict},
		{ErrBusiness("x"), http.StatusConflict},
		{ErrUnauthorized("x", ""), http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func TestRespond_WritesCodeAndMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, ErrNotFound("appointment_not_found", "Agendamento não encontrado."))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error_code":"appointment_not_found","message":"Agendamento não encontrado."}`, w.Body.String())
}

func TestRespond_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error_code":"internal_error","message":"Erro interno."}`, w.Body.String())
}
