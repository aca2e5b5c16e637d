package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
)

type AuthHandler struct {
	barbers *ucBarber.Service
}

func NewAuthHandler(barbers *ucBarber.Service) *AuthHandler {
	return &AuthHandler{barbers: barbers}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Login    string `json:"login" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.Register(c.Request.Context(), ucBarber.RegisterInput{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"barber": barber})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.barbers.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  session.Token,
		"barber": session.Barber,
	})
}
