package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucClient "github.com/BruksfildServices01/barbershop-booking/internal/usecase/client"
)

type ClientHandler struct {
	clients *ucClient.Service
}

func NewClientHandler(clients *ucClient.Service) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type ClientRequest struct {
	FullName string `json:"full_name" binding:"max=100"`
	Email    string `json:"email" binding:"max=100"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,max=100"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clients.Create(c.Request.Context(), req.FullName, req.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Exists(c *gin.Context) {
	exists, err := h.clients.ExistsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) GetByEmail(c *gin.Context) {
	client, err := h.clients.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, ucClient.UpdateInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
