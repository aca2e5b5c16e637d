package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

type ServiceHandler struct {
	catalog *ucCatalog.Service
}

func NewServiceHandler(catalog *ucCatalog.Service) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=255"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"duration_min" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price"`
	DurationMin *int             `json:"duration_min" binding:"omitempty,gte=0"`
	Active      *bool            `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), ucCatalog.Input{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), id, ucCatalog.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Active:      req.Active,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}
