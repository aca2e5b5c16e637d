package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
)

type BarberHandler struct {
	barbers      *ucBarber.Service
	availability *ucAppointment.GetAvailability
	loc          *time.Location
}

func NewBarberHandler(
	barbers *ucBarber.Service,
	availability *ucAppointment.GetAvailability,
	loc *time.Location,
) *BarberHandler {
	return &BarberHandler{
		barbers:      barbers,
		availability: availability,
		loc:          loc,
	}
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *BarberHandler) ListActive(c *gin.Context) {
	barbers, err := h.barbers.ListActive(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	barber, err := h.barbers.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, barber)
}

// Availability answers GET /barbers/:id/availability?start=...&duration=...
// or &service_ids=1,2.
func (h *BarberHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	start, ok := parseDateTime(c, c.Query("start"), h.loc)
	if !ok {
		return
	}

	in := ucAppointment.AvailabilityInput{BarberID: id, Start: start}

	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		in.DurationMin = d
	}

	if raw := c.Query("service_ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_ids", "Serviços inválidos.")
			return
		}
		in.ServiceIDs = ids
	}

	res, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BarberHandler) SetActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, barber)
}

func parseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
