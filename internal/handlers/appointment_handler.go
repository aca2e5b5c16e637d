package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    *ucAppointment.CreateAppointment
	respond   *ucAppointment.RespondToAppointment
	cancel    *ucAppointment.CancelAppointment
	update    *ucAppointment.UpdateAppointment
	calculate *ucAppointment.RecalculateTotal
	byWeek    *ucAppointment.ListAppointmentsByWeek
	byMonth   *ucAppointment.ListAppointmentsByMonth
	queries   *ucAppointment.Queries
	loc       *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	respond *ucAppointment.RespondToAppointment,
	cancel *ucAppointment.CancelAppointment,
	update *ucAppointment.UpdateAppointment,
	calculate *ucAppointment.RecalculateTotal,
	byWeek *ucAppointment.ListAppointmentsByWeek,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	queries *ucAppointment.Queries,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:    create,
		respond:   respond,
		cancel:    cancel,
		update:    update,
		calculate: calculate,
		byWeek:    byWeek,
		byMonth:   byMonth,
		queries:   queries,
		loc:       loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	BarberID    uint   `json:"barber_id"`
	ServiceIDs  []uint `json:"service_ids"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes" binding:"max=500"`
}

type RespondRequest struct {
	Accept *bool  `json:"accept" binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

type UpdateAppointmentRequest struct {
	StartTime  *string `json:"start_time"`
	ServiceIDs []uint  `json:"service_ids"`
}

type CalculateRequest struct {
	ServiceIDs []uint `json:"service_ids"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	start, ok := parseDateTime(c, req.StartTime, h.loc)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		BarberID:    req.BarberID,
		ServiceIDs:  req.ServiceIDs,
		StartTime:   start,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByClientEmail(c *gin.Context) {
	apps, err := h.queries.ListByClientEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AppointmentList(apps))
}

// Cancel is the client path: no ownership check.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.doCancel(c, nil)
}

func (h *AppointmentHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.calculate.Execute(c.Request.Context(), req.ServiceIDs)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        quote.Total.StringFixed(2),
		"duration_min": quote.DurationMin,
	})
}

// ======================================================
// BARBER (secured)
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	apps, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AppointmentList(apps))
}

func (h *AppointmentHandler) ListByStatus(c *gin.Context) {
	apps, err := h.queries.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AppointmentList(apps))
}

func (h *AppointmentHandler) ListPending(c *gin.Context) {
	apps, err := h.queries.ListPendingForBarber(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AppointmentList(apps))
}

// ListByWeek defaults to the current week when ?start= is missing.
func (h *AppointmentHandler) ListByWeek(c *gin.Context) {
	start := time.Now().In(h.loc)
	if raw := c.Query("start"); raw != "" {
		var ok bool
		if start, ok = parseDate(c, raw, h.loc); !ok {
			return
		}
	}

	out, err := h.byWeek.Execute(c.Request.Context(), middleware.BarberID(c), start)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	now := time.Now().In(h.loc)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), middleware.BarberID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Respond(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.respond.Execute(c.Request.Context(), ucAppointment.RespondToAppointmentInput{
		BarberID:      middleware.BarberID(c),
		AppointmentID: id,
		Accept:        *req.Accept,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CancelMine(c *gin.Context) {
	barberID := middleware.BarberID(c)
	h.doCancel(c, &barberID)
}

func (h *AppointmentHandler) UpdateMine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		AppointmentID: id,
		ServiceIDs:    req.ServiceIDs,
	}
	if req.StartTime != nil {
		start, ok := parseDateTime(c, *req.StartTime, h.loc)
		if !ok {
			return
		}
		in.StartTime = &start
	}

	barberID := middleware.BarberID(c)
	in.BarberID = &barberID

	ap, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) doCancel(c *gin.Context, barberID *uint) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// body is optional
	var req CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		AppointmentID: id,
		Reason:        req.Reason,
		BarberID:      barberID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}
