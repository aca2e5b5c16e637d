package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
	loc  *time.Location
}

func NewAuditLogsHandler(logs audit.Reader, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	f := audit.Filter{
		BarberID: middleware.BarberID(c),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		Page:     page,
		Limit:    limit,
	}
	f.Normalize()

	// --------------------------------------------------
	// Filtros de data (dias inteiros no fuso da barbearia)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, ok := parseDate(c, raw, h.loc)
		if !ok {
			return
		}
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, ok := parseDate(c, raw, h.loc)
		if !ok {
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.logs.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
