package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// --------------------------------------------------
// Params
// --------------------------------------------------

// pathID parses a positive numeric path parameter. On failure the 400 is
// already written.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

// --------------------------------------------------
// Time in the shop timezone
// --------------------------------------------------

func parseDateTime(c *gin.Context, raw string, loc *time.Location) (time.Time, bool) {
	t, err := timezone.ParseDateTime(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return time.Time{}, false
	}
	return t, true
}

func parseDate(c *gin.Context, raw string, loc *time.Location) (time.Time, bool) {
	t, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return time.Time{}, false
	}
	return t, true
}
