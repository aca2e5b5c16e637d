package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Filter narrows a page of audit logs. BarberID is mandatory: a barber only
// sees their own trail.
type Filter struct {
	BarberID uint
	Action   string
	Entity   string
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to sane values.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Reader interface {
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}
