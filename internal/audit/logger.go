package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Writer interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
}

type Logger struct {
	store Writer
}

func New(store Writer) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		BarberID: ev.BarberID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.CreateAuditLog(ctx, &entry)
}
