package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"status_label"`
	ClientName   string    `json:"client_name"`
	ClientEmail  string    `json:"client_email"`
	ServiceNames []string  `json:"service_names"`
	TotalPrice   string    `json:"total_price"`
	Notes        string    `json:"notes,omitempty"`
}

func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, AppointmentListItem(&apps[i]))
	}
	return out
}

func AppointmentListItem(ap *models.Appointment) AppointmentListDTO {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}

	return AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime(),
		Status:       ap.Status,
		StatusLabel:  domain.Description(domain.Status(ap.Status)),
		ClientName:   ap.Client.FullName,
		ClientEmail:  ap.Client.Email,
		ServiceNames: names,
		TotalPrice:   ap.TotalPrice.StringFixed(2),
		Notes:        ap.Notes,
	}
}
