package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const dateTimeLayout = "02/01/2006 15:04"

// Compose renders the message body for an appointment event. The appointment
// must carry its client and services.
func Compose(kind message.Kind, ap *models.Appointment, loc *time.Location) string {
	when := ap.StartTime.In(loc).Format(dateTimeLayout)

	switch kind {
	case message.KindAppointmentCreated:
		return fmt.Sprintf(
			"Novo agendamento criado!\nCliente: %s\nData/Hora: %s\nServiços: %s\nValor: R$ %s",
			ap.Client.FullName,
			when,
			serviceNames(ap.Services),
			ap.TotalPrice.StringFixed(2),
		)
	case message.KindAppointmentCancelled:
		return fmt.Sprintf("Agendamento cancelado!\nCliente: %s\nData/Hora: %s", ap.Client.FullName, when)
	case message.KindAppointmentConfirmed:
		return fmt.Sprintf("Agendamento confirmado!\nCliente: %s\nData/Hora: %s", ap.Client.FullName, when)
	case message.KindAppointmentRefused:
		return fmt.Sprintf("Agendamento recusado.\nCliente: %s\nData/Hora: %s", ap.Client.FullName, when)
	case message.KindAppointmentReminder:
		return fmt.Sprintf("Lembrete: você tem um agendamento em 1 hora!\nCliente: %s\nData/Hora: %s", ap.Client.FullName, when)
	default:
		return "Nova notificação do sistema"
	}
}

func serviceNames(services []models.Service) string {
	if len(services) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
