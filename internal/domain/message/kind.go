package message

type Kind string

const (
	KindAppointmentCreated   Kind = "appointment_created"
	KindAppointmentConfirmed Kind = "appointment_confirmed"
	KindAppointmentCancelled Kind = "appointment_cancelled"
	KindAppointmentRefused   Kind = "appointment_refused"
	KindAppointmentReminder  Kind = "appointment_reminder"
	KindGeneral              Kind = "general"
)

var kindDescriptions = map[Kind]string{
	KindAppointmentCreated:   "Agendamento Criado",
	KindAppointmentConfirmed: "Agendamento Confirmado",
	KindAppointmentCancelled: "Agendamento Cancelado",
	KindAppointmentRefused:   "Agendamento Recusado",
	KindAppointmentReminder:  "Lembrete de Agendamento",
	KindGeneral:              "Notificação Geral",
}

func Description(k Kind) string {
	if d, ok := kindDescriptions[k]; ok {
		return d
	}
	return string(k)
}
