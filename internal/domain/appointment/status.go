package appointment

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRefused   Status = "refused"
	StatusCompleted Status = "completed"
)

var statusDescriptions = map[Status]string{
	StatusPending:   "Pendente",
	StatusConfirmed: "Confirmado",
	StatusCancelled: "Cancelado",
	StatusRefused:   "Recusado",
	StatusCompleted: "Concluído",
}

// Description returns the display text of the status.
func Description(s Status) string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return string(s)
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := statusDescriptions[st]
	return st, ok
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanRespond: só agendamentos pendentes recebem resposta do barbeiro
func CanRespond(current Status) error {
	if current != StatusPending {
		return httperr.ErrConflict("appointment_not_pending", "Agendamento não está pendente.")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrConflict("appointment_already_cancelled", "Agendamento já está cancelado.")
	case StatusCompleted:
		return httperr.ErrConflict("appointment_completed", "Não é possível cancelar agendamento concluído.")
	}
	return nil
}

func CanUpdate(current Status) error {
	if current != StatusPending {
		return httperr.ErrConflict("appointment_not_pending", "Só é possível alterar agendamentos pendentes.")
	}
	return nil
}
