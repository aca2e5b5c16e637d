package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Respond(ap *models.Appointment, accept bool, reason string, now time.Time) error {
	if err := CanRespond(Status(ap.Status)); err != nil {
		return err
	}

	if accept {
		ap.Status = string(StatusConfirmed)
	} else {
		ap.Status = string(StatusRefused)
		ap.Notes = appendNote(ap.Notes, "Recusado", reason)
	}
	ap.RespondedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.RespondedAt = &now
	ap.Notes = appendNote(ap.Notes, "Cancelado", reason)
	return nil
}

// Reschedule swaps services and/or start time of a pending appointment,
// recomputing cached price and duration from the new services.
func Reschedule(ap *models.Appointment, start *time.Time, services []models.Service) error {
	if err := CanUpdate(Status(ap.Status)); err != nil {
		return err
	}

	if start != nil {
		ap.StartTime = *start
	}
	if len(services) > 0 {
		ap.Services = services
		ap.DurationMin = TotalDuration(services)
		ap.TotalPrice = TotalPrice(services)
	}
	return nil
}

func appendNote(notes, label, reason string) string {
	if reason == "" {
		return notes
	}
	entry := label + ": " + reason
	if notes == "" {
		return entry
	}
	return notes + " | " + entry
}
