package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMin int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}
}

func IntervalOf(ap models.Appointment) Interval {
	return NewInterval(ap.StartTime, ap.DurationMin)
}

// Overlaps reports whether the two intervals share any instant. Touching
// intervals (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// IsAvailable scans the barber's appointments and reports whether the window
// starting at start is free. Only confirmed appointments block a slot.
func IsAvailable(existing []models.Appointment, start time.Time, durationMin int) bool {
	candidate := NewInterval(start, durationMin)

	for _, ap := range existing {
		if Status(ap.Status) != StatusConfirmed {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			return false
		}
	}
	return true
}
