package appointment

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// DefaultServiceDurationMin is used for services without a duration.
const DefaultServiceDurationMin = 30

func ServiceDuration(s models.Service) int {
	if s.DurationMin <= 0 {
		return DefaultServiceDurationMin
	}
	return s.DurationMin
}

func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += ServiceDuration(s)
	}
	return total
}

func TotalPrice(services []models.Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}
