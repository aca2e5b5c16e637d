package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
)

type Quote struct {
	Total       decimal.Decimal
	DurationMin int
}

type RecalculateTotal struct {
	repo domain.Repository
}

func NewRecalculateTotal(repo domain.Repository) *RecalculateTotal {
	return &RecalculateTotal{repo: repo}
}

// Execute sums the current prices of the services. It never persists.
func (uc *RecalculateTotal) Execute(ctx context.Context, serviceIDs []uint) (Quote, error) {
	services, err := resolveServices(ctx, uc.repo, serviceIDs)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Total:       domain.TotalPrice(services),
		DurationMin: domain.TotalDuration(services),
	}, nil
}
