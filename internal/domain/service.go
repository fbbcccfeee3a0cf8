package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service represents a bookable service
type Service struct {
	ID         int64
	Name       string
	Worktime   types.Worktime
	Price      decimal.Decimal
	Info       *string
	CategoryID *int64
}

// Category groups services for browsing
type Category struct {
	ID   int64
	Name string
}

// TotalPrice sums prices of the services
func TotalPrice(services []Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}
