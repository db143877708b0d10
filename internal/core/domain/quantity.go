package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal places stored for each ledger quantity. A sale total has
// WeightPlaces+PricePlaces places, so it is stored without rounding.
const (
	WeightPlaces int32 = 3
	PricePlaces  int32 = 2
	TotalPlaces        = WeightPlaces + PricePlaces
	AmountPlaces int32 = 5
)

// CheckQuantity requires d to be positive and to need at most places
// decimal places.
func CheckQuantity(field string, d decimal.Decimal, places int32) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than 0", ErrValidation, field)
	}
	if !d.Equal(d.Truncate(places)) {
		return fmt.Errorf("%w: %s allows at most %d decimal places", ErrValidation, field, places)
	}
	return nil
}
