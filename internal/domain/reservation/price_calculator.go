package reservation

import (
	"space-booking/internal/domain/space"
)

type PriceCalculator interface {
	CalculatePrice(sp *space.Space, slot TimeSlot) float64
}

// HourlyPriceCalculator charges the space's hourly rate for the exact fractional
// number of hours in the slot, without rounding.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (pc *HourlyPriceCalculator) CalculatePrice(sp *space.Space, slot TimeSlot) float64 {
	return sp.HourlyRate() * slot.Duration().Hours()
}
