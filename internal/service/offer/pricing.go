package offer

import "math"

// PriceSchedule computes the price offered to a courier for a leg.
type PriceSchedule interface {
	OfferPrice(distanceKm float64) int64
}

type flatSchedule struct {
	base  int64
	perKm int64
}

// NewFlatSchedule - a flat schedule: base price plus a per-kilometre
// component, in cents.
func NewFlatSchedule(base, perKm int64) PriceSchedule {
	return flatSchedule{base: base, perKm: perKm}
}

// OfferPrice returns the offered price for the given distance.
func (s flatSchedule) OfferPrice(distanceKm float64) int64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	return s.base + int64(math.Round(distanceKm*float64(s.perKm)))
}
