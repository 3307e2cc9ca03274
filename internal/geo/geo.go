// Package geo contains pure great-circle computation helpers used by
// dispatch to score couriers and place relay handover points.
package geo

import (
	"cmp"
	"math"
	"slices"

	"service-dispatch/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance in kilometres
// between two points. Symmetric and non-negative; zero for identical points.
func DistanceKm(a, b domain.Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	rLat1 := radians(a.Lat)
	rLat2 := radians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Midpoint returns the point halfway between a and b along the connecting arc.
func Midpoint(a, b domain.Point) domain.Point {
	rLat1 := radians(a.Lat)
	rLat2 := radians(b.Lat)
	rLng1 := radians(a.Lng)
	dLng := radians(b.Lng - a.Lng)

	bx := math.Cos(rLat2) * math.Cos(dLng)
	by := math.Cos(rLat2) * math.Sin(dLng)

	lat := math.Atan2(
		math.Sin(rLat1)+math.Sin(rLat2),
		math.Sqrt((math.Cos(rLat1)+bx)*(math.Cos(rLat1)+bx)+by*by),
	)
	lng := rLng1 + math.Atan2(by, math.Cos(rLat1)+bx)

	return domain.Point{Lat: degrees(lat), Lng: normalizeLng(degrees(lng))}
}

// SortByDistance orders items by ascending distance as reported by the
// accessor. Stable, so equidistant couriers keep their directory order.
func SortByDistance[T any](items []T, dist func(T) float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(dist(a), dist(b))
	})
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func normalizeLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}
