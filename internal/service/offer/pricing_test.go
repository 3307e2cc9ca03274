package offer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatSchedule(t *testing.T) {
	tests := []struct {
		name       string
		base       int64
		perKm      int64
		distanceKm float64
		want       int64
	}{
		{name: "zero distance", base: 500, perKm: 120, distanceKm: 0, want: 500},
		{name: "whole kilometers", base: 500, perKm: 120, distanceKm: 10, want: 1700},
		{name: "fractional rounds", base: 500, perKm: 120, distanceKm: 2.5, want: 800},
		{name: "rounds half up", base: 0, perKm: 100, distanceKm: 0.005, want: 1},
		{name: "negative clamped", base: 500, perKm: 120, distanceKm: -3, want: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewFlatSchedule(tc.base, tc.perKm)
			require.Equal(t, tc.want, s.OfferPrice(tc.distanceKm))
		})
	}
}
