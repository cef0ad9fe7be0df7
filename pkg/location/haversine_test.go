package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMetersZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{23.0225, 72.5714},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, HaversineMeters(p[0], p[1], p[0], p[1]))
	}
}

func TestHaversineMetersSymmetry(t *testing.T) {
	d1 := HaversineMeters(23.0225, 72.5714, 19.0760, 72.8777)
	d2 := HaversineMeters(19.0760, 72.8777, 23.0225, 72.5714)
	assert.Equal(t, d1, d2)
}

func TestHaversineMetersKnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMeters             float64
		tolerance              float64
	}{
		{
			name: "adjacent clinic locations ~11m",
			lat1: 23.0225, lng1: 72.5714,
			lat2: 23.0226, lng2: 72.5714,
			wantMeters: 11.1, tolerance: 0.5,
		},
		{
			name: "one degree of latitude ~111km",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			wantMeters: 111195, tolerance: 100,
		},
		{
			name: "Ahmedabad to Mumbai ~441km",
			lat1: 23.0225, lng1: 72.5714,
			lat2: 19.0760, lng2: 72.8777,
			wantMeters: 441000, tolerance: 5000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantMeters, got, tt.tolerance)
		})
	}
}

func TestHaversineKm(t *testing.T) {
	m := HaversineMeters(23.0225, 72.5714, 19.0760, 72.8777)
	km := HaversineKm(23.0225, 72.5714, 19.0760, 72.8777)
	assert.InDelta(t, m/1000, km, 1e-9)
}

func TestMetersToDegrees(t *testing.T) {
	assert.InDelta(t, 0.001, MetersToDegrees(111), 1e-6)
	assert.Equal(t, 0.0, MetersToDegrees(0))
}
