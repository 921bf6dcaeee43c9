package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	p := Point{Lat: 24.8607, Lng: 67.0011}
	assert.Zero(t, DistanceKm(p, p))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []struct {
		name string
		a, b Point
	}{
		{"nearby", Point{24.90, 66.99}, Point{24.80, 67.02}},
		{"cross hemisphere", Point{51.5074, -0.1278}, Point{-33.8688, 151.2093}},
		{"across antimeridian", Point{35.0, 179.9}, Point{35.0, -179.9}},
	}

	for _, tt := range points {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DistanceKm(tt.a, tt.b), DistanceKm(tt.b, tt.a))
		})
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		wantKm float64
	}{
		// One degree of latitude along a meridian is ~111.19 km on a
		// 6371 km sphere.
		{"one degree latitude", Point{0, 0}, Point{1, 0}, 111.19},
		{"quarter circumference", Point{0, 0}, Point{0, 90}, 10007.54},
		{"karachi suburbs", Point{24.90, 66.99}, Point{24.80, 67.02}, 11.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			assert.InDelta(t, tt.wantKm, got, tt.wantKm*0.01)
		})
	}
}
