package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

const (
	// effectiveEarthRadius is the 4/3-Earth radius in km used for slant paths.
	effectiveEarthRadius = 8500.0

	standardPressure = 1013.25 // hPa
	zeroCelsius      = 273.15  // K

	minSlantElevation = 5 * math.Pi / 180
)

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func checkElevation(op string, el float64) error {
	return domain.CheckRange(op, "elevation", el, 0, math.Pi/2)
}

func checkFrequency(op string, f float64) error {
	return domain.CheckPositive(op, "freq", f)
}

func checkUnavailability(op string, p float64) error {
	return domain.CheckUnavailability(op, p)
}
