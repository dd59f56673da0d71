package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// MeanRadiatingTemperature returns the effective atmospheric radiating
// temperature in K for surface temperature ts (K): Tmr = 37.34 + 0.81·Ts.
func MeanRadiatingTemperature(ts float64) (float64, error) {
	if err := domain.CheckFinite("tmr", "surface_temp", ts); err != nil {
		return 0, err
	}
	return 37.34 + 0.81*ts, nil
}

// TotalAttenuation combines the attenuation terms in dB. Gas adds linearly;
// rain and cloud are summed and combined in quadrature with scintillation.
func TotalAttenuation(gas, rain, cloud, scint float64) float64 {
	rc := rain + cloud
	return gas + math.Sqrt(rc*rc+scint*scint)
}

// NoiseTemperature returns the sky noise temperature in K produced by an
// absorbing atmosphere of attenuation a (dB) and mean radiating temperature
// tmr (K). Callers pass the linear sum of exceeded gas, rain and cloud
// attenuation, not the TotalAttenuation combination.
func NoiseTemperature(a, tmr float64) (float64, error) {
	const op = "noise_temperature"
	if err := domain.CheckNonNegative(op, "atten", a); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "tmr", tmr); err != nil {
		return 0, err
	}
	return tmr * (1 - math.Pow(10, -a/10)), nil
}
