package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// CloudAttenuation returns the slant-path attenuation in dB due to a cloud
// liquid water column of lwc kg/m² (P.840), evaluated at 0 °C. The
// cosecant mapping holds down to 5°; lower elevations and frequencies
// outside CloudValidity are evaluated at the nearest edge.
func CloudAttenuation(f, el, lwc float64) (float64, error) {
	const op = "cloud_attenuation"
	if err := checkFrequency(op, f); err != nil {
		return 0, err
	}
	if err := checkElevation(op, el); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "lwc", lwc); err != nil {
		return 0, err
	}

	f = CloudValidity.freq(f)
	el = CloudValidity.elevation(el)

	return lwc * CloudSpecificCoefficient(f, zeroCelsius) / math.Sin(el), nil
}

// CloudSpecificCoefficient returns Kl in (dB/km)/(g/m³) for liquid water at
// temperature temp (K), from the double-Debye permittivity model.
func CloudSpecificCoefficient(f, temp float64) float64 {
	theta := 300 / temp

	e0 := 77.66 + 103.3*(theta-1)
	e1 := 0.0671 * e0
	const e2 = 3.52

	fp := 20.20 - 146*(theta-1) + 316*(theta-1)*(theta-1)
	fs := 39.8 * fp

	rp := f / fp
	rs := f / fs
	epsIm := f*(e0-e1)/(fp*(1+rp*rp)) + f*(e1-e2)/(fs*(1+rs*rs))
	epsRe := (e0-e1)/(1+rp*rp) + (e1-e2)/(1+rs*rs) + e2

	eta := (2 + epsRe) / epsIm
	return 0.819 * f / (epsIm * (1 + eta*eta))
}
