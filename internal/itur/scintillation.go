package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// turbulenceHeight is the height of the turbulent layer in metres.
const turbulenceHeight = 1000.0

// Scintillation returns the tropospheric scintillation fade depth in dB
// exceeded for p percent of the time (P.618 §2.4.1).
//
// eta is the antenna efficiency as a fraction and d the physical diameter in
// metres. altM is validated but the method has no altitude dependence.
// Elevations below 5° and f or p outside ScintillationValidity are
// evaluated at the nearest edge.
func Scintillation(nwet, f, el, p, altM, eta, d float64) (float64, error) {
	const op = "scintillation"
	if err := domain.CheckNonNegative(op, "nwet", nwet); err != nil {
		return 0, err
	}
	if err := checkFrequency(op, f); err != nil {
		return 0, err
	}
	if err := checkElevation(op, el); err != nil {
		return 0, err
	}
	if err := checkUnavailability(op, p); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "alt", altM); err != nil {
		return 0, err
	}
	if err := domain.CheckPositive(op, "eta", eta); err != nil {
		return 0, err
	}
	if err := domain.CheckRange(op, "eta", eta, 0, 1); err != nil {
		return 0, err
	}
	if err := domain.CheckPositive(op, "diameter", d); err != nil {
		return 0, err
	}
	f = ScintillationValidity.freq(f)
	el = ScintillationValidity.elevation(el)
	p = ScintillationValidity.percentage(p)

	sinEl := math.Sin(el)
	sigmaRef := 3.6e-3 + 1e-4*nwet
	pathLen := 2 * turbulenceHeight / (math.Sqrt(sinEl*sinEl+2.35e-4) + sinEl)

	deff := math.Sqrt(eta) * d
	x := 1.22 * deff * deff * f / pathLen
	arg := 3.86*math.Pow(x*x+1, 11.0/12)*math.Sin(11.0/6*math.Atan(1/x)) - 7.08*math.Pow(x, 5.0/6)
	if arg <= 0 {
		// Aperture averaging cancels the fluctuations entirely.
		return 0, nil
	}

	sigma := sigmaRef * math.Pow(f, 7.0/12) * math.Sqrt(arg) / math.Pow(sinEl, 1.2)

	lp := math.Log10(p)
	a := -0.061*lp*lp*lp + 0.072*lp*lp - 1.71*lp + 3.0
	return a * sigma, nil
}
