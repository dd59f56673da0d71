package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

const (
	// xpdMaxElevation is the validity limit of the elevation term.
	xpdMaxElevation = 60.0

	// minXPDAttenuation floors the co-polar attenuation so a dry path
	// yields a finite discrimination.
	minXPDAttenuation = 0.001
)

// XPD returns the cross-polarization discrimination in dB not exceeded for p
// percent of the time given the co-polar rain attenuation ap (dB) exceeded
// for the same percentage (P.618 §4.1). tau and elDeg are in degrees. f and p
// outside XPDValidity are evaluated at the nearest edge.
func XPD(ap, tau, f, elDeg, p float64) (float64, error) {
	const op = "xpd"
	if err := domain.CheckNonNegative(op, "rain_atten", ap); err != nil {
		return 0, err
	}
	if err := domain.CheckFinite(op, "pol", tau); err != nil {
		return 0, err
	}
	if err := checkFrequency(op, f); err != nil {
		return 0, err
	}
	if err := domain.CheckRange(op, "elevation", elDeg, 0, 90); err != nil {
		return 0, err
	}
	if err := checkUnavailability(op, p); err != nil {
		return 0, err
	}
	f = XPDValidity.freq(f)
	p = XPDValidity.percentage(p)

	ca := xpdV(f) * math.Log10(math.Max(ap, minXPDAttenuation))
	ctau := -10 * math.Log10(1-0.484*(1+math.Cos(4*deg2rad(tau))))
	ctheta := -40 * math.Log10(math.Cos(deg2rad(math.Min(elDeg, xpdMaxElevation))))

	// Canting angle standard deviation: 0, 5, 10, 15 degrees at 1, 0.1,
	// 0.01 and 0.001 %.
	sigma := math.Min(math.Max(-5*math.Log10(p), 0), 15)
	csigma := 0.0053 * sigma * sigma

	xpdRain := xpdCf(f) - ca + ctau + ctheta + csigma
	cice := xpdRain * (0.3 + 0.1*math.Log10(p)) / 2

	return xpdRain - cice, nil
}

// xpdCf is the frequency-dependent term of step 1.
func xpdCf(f float64) float64 {
	logF := math.Log10(f)
	switch {
	case f < 9:
		return 60*logF - 28.3
	case f < 36:
		return 26*logF + 4.1
	default:
		return 35.9*logF - 11.3
	}
}

// xpdV is the rain attenuation coefficient of step 2. Its bands do not
// line up with those of xpdCf.
func xpdV(f float64) float64 {
	switch {
	case f < 9:
		return 30.8 * math.Pow(f, -0.21)
	case f < 20:
		return 12.8 * math.Pow(f, 0.19)
	case f < 40:
		return 22.6
	default:
		return 13.0 * math.Pow(f, 0.15)
	}
}
