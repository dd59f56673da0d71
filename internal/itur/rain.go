package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// gaussTerm is one a·exp(-((log f - b)/c)²) term of the P.838-3 fits.
type gaussTerm struct{ a, b, c float64 }

// rainFit is a P.838-3 regression for log10 k or α.
type rainFit struct {
	terms []gaussTerm
	m, c  float64
}

func (r rainFit) eval(logF float64) float64 {
	sum := r.m*logF + r.c
	for _, t := range r.terms {
		x := (logF - t.b) / t.c
		sum += t.a * math.Exp(-x*x)
	}
	return sum
}

var (
	fitKH = rainFit{
		terms: []gaussTerm{
			{-5.33980, -0.10008, 1.13098},
			{-0.35351, 1.26970, 0.45400},
			{-0.23789, 0.86036, 0.15354},
			{-0.94158, 0.64552, 0.16817},
		},
		m: -0.18961, c: 0.71147,
	}
	fitKV = rainFit{
		terms: []gaussTerm{
			{-3.80595, 0.56934, 0.81061},
			{-3.44965, -0.22911, 0.51059},
			{-0.39902, 0.73042, 0.11899},
			{0.50167, 1.07319, 0.27195},
		},
		m: -0.16398, c: 0.63297,
	}
	fitAlphaH = rainFit{
		terms: []gaussTerm{
			{-0.14318, 1.82442, -0.55187},
			{0.29591, 0.77564, 0.19822},
			{0.32177, 0.63773, 0.13164},
			{-5.37610, -0.96230, 1.47828},
			{16.1721, -3.29980, 3.43990},
		},
		m: 0.67849, c: -1.95537,
	}
	fitAlphaV = rainFit{
		terms: []gaussTerm{
			{-0.07771, 2.33840, -0.76284},
			{0.56727, 0.95545, 0.54039},
			{-0.20238, 1.14520, 0.26809},
			{-48.2991, 0.791669, 0.116226},
			{48.5833, 0.791459, 0.116479},
		},
		m: -0.053739, c: 0.83433,
	}
)

// RainCoefficients returns the P.838-3 coefficients k and α for frequency f
// (GHz), path elevation el (rad) and polarization tilt tau (degrees).
func RainCoefficients(f, el, tau float64) (k, alpha float64) {
	logF := math.Log10(f)
	kH := math.Pow(10, fitKH.eval(logF))
	kV := math.Pow(10, fitKV.eval(logF))
	aH := fitAlphaH.eval(logF)
	aV := fitAlphaV.eval(logF)

	cosEl := math.Cos(el)
	mix := cosEl * cosEl * math.Cos(2*deg2rad(tau))

	k = (kH + kV + (kH-kV)*mix) / 2
	alpha = (kH*aH + kV*aV + (kH*aH-kV*aV)*mix) / (2 * k)
	return k, alpha
}

// RainAttenuation returns the slant-path rain attenuation in dB exceeded for
// p percent of an average year (P.618 §2.2.1.1).
//
// lat is the station latitude in degrees, el the elevation in radians,
// altM the station altitude in metres, hR the rain height in km, r001 the
// rain rate exceeded 0.01 % of the time in mm/h and tau the polarization
// tilt in degrees. f and p outside RainValidity are evaluated at the nearest
// edge.
func RainAttenuation(lat, f, el, p, altM, hR, r001, tau float64) (float64, error) {
	const op = "rain_attenuation"
	if err := domain.CheckRange(op, "lat", lat, -90, 90); err != nil {
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
	if err := domain.CheckNonNegative(op, "rain_height", hR); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "rain_intensity", r001); err != nil {
		return 0, err
	}
	if err := domain.CheckFinite(op, "pol", tau); err != nil {
		return 0, err
	}
	f = RainValidity.freq(f)
	p = RainValidity.percentage(p)

	hs := altM / 1000
	dh := hR - hs
	if dh <= 0 || r001 == 0 {
		return 0, nil
	}

	sinEl, cosEl := math.Sincos(el)

	// Slant path below the rain height and its horizontal projection.
	var ls float64
	if el >= minSlantElevation {
		ls = dh / sinEl
	} else {
		ls = 2 * dh / (math.Sqrt(sinEl*sinEl+2*dh/effectiveEarthRadius) + sinEl)
	}
	lg := ls * cosEl

	k, alpha := RainCoefficients(f, el, tau)
	gammaR := k * math.Pow(r001, alpha)

	r := 1 / (1 + 0.78*math.Sqrt(lg*gammaR/f) - 0.38*(1-math.Exp(-2*lg)))

	var lr float64
	if zeta := math.Atan2(dh, lg*r); zeta > el {
		lr = lg * r / cosEl
	} else {
		lr = dh / sinEl
	}

	chi := 0.0
	if absLat := math.Abs(lat); absLat < 36 {
		chi = 36 - absLat
	}
	v := 1 / (1 + math.Sqrt(sinEl)*
		(31*(1-math.Exp(-rad2deg(el)/(1+chi)))*math.Sqrt(lr*gammaR)/(f*f)-0.45))

	a001 := gammaR * lr * v
	if a001 <= 0 {
		return 0, nil
	}

	return a001 * math.Pow(p/0.01, -rainExponent(lat, el, p, a001)), nil
}

// rainExponent is the exponent of the P.618 step 10 scaling from 0.01 % to p.
func rainExponent(lat, el, p, a001 float64) float64 {
	absLat := math.Abs(lat)
	sinEl := math.Sin(el)

	var beta float64
	switch {
	case p >= 1 || absLat >= 36:
		beta = 0
	case el >= deg2rad(25):
		beta = -0.005 * (absLat - 36)
	default:
		beta = -0.005*(absLat-36) + 1.8 - 4.25*sinEl
	}

	return 0.655 + 0.033*math.Log(p) - 0.045*math.Log(a001) - beta*(1-p)*sinEl
}
