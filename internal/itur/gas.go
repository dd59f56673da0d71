package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// Reference conditions of the P.676 Annex 2 §2.3 water vapour scaling.
const (
	vapourRefFreq     = 20.6  // GHz
	vapourRefPressure = 780.0 // hPa
)

// GaseousAttenuation returns the slant-path attenuation in dB due to oxygen
// and water vapour for a station at sea-level pressure with surface
// temperature temp (K) and surface water vapour density rho (g/m³).
// Frequencies outside GasValidity are evaluated at the nearest edge.
func GaseousAttenuation(f, el, temp, rho float64) (float64, error) {
	const op = "gaseous_attenuation"
	if err := checkGasInputs(op, f, el, temp); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "rho", rho); err != nil {
		return 0, err
	}
	f = GasValidity.freq(f)

	t := temp - zeroCelsius
	ho, hw := equivalentHeights(f, standardPressure)
	gammaO := oxygenSpecific(f, standardPressure, t)
	gammaW := vapourSpecific(f, standardPressure, rho, t)

	return gammaO*ho*slantFactor(el, ho) + gammaW*hw*slantFactor(el, hw), nil
}

// GaseousAttenuationExc returns the slant-path gaseous attenuation in dB using
// the integrated water vapour content wvc (kg/m²) exceeded for the required
// percentage of time in place of the surface density. The oxygen term is the
// same as in GaseousAttenuation.
func GaseousAttenuationExc(f, el, temp, wvc float64) (float64, error) {
	const op = "gaseous_attenuation_exc"
	if err := checkGasInputs(op, f, el, temp); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "wvc", wvc); err != nil {
		return 0, err
	}
	f = GasValidity.freq(f)

	t := temp - zeroCelsius
	ho, hw := equivalentHeights(f, standardPressure)
	ao := oxygenSpecific(f, standardPressure, t) * ho * slantFactor(el, ho)

	if wvc == 0 {
		return ao, nil
	}
	// Reference conditions are held at 0.1 kg/m² for very dry columns so
	// the reference temperature stays physical.
	refV := math.Max(wvc, 0.1)
	rhoRef := refV / 4
	tRef := 14*math.Log(0.22*refV/4) + 3
	ratio := vapourSpecific(f, vapourRefPressure, rhoRef, tRef) /
		vapourSpecific(vapourRefFreq, vapourRefPressure, rhoRef, tRef)
	aw := 0.0173 * wvc * ratio * slantFactor(el, hw)

	return ao + aw, nil
}

func checkGasInputs(op string, f, el, temp float64) error {
	if err := checkFrequency(op, f); err != nil {
		return err
	}
	if err := checkElevation(op, el); err != nil {
		return err
	}
	return domain.CheckPositive(op, "temp", temp)
}

// slantFactor maps a zenith attenuation with equivalent height h (km) onto
// elevation el. Above 5° the flat-Earth cosecant law applies; below it the
// curved-Earth form of P.676 keeps the path finite down to the horizon.
func slantFactor(el, h float64) float64 {
	if el >= minSlantElevation {
		return 1 / math.Sin(el)
	}
	x := math.Tan(el) * math.Sqrt(effectiveEarthRadius/h)
	f := 1 / (0.661*x + 0.339*math.Sqrt(x*x+5.51))
	return math.Sqrt(effectiveEarthRadius*h) * f / (math.Cos(el) * h)
}

func phi(rp, rt, a, b, c, d float64) float64 {
	return math.Pow(rp, a) * math.Pow(rt, b) * math.Exp(c*(1-rp)+d*(1-rt))
}

// oxygenSpecific returns the dry-air specific attenuation in dB/km at
// pressure p (hPa) and temperature t (°C).
func oxygenSpecific(f, p, t float64) float64 {
	rp := p / 1013
	rt := 288 / (273 + t)
	scale := f * f * rp * rp * 1e-3

	switch {
	case f <= 54:
		xi1 := phi(rp, rt, 0.0717, -1.8132, 0.0156, -1.6515)
		xi2 := phi(rp, rt, 0.5146, -4.6368, -0.1921, -5.7416)
		xi3 := phi(rp, rt, 0.3414, -6.5851, 0.2130, -8.5854)
		return (7.2*math.Pow(rt, 2.8)/(f*f+0.34*rp*rp*math.Pow(rt, 1.6)) +
			0.62*xi3/(math.Pow(54-f, 1.16*xi1)+0.83*xi2)) * scale

	case f <= 60:
		g54 := math.Log(2.192 * phi(rp, rt, 1.8286, -1.9487, 0.4051, -2.8509))
		g58 := math.Log(12.59 * phi(rp, rt, 1.0045, 3.5610, 0.1588, 1.2834))
		g60 := math.Log(15.0 * phi(rp, rt, 0.9003, 4.1335, 0.0427, 1.6088))
		return math.Exp(g54/24*(f-58)*(f-60) - g58/8*(f-54)*(f-60) + g60/12*(f-54)*(f-58))

	case f <= 62:
		g60 := 15.0 * phi(rp, rt, 0.9003, 4.1335, 0.0427, 1.6088)
		g62 := 14.28 * phi(rp, rt, 0.9886, 3.4176, 0.1827, 1.3429)
		return g60 + (g62-g60)*(f-60)/2

	case f <= 66:
		g62 := math.Log(14.28 * phi(rp, rt, 0.9886, 3.4176, 0.1827, 1.3429))
		g64 := math.Log(6.819 * phi(rp, rt, 1.4320, 0.6258, 0.3177, -0.5914))
		g66 := math.Log(1.908 * phi(rp, rt, 2.0717, -4.1404, 0.4910, -4.8718))
		return math.Exp(g62/8*(f-64)*(f-66) - g64/4*(f-62)*(f-66) + g66/8*(f-62)*(f-64))

	case f <= 120:
		xi4 := phi(rp, rt, -0.0112, 0.0092, -0.1033, -0.0009)
		xi5 := phi(rp, rt, 0.2705, -2.7192, -0.3016, -4.1033)
		xi6 := phi(rp, rt, 0.2445, -5.9191, 0.0422, -8.0719)
		xi7 := phi(rp, rt, -0.1833, 6.5589, -0.2402, 6.131)
		return (3.02e-4*math.Pow(rt, 3.5) +
			0.283*math.Pow(rt, 3.8)/((f-118.75)*(f-118.75)+2.91*rp*rp*math.Pow(rt, 1.6)) +
			0.502*xi6*(1-0.0163*xi7*(f-66))/(math.Pow(f-66, 1.4346*xi4)+1.15*xi5)) * scale

	default:
		delta := -0.00306 * phi(rp, rt, 3.211, -14.94, 1.583, -16.37)
		return (3.02e-4/(1+1.9e-5*math.Pow(f, 1.5))+
			0.283*math.Pow(rt, 0.3)/((f-118.75)*(f-118.75)+2.91*rp*rp*math.Pow(rt, 1.6)))*
			scale*math.Pow(rt, 3.5) + delta
	}
}

// vapourSpecific returns the water vapour specific attenuation in dB/km at
// pressure p (hPa), density rho (g/m³) and temperature t (°C).
func vapourSpecific(f, p, rho, t float64) float64 {
	rp := p / 1013
	rt := 288 / (273 + t)
	eta1 := 0.955*rp*math.Pow(rt, 0.68) + 0.006*rho
	eta2 := 0.735*rp*math.Pow(rt, 0.5) + 0.0353*math.Pow(rt, 4)*rho

	g := func(fi float64) float64 {
		r := (f - fi) / (f + fi)
		return 1 + r*r
	}
	sq := func(x float64) float64 { return x * x }

	sum := 3.98*eta1*math.Exp(2.23*(1-rt))/(sq(f-22.235)+9.42*eta1*eta1)*g(22) +
		11.96*eta1*math.Exp(0.7*(1-rt))/(sq(f-183.31)+11.14*eta1*eta1) +
		0.081*eta1*math.Exp(6.44*(1-rt))/(sq(f-321.226)+6.29*eta1*eta1) +
		3.66*eta1*math.Exp(1.6*(1-rt))/(sq(f-325.153)+9.22*eta1*eta1) +
		25.37*eta1*math.Exp(1.09*(1-rt))/sq(f-380) +
		17.4*eta1*math.Exp(1.46*(1-rt))/sq(f-448) +
		844.6*eta1*math.Exp(0.17*(1-rt))/sq(f-557)*g(557) +
		290*eta1*math.Exp(0.41*(1-rt))/sq(f-752)*g(752) +
		8.3328e4*eta2*math.Exp(0.99*(1-rt))/sq(f-1780)*g(1780)

	return sum * f * f * math.Pow(rt, 2.5) * rho * 1e-4
}

// equivalentHeights returns the oxygen and water vapour equivalent heights
// in km for pressure p (hPa).
func equivalentHeights(f, p float64) (ho, hw float64) {
	rp := p / 1013.25

	t1 := 4.64 / (1 + 0.066*math.Pow(rp, -2.3)) *
		math.Exp(-math.Pow((f-59.7)/(2.87+12.4*math.Exp(-7.9*rp)), 2))
	t2 := 0.14 * math.Exp(2.12*rp) / ((f-118.75)*(f-118.75) + 0.031*math.Exp(2.2*rp))
	t3 := 0.0114 / (1 + 0.14*math.Pow(rp, -2.6)) * f *
		(-0.0247 + 0.0001*f + 1.61e-6*f*f) /
		(1 - 0.0169*f + 4.1e-5*f*f + 3.2e-7*f*f*f)

	ho = 6.1 / (1 + 0.17*math.Pow(rp, -1.1)) * (1 + t1 + t2 + t3)
	if f < 70 {
		ho = math.Min(ho, 10.7*math.Pow(rp, 0.3))
	}

	sigmaW := 1.013 / (1 + math.Exp(-8.6*(rp-0.57)))
	hw = 1.66 * (1 +
		1.39*sigmaW/((f-22.235)*(f-22.235)+2.56*sigmaW) +
		3.37*sigmaW/((f-183.31)*(f-183.31)+4.69*sigmaW) +
		1.58*sigmaW/((f-325.1)*(f-325.1)+2.89*sigmaW))

	return ho, hw
}
