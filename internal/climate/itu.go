package climate

import (
	"fmt"
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// GridSource answers lookups from the ITU-R digital maps.
type GridSource struct {
	ds *Dataset
}

// NewGridSource returns a Source over a loaded dataset.
func NewGridSource(ds *Dataset) *GridSource {
	return &GridSource{ds: ds}
}

func (s *GridSource) Name() string { return "itu-grid" }

func (s *GridSource) at(op, name string, lat, lon float64) (float64, error) {
	g, ok := s.ds.Grid(name)
	if !ok {
		return 0, fmt.Errorf("%s: climate map %q not loaded", op, name)
	}
	return g.Interpolate(op, lat, lon)
}

// RainIntensity follows P.837-5 Annex 1: the rain rate is the root of a
// quadratic in ln(p/P0), where P0 is the probability of rain.
func (s *GridSource) RainIntensity(lat, lon, p float64) (float64, error) {
	const op = "rain_intensity"
	if err := checkPointP(op, lat, lon, p); err != nil {
		return 0, err
	}

	pr6, err := s.at(op, MapPr6, lat, lon)
	if err != nil {
		return 0, err
	}
	mt, err := s.at(op, MapMt, lat, lon)
	if err != nil {
		return 0, err
	}
	beta, err := s.at(op, MapBeta, lat, lon)
	if err != nil {
		return 0, err
	}

	return rainRateP837(pr6, mt, beta, p), nil
}

func rainRateP837(pr6, mt, beta, p float64) float64 {
	if pr6 <= 0 || mt <= 0 {
		return 0
	}
	mc := beta * mt
	ms := (1 - beta) * mt

	p0 := pr6 * (1 - math.Exp(-0.0079*ms/pr6))
	if p0 <= 0 || p > p0 {
		return 0
	}

	const a = 1.09
	b := (mc + ms) / (21797 * p0)
	c := 26.02 * b

	qa := a * b
	qb := a + c*math.Log(p/p0)
	qc := math.Log(p / p0)

	r := (-qb + math.Sqrt(qb*qb-4*qa*qc)) / (2 * qa)
	return math.Max(r, 0)
}

func (s *GridSource) Nwet(lat, lon float64) (float64, error) {
	const op = "nwet"
	if err := checkPoint(op, lat, lon); err != nil {
		return 0, err
	}
	v, err := s.at(op, MapNwet, lat, lon)
	return math.Max(v, 0), err
}

// RainHeight is the 0 °C isotherm height plus 0.36 km (P.839).
func (s *GridSource) RainHeight(lat, lon float64) (float64, error) {
	const op = "rain_height"
	if err := checkPoint(op, lat, lon); err != nil {
		return 0, err
	}
	h0, err := s.at(op, MapH0, lat, lon)
	if err != nil {
		return 0, err
	}
	return math.Max(h0+rainHeightOffset, 0), nil
}

// LWCC evaluates the P.840 Annex 2 lognormal: L(p) = exp(m + σ·Q⁻¹(p/Pclw))
// for p below the probability of liquid water Pclw, and zero above it.
func (s *GridSource) LWCC(lat, lon, p float64) (float64, error) {
	const op = "lwcc"
	if err := checkPointP(op, lat, lon, p); err != nil {
		return 0, err
	}
	p = vapourP(p)

	m, err := s.at(op, MapLMean, lat, lon)
	if err != nil {
		return 0, err
	}
	sigma, err := s.at(op, MapLSigma, lat, lon)
	if err != nil {
		return 0, err
	}
	pclw, err := s.at(op, MapLProb, lat, lon)
	if err != nil {
		return 0, err
	}

	return lognormalExceeded(p, m, sigma, pclw), nil
}

// lognormalExceeded returns the value exceeded p % of the time for a
// lognormal component present pclw % of the time.
func lognormalExceeded(p, m, sigma, pclw float64) float64 {
	if pclw <= 0 || p >= pclw {
		return 0
	}
	// Q⁻¹(x) is the standard normal quantile at 1 - x.
	q := distuv.UnitNormal.Quantile(1 - p/pclw)
	return math.Exp(m + sigma*q)
}

func (s *GridSource) SWVD(lat, lon float64) (float64, error) {
	const op = "swvd"
	if err := checkPoint(op, lat, lon); err != nil {
		return 0, err
	}
	v, err := s.at(op, MapRho, lat, lon)
	return math.Max(v, 0), err
}

// IWVC evaluates the P.836 Weibull fit V(p) = λ(-ln(p/100))^(1/k).
func (s *GridSource) IWVC(lat, lon, p float64) (float64, error) {
	const op = "iwvc"
	if err := checkPointP(op, lat, lon, p); err != nil {
		return 0, err
	}
	p = vapourP(p)

	k, err := s.at(op, MapVShape, lat, lon)
	if err != nil {
		return 0, err
	}
	lambda, err := s.at(op, MapVScale, lat, lon)
	if err != nil {
		return 0, err
	}
	return weibullQuantile(p, k, lambda)
}

func (s *GridSource) Temperature(lat, lon float64) (float64, error) {
	const op = "temperature"
	if err := checkPoint(op, lat, lon); err != nil {
		return 0, err
	}
	t, err := s.at(op, MapTemp, lat, lon)
	if err != nil {
		return 0, err
	}
	if t <= 0 {
		return 0, domain.NewDomainError(op, "temp", t, "climate map holds a non-physical temperature")
	}
	return t, nil
}
