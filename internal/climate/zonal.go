package climate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultRainZone is used when no P.837-1 zone is configured.
const DefaultRainZone = "K"

// ZonalSource is an empirical climatology needing no data files. Temperature
// and water vapour come from the P.835 reference atmospheres of the station's
// latitude band, rain height from the P.839-2 latitude formula and rain
// intensity from a P.837-1 rain climatic zone.
//
// The reference atmospheres carry no distributions: IWVC is the annual mean
// column of the band for every p, and LWCC is unavailable.
type ZonalSource struct {
	zone  string
	rates [7]float64
}

// zoneP lists the time percentages of the P.837-1 table, most frequent first.
var zoneP = [7]float64{1, 0.3, 0.1, 0.03, 0.01, 0.003, 0.001}

// rainZones maps a P.837-1 zone to the rain rates in mm/h exceeded at zoneP.
var rainZones = map[string][7]float64{
	"A": {0.1, 0.8, 2, 5, 8, 14, 22},
	"B": {0.5, 2, 3, 6, 12, 21, 32},
	"C": {0.7, 2.8, 5, 9, 15, 26, 42},
	"D": {2.1, 4.5, 8, 13, 19, 29, 42},
	"E": {0.6, 2.4, 6, 12, 22, 41, 70},
	"F": {1.7, 4.5, 8, 15, 28, 54, 78},
	"G": {3, 7, 12, 20, 30, 45, 65},
	"H": {2, 4, 10, 18, 32, 55, 83},
	"J": {8, 13, 20, 28, 35, 45, 55},
	"K": {1.5, 4.2, 12, 23, 42, 70, 100},
	"L": {2, 7, 15, 33, 60, 105, 150},
	"M": {4, 11, 22, 40, 63, 95, 120},
	"N": {5, 15, 35, 65, 95, 140, 180},
	"P": {12, 34, 65, 105, 145, 200, 250},
	"Q": {24, 49, 72, 96, 115, 142, 170},
}

// RainZones returns the known P.837-1 zone letters in order.
func RainZones() []string {
	zones := make([]string, 0, len(rainZones))
	for z := range rainZones {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}

// vapourProfile is a P.835 water vapour density profile
// rho0·exp(c1·h + c2·h² + c3·h³ + c4·h⁴) in g/m³ for h in km, zero above top.
type vapourProfile struct {
	rho0 float64
	c    [4]float64
	top  float64
}

func (v vapourProfile) density(h float64) float64 {
	if h > v.top {
		return 0
	}
	return v.rho0 * math.Exp(h*(v.c[0]+h*(v.c[1]+h*(v.c[2]+h*v.c[3]))))
}

// column is the profile integrated from the surface to its top, in kg/m².
func (v vapourProfile) column() float64 {
	return quad.Fixed(v.density, 0, v.top, 32, quad.Legendre{}, 0)
}

// season is one P.835 reference atmosphere.
type season struct {
	temp   float64 // surface temperature, K
	vapour vapourProfile
}

// referenceAtmosphere holds the annual surface values of one latitude band.
// Seasonal profiles are averaged.
type referenceAtmosphere struct {
	temp float64 // K
	rho  float64 // g/m³
	iwvc float64 // kg/m²
}

func annual(seasons ...season) referenceAtmosphere {
	var a referenceAtmosphere
	for _, s := range seasons {
		a.temp += s.temp
		a.rho += s.vapour.rho0
		a.iwvc += s.vapour.column()
	}
	n := float64(len(seasons))
	return referenceAtmosphere{temp: a.temp / n, rho: a.rho / n, iwvc: a.iwvc / n}
}

var (
	lowLatitude = annual(
		season{300.4222, vapourProfile{19.6542, [4]float64{-0.2313, -0.1122, 0.01351, -0.0005923}, 15}},
	)
	midLatitude = annual(
		season{294.9838, vapourProfile{14.3542, [4]float64{-0.4174, -0.02290, 0.001007, 0}, 15}}, // summer
		season{272.7241, vapourProfile{3.4742, [4]float64{-0.2697, -0.03604, 0.0004489, 0}, 10}}, // winter
	)
	highLatitude = annual(
		season{286.8374, vapourProfile{8.988, [4]float64{-0.3614, -0.005402, -0.001955, 0}, 15}}, // summer
		season{257.4345, vapourProfile{1.2319, [4]float64{0.07481, -0.0981, 0.00281, 0}, 10}},    // winter
	)
)

func band(lat float64) referenceAtmosphere {
	switch a := math.Abs(lat); {
	case a < 22:
		return lowLatitude
	case a <= 45:
		return midLatitude
	default:
		return highLatitude
	}
}

// NewZonalSource returns a zonal climatology using the given P.837-1 rain
// zone. An empty zone selects DefaultRainZone.
func NewZonalSource(zone string) (*ZonalSource, error) {
	zone = strings.ToUpper(strings.TrimSpace(zone))
	if zone == "" {
		zone = DefaultRainZone
	}
	rates, ok := rainZones[zone]
	if !ok {
		return nil, fmt.Errorf("unknown rain zone %q (want one of %s)", zone, strings.Join(RainZones(), ""))
	}
	return &ZonalSource{zone: zone, rates: rates}, nil
}

func (s *ZonalSource) Name() string { return "zonal-" + s.zone }

// Zone returns the configured P.837-1 rain zone.
func (s *ZonalSource) Zone() string { return s.zone }

// RainIntensity interpolates the zone table log-linearly in both rate and
// percentage. Below 0.001 % the 0.001 % rate is returned; above 1 % the last
// segment is extrapolated.
func (s *ZonalSource) RainIntensity(lat, lon, p float64) (float64, error) {
	if err := checkPointP("rain_intensity", lat, lon, p); err != nil {
		return 0, err
	}
	last := len(zoneP) - 1
	if p <= zoneP[last] {
		return s.rates[last], nil
	}

	i := 1
	for i < last && p < zoneP[i] {
		i++
	}
	// Segment [i-1, i] brackets p, or is the extrapolated one above 1 %.
	x0, x1 := math.Log(zoneP[i-1]), math.Log(zoneP[i])
	y0, y1 := math.Log(s.rates[i-1]), math.Log(s.rates[i])
	t := (math.Log(p) - x0) / (x1 - x0)
	return math.Exp(y0 + t*(y1-y0)), nil
}

func (s *ZonalSource) Nwet(lat, lon float64) (float64, error) {
	if err := checkPoint("nwet", lat, lon); err != nil {
		return 0, err
	}
	atm := band(lat)
	return wetRefractivity(atm.rho, atm.temp), nil
}

// wetRefractivity is the P.453 wet term for density rho (g/m³) and
// temperature t (K).
func wetRefractivity(rho, t float64) float64 {
	e := rho * t / 216.7
	return 3.732e5 * e / (t * t)
}

// RainHeight is the P.839-2 latitude model of the 0 °C isotherm plus
// 0.36 km.
func (s *ZonalSource) RainHeight(lat, lon float64) (float64, error) {
	if err := checkPoint("rain_height", lat, lon); err != nil {
		return 0, err
	}
	var h0 float64
	switch {
	case lat > 23:
		h0 = 5 - 0.075*(lat-23)
	case lat >= -21:
		h0 = 5
	case lat >= -71:
		h0 = 5 + 0.1*(lat+21)
	default:
		h0 = 0
	}
	return math.Max(h0, 0) + rainHeightOffset, nil
}

// LWCC fails with ErrUnavailable: the reference atmospheres have no cloud
// liquid water.
func (s *ZonalSource) LWCC(lat, lon, p float64) (float64, error) {
	if err := checkPointP("lwcc", lat, lon, p); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("lwcc: zonal climatology: %w", ErrUnavailable)
}

func (s *ZonalSource) SWVD(lat, lon float64) (float64, error) {
	if err := checkPoint("swvd", lat, lon); err != nil {
		return 0, err
	}
	return band(lat).rho, nil
}

// IWVC is the annual mean column of the band's reference atmospheres.
func (s *ZonalSource) IWVC(lat, lon, p float64) (float64, error) {
	if err := checkPointP("iwvc", lat, lon, p); err != nil {
		return 0, err
	}
	return band(lat).iwvc, nil
}

func (s *ZonalSource) Temperature(lat, lon float64) (float64, error) {
	if err := checkPoint("temperature", lat, lon); err != nil {
		return 0, err
	}
	return band(lat).temp, nil
}
