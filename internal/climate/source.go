package climate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/couchcryptid/propa-engine/internal/observability"
)

// Source answers the climatological lookups of a link budget. Coordinates are
// degrees, p is a time percentage in (0, 100].
//
// LWCC and IWVC are only defined down to 1 %; implementations evaluate any
// smaller p at 1 %, so LWCC(lat, lon, u) == LWCC(lat, lon, 1) for u < 1.
// A statistic the source has no data for fails with ErrUnavailable.
type Source interface {
	// Name identifies the source in reports and logs.
	Name() string

	// RainIntensity is the rain rate in mm/h exceeded for p % of an average year.
	RainIntensity(lat, lon, p float64) (float64, error)
	// Nwet is the median wet term of surface refractivity in ppm.
	Nwet(lat, lon float64) (float64, error)
	// RainHeight is the mean rain height above sea level in km.
	RainHeight(lat, lon float64) (float64, error)
	// LWCC is the total columnar cloud liquid water content in kg/m².
	LWCC(lat, lon, p float64) (float64, error)
	// SWVD is the surface water vapour density in g/m³.
	SWVD(lat, lon float64) (float64, error)
	// IWVC is the integrated water vapour content in kg/m².
	IWVC(lat, lon, p float64) (float64, error)
	// Temperature is the annual mean surface temperature in K.
	Temperature(lat, lon float64) (float64, error)
}

// ErrUnavailable reports a statistic a source has no data for.
var ErrUnavailable = errors.New("climate statistic unavailable")

// rainHeightOffset lifts the 0 °C isotherm height to the rain height, km.
const rainHeightOffset = 0.36

// Options selects and configures a Source.
type Options struct {
	DataDir   string // ITU digital maps; empty selects the zonal fallback
	RainZone  string // P.837-1 zone used by the zonal fallback
	CacheSize int    // 0 disables caching
}

// New builds the Source described by opts. A configured data directory is
// loaded once and shared read-only for the lifetime of the process.
func New(opts Options, metrics *observability.Metrics, logger *slog.Logger) (Source, error) {
	var src Source
	if opts.DataDir != "" {
		ds, err := LoadDataset(opts.DataDir)
		if err != nil {
			return nil, err
		}
		src = NewGridSource(ds)
		logger.Info("climate dataset loaded", "dir", opts.DataDir, "maps", len(ds.grids))
	} else {
		zonal, err := NewZonalSource(opts.RainZone)
		if err != nil {
			return nil, err
		}
		src = zonal
		logger.Info("climate data directory not set, using zonal climatology", "rain_zone", zonal.Zone())
	}

	if opts.CacheSize > 0 {
		src = NewCachedSource(src, opts.CacheSize, metrics)
	}
	return src, nil
}

func checkPoint(op string, lat, lon float64) error {
	return domain.CheckCoordinates(op, lat, lon)
}

func checkPointP(op string, lat, lon, p float64) error {
	if err := domain.CheckCoordinates(op, lat, lon); err != nil {
		return err
	}
	return domain.CheckUnavailability(op, p)
}

// vapourP raises p to the lowest percentage the water vapour and cloud
// statistics are defined for.
func vapourP(p float64) float64 {
	return math.Max(p, domain.MinVapourUnavailability)
}

// weibullQuantile returns the value exceeded p % of the time for a Weibull
// distribution with shape k and scale lambda.
func weibullQuantile(p, k, lambda float64) (float64, error) {
	if k <= 0 || lambda < 0 {
		return 0, fmt.Errorf("invalid weibull parameters k=%g lambda=%g", k, lambda)
	}
	return lambda * math.Pow(-math.Log(p/100), 1/k), nil
}
