// Package budget evaluates a complete Earth–space link budget: it derives the
// station climate, runs every attenuation model at frequency 1, combines the
// terms and scales the rain attenuation to frequency 2.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/couchcryptid/propa-engine/internal/itur"
	"github.com/couchcryptid/propa-engine/internal/observability"
	"golang.org/x/sync/errgroup"
)

// RainReferenceP is the time percentage at which the rain rate feeding the
// rain attenuation model is looked up.
const RainReferenceP = 0.01

// Evaluator runs scenarios against a climate source. It is safe for
// concurrent use.
type Evaluator struct {
	source      climate.Source
	logger      *slog.Logger
	metrics     *observability.Metrics
	logWarnings bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMetrics records evaluation outcomes, durations and warnings.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithWarningLogs controls whether warnings are logged. They are always
// attached to the report.
func WithWarningLogs(enabled bool) Option {
	return func(e *Evaluator) { e.logWarnings = enabled }
}

// NewEvaluator returns an Evaluator reading climate from source.
func NewEvaluator(source climate.Source, logger *slog.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{
		source:      source,
		logger:      logger,
		logWarnings: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source returns the climate source the evaluator reads from.
func (e *Evaluator) Source() climate.Source { return e.source }

// Evaluate computes the report for sc. Physically invalid inputs fail with a
// *domain.DomainError; inputs a model evaluates at the edge of its fitted
// window are reported as warnings.
func (e *Evaluator) Evaluate(ctx context.Context, sc domain.Scenario) (domain.Report, error) {
	start := time.Now()
	report, err := e.evaluate(ctx, sc)
	e.observe(start, report, err)
	return report, err
}

func (e *Evaluator) evaluate(ctx context.Context, sc domain.Scenario) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}
	if err := sc.Validate(); err != nil {
		return domain.Report{}, fmt.Errorf("validate scenario %s: %w", sc.ID, err)
	}

	pVapour, warnings := domain.ClampVapourUnavailability(sc.Link.UnavailabilityPct)

	clim, climWarnings, err := e.Climate(sc.Station, pVapour)
	if err != nil {
		return domain.Report{}, fmt.Errorf("climate for scenario %s: %w", sc.ID, err)
	}
	warnings = append(warnings, climWarnings...)
	warnings = append(warnings, ModelWarnings(sc)...)

	atten, err := Attenuate(ctx, sc, clim)
	if err != nil {
		return domain.Report{}, fmt.Errorf("attenuation for scenario %s: %w", sc.ID, err)
	}

	if e.logWarnings {
		for _, w := range warnings {
			e.logger.Warn(w.Message, "code", w.Code, "scenario_id", sc.ID)
		}
	}

	return domain.Report{
		ID:            sc.ID,
		Scenario:      sc,
		Climate:       clim,
		Attenuation:   atten,
		Warnings:      warnings,
		ClimateSource: e.source.Name(),
		ProcessedAt:   domain.Now(),
	}, nil
}

// Climate builds the climate bundle of a station. pVapour is the percentage
// at which IWVC and LWCC are read, already clamped by the caller. A cloud
// liquid water statistic the source lacks is taken as zero with a warning.
func (e *Evaluator) Climate(st domain.Station, pVapour float64) (domain.ClimaticParameters, []domain.Warning, error) {
	var (
		c        domain.ClimaticParameters
		warnings []domain.Warning
		err      error
	)
	lat, lon := st.Lat, st.Lon

	if c.RainIntensity, err = e.source.RainIntensity(lat, lon, RainReferenceP); err != nil {
		return c, nil, err
	}
	if c.Nwet, err = e.source.Nwet(lat, lon); err != nil {
		return c, nil, err
	}
	if c.RainHeight, err = e.source.RainHeight(lat, lon); err != nil {
		return c, nil, err
	}
	c.TotalColumnarContent, err = e.source.LWCC(lat, lon, pVapour)
	switch {
	case errors.Is(err, climate.ErrUnavailable):
		c.TotalColumnarContent = 0
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnLWCCUnavailable,
			Message: fmt.Sprintf("%s has no cloud liquid water statistics, cloud attenuation taken as 0", e.source.Name()),
		})
	case err != nil:
		return c, nil, err
	}
	if c.SurfaceWaterVapourDensity, err = e.source.SWVD(lat, lon); err != nil {
		return c, nil, err
	}
	if c.IntegratedWaterVapourContent, err = e.source.IWVC(lat, lon, pVapour); err != nil {
		return c, nil, err
	}
	if c.Temperature, err = e.source.Temperature(lat, lon); err != nil {
		return c, nil, err
	}
	if c.MeanRadiatingTemperature, err = itur.MeanRadiatingTemperature(c.Temperature); err != nil {
		return c, nil, err
	}
	return c, warnings, nil
}

// ModelWarnings lists the inputs of sc that a model evaluates at the edge of
// its fitted window rather than at their own value.
func ModelWarnings(sc domain.Scenario) []domain.Warning {
	f := sc.Link.Freq1GHz
	p := sc.Link.UnavailabilityPct
	el := sc.Station.ElevationDeg * math.Pi / 180

	var warnings []domain.Warning
	for _, v := range []itur.Validity{
		itur.GasValidity,
		itur.RainValidity,
		itur.CloudValidity,
		itur.ScintillationValidity,
		itur.XPDValidity,
	} {
		warnings = append(warnings, v.Warnings(f, el, p)...)
	}

	// Scaling to the same frequency never leaves the window.
	if f2 := sc.Link.Freq2GHz; f2 != f {
		warnings = append(warnings, itur.EFSRValidity.Warnings(f, el, p)...)
		if w, ok := itur.EFSRValidity.FreqWarning("freq2", f2); ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// Attenuate evaluates the attenuation terms of sc at frequency 1 under clim.
// The five independent models run concurrently; XPD, the totals, sky noise
// and the frequency-2 scaling follow once they are all available.
func Attenuate(ctx context.Context, sc domain.Scenario, clim domain.ClimaticParameters) (domain.AttenuationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AttenuationResult{}, err
	}
	st := sc.Station
	f := sc.Link.Freq1GHz
	p := sc.Link.UnavailabilityPct
	pol := sc.Link.PolarizationDeg
	temp := clim.Temperature

	// The models take radians and a fractional efficiency.
	elv := st.ElevationDeg * math.Pi / 180
	eta := sc.Antenna.EfficiencyPct / 100

	var r domain.AttenuationResult

	var g errgroup.Group
	g.Go(func() (err error) {
		r.Gas, err = itur.GaseousAttenuation(f, elv, temp, clim.SurfaceWaterVapourDensity)
		return err
	})
	g.Go(func() (err error) {
		r.GasExceeded, err = itur.GaseousAttenuationExc(f, elv, temp, clim.IntegratedWaterVapourContent)
		return err
	})
	g.Go(func() (err error) {
		r.Rain, err = itur.RainAttenuation(st.Lat, f, elv, p, st.AltitudeM, clim.RainHeight, clim.RainIntensity, pol)
		return err
	})
	g.Go(func() (err error) {
		r.Cloud, err = itur.CloudAttenuation(f, elv, clim.TotalColumnarContent)
		return err
	})
	g.Go(func() (err error) {
		r.Scintillation, err = itur.Scintillation(clim.Nwet, f, elv, p, st.AltitudeM, eta, sc.Antenna.DiameterM)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.AttenuationResult{}, err
	}

	var err error
	if r.XPD, err = itur.XPD(r.Rain, pol, f, st.ElevationDeg, p); err != nil {
		return domain.AttenuationResult{}, err
	}

	r.TotalMethod1 = itur.TotalAttenuation(r.Gas, r.Rain, r.Cloud, r.Scintillation)
	r.TotalMethod2 = itur.TotalAttenuation(r.GasExceeded, r.Rain, r.Cloud, r.Scintillation)

	// Sky noise uses the linear sum of the absorbing terms, not either total.
	if r.SkyNoiseTemperature, err = itur.NoiseTemperature(r.GasExceeded+r.Rain+r.Cloud, clim.MeanRadiatingTemperature); err != nil {
		return domain.AttenuationResult{}, err
	}

	if r.RainFreq2Scaled, err = itur.EFSR(f, sc.Link.Freq2GHz, r.Rain); err != nil {
		return domain.AttenuationResult{}, err
	}
	return r, nil
}

func (e *Evaluator) observe(start time.Time, report domain.Report, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		e.metrics.Evaluations.WithLabelValues("success").Inc()
		for _, w := range report.Warnings {
			e.metrics.Warnings.WithLabelValues(w.Code).Inc()
		}
	case domain.IsDomainError(err):
		e.metrics.Evaluations.WithLabelValues("domain_error").Inc()
	default:
		e.metrics.Evaluations.WithLabelValues("error").Inc()
	}
}
