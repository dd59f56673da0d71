package budget_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/propa-engine/internal/budget"
	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/couchcryptid/propa-engine/internal/itur"
	"github.com/couchcryptid/propa-engine/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func zonalSource(t *testing.T) climate.Source {
	t.Helper()
	src, err := climate.NewZonalSource("K")
	require.NoError(t, err)
	return src
}

func freezeClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(nil) })
	return now
}

func TestEvaluate_ReferenceScenario(t *testing.T) {
	now := freezeClock(t)
	src := zonalSource(t)
	e := budget.NewEvaluator(src, discardLogger())

	report, err := e.Evaluate(context.Background(), domain.ReferenceScenario())
	require.NoError(t, err)

	assert.Equal(t, "reference", report.ID)
	assert.Equal(t, "zonal-K", report.ClimateSource)
	assert.Equal(t, now, report.ProcessedAt)

	c := report.Climate
	assert.InDelta(t, 42, c.RainIntensity, 1e-9)
	assert.InDelta(t, 3.77225, c.RainHeight, 1e-9)
	assert.InDelta(t, 283.854, c.Temperature, 0.001)
	assert.InDelta(t, 267.262, c.MeanRadiatingTemperature, 0.001)
	assert.InDelta(t, 19.120, c.IntegratedWaterVapourContent, 0.001)
	assert.Zero(t, c.TotalColumnarContent)

	a := report.Attenuation
	assert.InDelta(t, 0.300, a.Gas, 0.005)
	assert.InDelta(t, 0.314, a.GasExceeded, 0.005)
	assert.InDelta(t, 18.624, a.Rain, 0.01)
	assert.Zero(t, a.Cloud)
	assert.InDelta(t, 0.353, a.Scintillation, 0.005)
	assert.InDelta(t, 20.705, a.XPD, 0.01)
	assert.InDelta(t, 18.928, a.TotalMethod1, 0.01)
	assert.InDelta(t, 18.941, a.TotalMethod2, 0.01)
	assert.InDelta(t, 263.849, a.SkyNoiseTemperature, 0.05)
	assert.InDelta(t, 33.888, a.RainFreq2Scaled, 0.02)
}

func TestEvaluate_InternalConsistency(t *testing.T) {
	freezeClock(t)
	src := zonalSource(t)
	e := budget.NewEvaluator(src, discardLogger())
	sc := domain.ReferenceScenario()

	report, err := e.Evaluate(context.Background(), sc)
	require.NoError(t, err)
	a := report.Attenuation

	assert.Equal(t, itur.TotalAttenuation(a.Gas, a.Rain, a.Cloud, a.Scintillation), a.TotalMethod1)
	assert.Equal(t, itur.TotalAttenuation(a.GasExceeded, a.Rain, a.Cloud, a.Scintillation), a.TotalMethod2)

	noise, err := itur.NoiseTemperature(a.GasExceeded+a.Rain+a.Cloud, report.Climate.MeanRadiatingTemperature)
	require.NoError(t, err)
	assert.Equal(t, noise, a.SkyNoiseTemperature)
	assert.Less(t, a.SkyNoiseTemperature, report.Climate.MeanRadiatingTemperature)

	scaled, err := itur.EFSR(sc.Link.Freq1GHz, sc.Link.Freq2GHz, a.Rain)
	require.NoError(t, err)
	assert.Equal(t, scaled, a.RainFreq2Scaled)

	// Clamped lookups are read at 1 %.
	iwvc, err := src.IWVC(sc.Station.Lat, sc.Station.Lon, 1)
	require.NoError(t, err)
	assert.Equal(t, iwvc, report.Climate.IntegratedWaterVapourContent)
}

func TestEvaluate_Deterministic(t *testing.T) {
	freezeClock(t)
	e := budget.NewEvaluator(zonalSource(t), discardLogger())

	first, err := e.Evaluate(context.Background(), domain.ReferenceScenario())
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), domain.ReferenceScenario())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ (-first +second):\n%s", diff)
	}
}

func TestEvaluate_WarningsBelowOnePercent(t *testing.T) {
	freezeClock(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	metrics := observability.NewMetricsForTesting()
	e := budget.NewEvaluator(zonalSource(t), logger, budget.WithMetrics(metrics))

	report, err := e.Evaluate(context.Background(), domain.ReferenceScenario())
	require.NoError(t, err)

	require.Len(t, report.Warnings, 3)
	assert.Equal(t, domain.WarnIWVCClamped, report.Warnings[0].Code)
	assert.Equal(t, domain.WarnLWCCClamped, report.Warnings[1].Code)
	assert.Equal(t, domain.WarnLWCCUnavailable, report.Warnings[2].Code)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=iwvc_clamped")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Warnings.WithLabelValues(domain.WarnIWVCClamped)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Evaluations.WithLabelValues("success")), 0)
}

func TestEvaluate_QuietWarningsStillReported(t *testing.T) {
	freezeClock(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := budget.NewEvaluator(zonalSource(t), logger, budget.WithWarningLogs(false))

	report, err := e.Evaluate(context.Background(), domain.ReferenceScenario())
	require.NoError(t, err)

	assert.Len(t, report.Warnings, 3)
	assert.NotContains(t, buf.String(), "level=WARN")
}

func TestEvaluate_NoClampAtOrAboveOnePercent(t *testing.T) {
	freezeClock(t)
	src := zonalSource(t)
	e := budget.NewEvaluator(src, discardLogger())

	sc := domain.ReferenceScenario()
	sc.Link.UnavailabilityPct = 2
	report, err := e.Evaluate(context.Background(), sc)
	require.NoError(t, err)

	assert.Equal(t, []string{domain.WarnLWCCUnavailable}, warningCodes(report))
	iwvc, err := src.IWVC(sc.Station.Lat, sc.Station.Lon, 2)
	require.NoError(t, err)
	assert.Equal(t, iwvc, report.Climate.IntegratedWaterVapourContent)

	// The rain rate is always the 0.01 % value.
	assert.InDelta(t, 42, report.Climate.RainIntensity, 1e-9)
}

func TestEvaluate_DomainErrors(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	e := budget.NewEvaluator(zonalSource(t), discardLogger(), budget.WithMetrics(metrics))

	tests := []struct {
		name   string
		mutate func(*domain.Scenario)
	}{
		{"negative frequency", func(sc *domain.Scenario) { sc.Link.Freq1GHz = -20 }},
		{"latitude out of range", func(sc *domain.Scenario) { sc.Station.Lat = 95 }},
		{"unavailability zero", func(sc *domain.Scenario) { sc.Link.UnavailabilityPct = 0 }},
		{"unavailability above 100", func(sc *domain.Scenario) { sc.Link.UnavailabilityPct = 150 }},
		{"elevation past zenith", func(sc *domain.Scenario) { sc.Station.ElevationDeg = 95 }},
		{"zero frequency 2", func(sc *domain.Scenario) { sc.Link.Freq2GHz = 0 }},
		{"NaN efficiency", func(sc *domain.Scenario) { sc.Antenna.EfficiencyPct = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := domain.ReferenceScenario()
			tt.mutate(&sc)

			report, err := e.Evaluate(context.Background(), sc)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err), "got %v", err)
			assert.Empty(t, report.ID)
		})
	}
	assert.InDelta(t, float64(len(tests)), testutil.ToFloat64(metrics.Evaluations.WithLabelValues("domain_error")), 0)
}

func TestEvaluate_OutsideFittedWindowsWarns(t *testing.T) {
	freezeClock(t)
	e := budget.NewEvaluator(zonalSource(t), discardLogger(), budget.WithWarningLogs(false))

	tests := []struct {
		name   string
		mutate func(*domain.Scenario)
		codes  []string
	}{
		{
			"elevation 3 degrees",
			func(sc *domain.Scenario) { sc.Station.ElevationDeg = 3 },
			[]string{"cloud_elevation_clamped", "scintillation_elevation_clamped"},
		},
		{
			"horizon",
			func(sc *domain.Scenario) { sc.Station.ElevationDeg = 0 },
			[]string{"cloud_elevation_clamped", "scintillation_elevation_clamped"},
		},
		{
			"frequency 1 at 4 GHz",
			func(sc *domain.Scenario) { sc.Link.Freq1GHz = 4 },
			[]string{"xpd_freq_clamped", "efsr_freq_clamped"},
		},
		{
			"unavailability 10 percent",
			func(sc *domain.Scenario) { sc.Link.UnavailabilityPct = 10 },
			[]string{"rain_p_clamped", "xpd_p_clamped"},
		},
		{
			"unavailability 0.005 percent",
			func(sc *domain.Scenario) { sc.Link.UnavailabilityPct = 0.005 },
			[]string{"scintillation_p_clamped"},
		},
		{
			"frequency 2 at 80 GHz",
			func(sc *domain.Scenario) { sc.Link.Freq2GHz = 80 },
			[]string{"efsr_freq2_clamped"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := domain.ReferenceScenario()
			tt.mutate(&sc)

			report, err := e.Evaluate(context.Background(), sc)
			require.NoError(t, err)
			codes := warningCodes(report)
			for _, code := range tt.codes {
				assert.Contains(t, codes, code)
			}

			a := report.Attenuation
			for name, v := range map[string]float64{
				"gas": a.Gas, "rain": a.Rain, "scintillation": a.Scintillation,
				"method1": a.TotalMethod1, "noise": a.SkyNoiseTemperature,
				"freq2": a.RainFreq2Scaled,
			} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s=%g", name, v)
				assert.GreaterOrEqual(t, v, 0.0, name)
			}
			// XPD goes negative under the heavy fades of very low paths.
			assert.False(t, math.IsNaN(a.XPD) || math.IsInf(a.XPD, 0))
		})
	}
}

func TestModelWarnings_SameFrequencyNeverScaled(t *testing.T) {
	sc := domain.ReferenceScenario()
	sc.Link.Freq1GHz = 80
	sc.Link.Freq2GHz = 80

	for _, w := range budget.ModelWarnings(sc) {
		assert.NotContains(t, w.Code, "efsr", w.Message)
	}
	assert.Empty(t, budget.ModelWarnings(domain.ReferenceScenario()))
}

func TestEvaluate_UnavailableStatisticIsNotFatal(t *testing.T) {
	freezeClock(t)
	e := budget.NewEvaluator(zonalSource(t), discardLogger())

	clim, warnings, err := e.Climate(domain.ReferenceScenario().Station, 1)
	require.NoError(t, err)
	assert.Zero(t, clim.TotalColumnarContent)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnLWCCUnavailable, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "zonal-K")
}

func warningCodes(report domain.Report) []string {
	codes := make([]string, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func TestEvaluate_CancelledContext(t *testing.T) {
	e := budget.NewEvaluator(zonalSource(t), discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, domain.ReferenceScenario())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsDomainError(err))
}

func TestEvaluate_CachedZonalSource(t *testing.T) {
	freezeClock(t)
	src, err := climate.New(climate.Options{RainZone: "N", CacheSize: 32}, observability.NewMetricsForTesting(), discardLogger())
	require.NoError(t, err)
	e := budget.NewEvaluator(src, discardLogger())

	sc := domain.ReferenceScenario()
	sc.Station.ElevationDeg = 35
	sc.Station.AltitudeM = 250
	sc.Link.PolarizationDeg = 0

	report, err := e.Evaluate(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, "zonal-N", report.ClimateSource)
	assert.Positive(t, report.Attenuation.Rain)
	assert.Greater(t, report.Attenuation.TotalMethod1, report.Attenuation.Rain)
}
