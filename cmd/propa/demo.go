package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/couchcryptid/propa-engine/internal/budget"
	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type demoOptions struct {
	scenarioFile  string
	dataDir       string
	rainZone      string
	quietWarnings bool
	asJSON        bool
}

// scenarioFlag binds one numeric scenario input to a command-line flag.
type scenarioFlag struct {
	name  string
	usage string
	field func(*domain.Scenario) *float64
}

var scenarioFlags = []scenarioFlag{
	{"lat", "station latitude (deg)", func(sc *domain.Scenario) *float64 { return &sc.Station.Lat }},
	{"lon", "station longitude (deg)", func(sc *domain.Scenario) *float64 { return &sc.Station.Lon }},
	{"alt", "station altitude (m)", func(sc *domain.Scenario) *float64 { return &sc.Station.AltitudeM }},
	{"elevation", "path elevation (deg)", func(sc *domain.Scenario) *float64 { return &sc.Station.ElevationDeg }},
	{"diameter", "antenna diameter (m)", func(sc *domain.Scenario) *float64 { return &sc.Antenna.DiameterM }},
	{"efficiency", "antenna efficiency (%)", func(sc *domain.Scenario) *float64 { return &sc.Antenna.EfficiencyPct }},
	{"freq1", "frequency 1 (GHz)", func(sc *domain.Scenario) *float64 { return &sc.Link.Freq1GHz }},
	{"freq2", "frequency 2 for rain scaling (GHz)", func(sc *domain.Scenario) *float64 { return &sc.Link.Freq2GHz }},
	{"polarization", "polarization tilt (deg)", func(sc *domain.Scenario) *float64 { return &sc.Link.PolarizationDeg }},
	{"unavailability", "unavailability (% of time)", func(sc *domain.Scenario) *float64 { return &sc.Link.UnavailabilityPct }},
}

func newDemoCmd() *cobra.Command {
	var opts demoOptions
	var values map[string]*float64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Evaluate one link scenario and print every result bundle",
		Long: "Evaluate one link scenario and print its station, antenna, link, " +
			"climatic parameters and attenuation results. Defaults reproduce the " +
			"reference link; --scenario loads a TOML file and explicit flags " +
			"override it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := resolveScenario(opts.scenarioFile, cmd.Flags(), values)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), opts, sc)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.scenarioFile, "scenario", "", "TOML scenario file")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory holding the ITU digital maps (default: zonal climatology)")
	fs.StringVar(&opts.rainZone, "rain-zone", climate.DefaultRainZone, "P.837-1 rain zone for the zonal climatology")
	fs.BoolVar(&opts.quietWarnings, "quiet-warnings", false, "do not print non-fatal warnings")
	fs.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	values = bindScenarioFlags(fs, domain.ReferenceScenario())

	return cmd
}

func bindScenarioFlags(fs *pflag.FlagSet, defaults domain.Scenario) map[string]*float64 {
	values := make(map[string]*float64, len(scenarioFlags))
	for _, f := range scenarioFlags {
		values[f.name] = fs.Float64(f.name, *f.field(&defaults), f.usage)
	}
	return values
}

// resolveScenario layers the reference scenario, the optional TOML file and
// the flags the user set explicitly, in that order.
func resolveScenario(path string, fs *pflag.FlagSet, values map[string]*float64) (domain.Scenario, error) {
	sc := domain.ReferenceScenario()
	if path != "" {
		loaded, err := loadScenarioFile(path, sc)
		if err != nil {
			return domain.Scenario{}, err
		}
		sc = loaded
	}
	for _, f := range scenarioFlags {
		if fs.Changed(f.name) {
			*f.field(&sc) = *values[f.name]
		}
	}
	return sc, nil
}

// loadScenarioFile decodes a TOML scenario over base. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadScenarioFile(path string, base domain.Scenario) (domain.Scenario, error) {
	sc := base
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return domain.Scenario{}, fmt.Errorf("read scenario %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return sc, nil
}

func runDemo(ctx context.Context, w io.Writer, opts demoOptions, sc domain.Scenario) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	source, err := climate.New(climate.Options{
		DataDir:  opts.dataDir,
		RainZone: opts.rainZone,
	}, nil, logger)
	if err != nil {
		return err
	}

	e := budget.NewEvaluator(source, logger, budget.WithWarningLogs(false))
	report, err := e.Evaluate(ctx, sc)
	if err != nil {
		return err
	}

	if opts.quietWarnings {
		report.Warnings = nil
	}
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(w, report)
}
