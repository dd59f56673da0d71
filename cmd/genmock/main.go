// Command genmock reads a ground-station CSV and generates link-budget
// fixtures: the JSON requests published to the request topic and the reports
// the engine produces for them. It runs the real evaluator so the fixtures
// match pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  --csv data/mock/stations.csv \
//	  --requests-out data/mock/link_requests.json \
//	  --reports-out data/mock/link_reports.json
//
// The CSV header must name the columns id, site, state, lat, lon, alt, elv,
// dia, eff, freq1, freq2, pol and unavail. id, site and state may be empty.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/propa-engine/internal/budget"
	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"
)

var fixtureTime = time.Date(2026, time.January, 15, 6, 0, 0, 0, time.UTC)

var numericColumns = []string{"lat", "lon", "alt", "elv", "dia", "eff", "freq1", "freq2", "pol", "unavail"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := pflag.String("csv", "", "ground-station CSV file")
	requestsOut := pflag.String("requests-out", "", "output path for the request fixture")
	reportsOut := pflag.String("reports-out", "", "output path for the report fixture")
	dataDir := pflag.String("data-dir", "", "ITU digital maps directory (default: zonal climatology)")
	rainZone := pflag.String("rain-zone", climate.DefaultRainZone, "rain zone for the zonal climatology")
	pflag.Parse()

	if *csvPath == "" || *requestsOut == "" || *reportsOut == "" {
		pflag.Usage()
		return fmt.Errorf("missing required flags: --csv, --requests-out, --reports-out")
	}

	// Fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	f, err := os.Open(*csvPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	scenarios, err := readStations(f)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("stations: %d", len(scenarios))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source, err := climate.New(climate.Options{DataDir: *dataDir, RainZone: *rainZone}, nil, logger)
	if err != nil {
		return err
	}
	e := budget.NewEvaluator(source, logger, budget.WithWarningLogs(false))

	reports, rejected := evaluateAll(context.Background(), e, scenarios)
	for _, r := range rejected {
		log.Printf("rejected: %s", r)
	}

	if err := writeJSON(*requestsOut, scenarios); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*reportsOut, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportsOut)

	printStats(os.Stdout, reports, len(rejected))
	return nil
}

// readStations parses the station CSV into scenarios. Rows without an id get
// the deterministic ID the pipeline would assign.
func readStations(r io.Reader) ([]domain.Scenario, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range numericColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	scenarios := make([]domain.Scenario, 0, len(rows)-1)
	for line, row := range rows[1:] {
		vals := make(map[string]float64, len(numericColumns))
		for _, col := range numericColumns {
			v, err := strconv.ParseFloat(get(row, colIdx, col), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line+2, col, err)
			}
			vals[col] = v
		}

		sc := domain.Scenario{
			ID: get(row, colIdx, "id"),
			Station: domain.Station{
				Site:         get(row, colIdx, "site"),
				State:        get(row, colIdx, "state"),
				Lat:          vals["lat"],
				Lon:          vals["lon"],
				AltitudeM:    vals["alt"],
				ElevationDeg: vals["elv"],
			},
			Antenna: domain.Antenna{DiameterM: vals["dia"], EfficiencyPct: vals["eff"]},
			Link: domain.Link{
				Freq1GHz:          vals["freq1"],
				Freq2GHz:          vals["freq2"],
				PolarizationDeg:   vals["pol"],
				UnavailabilityPct: vals["unavail"],
			},
		}
		if sc.ID == "" {
			raw, err := json.Marshal(sc)
			if err != nil {
				return nil, fmt.Errorf("marshal scenario: %w", err)
			}
			if sc, err = domain.ParseScenario(domain.RawEvent{Value: raw}); err != nil {
				return nil, err
			}
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func evaluateAll(ctx context.Context, e *budget.Evaluator, scenarios []domain.Scenario) ([]domain.Report, []string) {
	reports := make([]domain.Report, 0, len(scenarios))
	var rejected []string
	for _, sc := range scenarios {
		report, err := e.Evaluate(ctx, sc)
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("%s: %v", sc.ID, err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, rejected
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats summarizes the reports for updating test assertions.
func printStats(w io.Writer, reports []domain.Report, rejected int) {
	warnings := map[string]int{}
	var maxRain domain.Report
	for _, r := range reports {
		for _, warn := range r.Warnings {
			warnings[warn.Code]++
		}
		if r.Attenuation.Rain > maxRain.Attenuation.Rain {
			maxRain = r
		}
	}

	fmt.Fprintln(w, "\n=== Stats for updating test assertions ===")
	fmt.Fprintf(w, "Reports: %d, rejected: %d\n", len(reports), rejected)

	codes := make([]string, 0, len(warnings))
	for code := range warnings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "Warning %s: %d\n", code, warnings[code])
	}

	if maxRain.ID != "" {
		fmt.Fprintf(w, "Max rain attenuation: %.3f dB (%s)\n", maxRain.Attenuation.Rain, maxRain.ID)
	}
}
