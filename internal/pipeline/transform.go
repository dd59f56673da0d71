package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// Evaluator computes the report of a scenario.
type Evaluator interface {
	Evaluate(ctx context.Context, sc domain.Scenario) (domain.Report, error)
}

// ScenarioTransformer implements Transformer: it parses a link request,
// resolves the station position when only a site name is given and evaluates
// the scenario.
type ScenarioTransformer struct {
	evaluator Evaluator
	geocoder  domain.Geocoder
	logger    *slog.Logger
}

// NewTransformer creates a ScenarioTransformer. Pass a nil geocoder to
// disable station geocoding; requests carrying only a site are then rejected.
func NewTransformer(evaluator Evaluator, geocoder domain.Geocoder, logger *slog.Logger) *ScenarioTransformer {
	return &ScenarioTransformer{
		evaluator: evaluator,
		geocoder:  geocoder,
		logger:    logger,
	}
}

func (t *ScenarioTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.Report, error) {
	sc, err := domain.ParseScenario(raw)
	if err != nil {
		return domain.Report{}, err
	}

	sc.Station, err = domain.ResolveStation(ctx, sc.Station, t.geocoder, t.logger)
	if err != nil {
		return domain.Report{}, fmt.Errorf("resolve station for scenario %s: %w", sc.ID, err)
	}

	return t.evaluator.Evaluate(ctx, sc)
}
