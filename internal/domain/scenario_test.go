package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	raw := RawEvent{Value: []byte(`{"id":"gw-1",
		"station":{"lat":44.17,"lon":-80.9,"alt":120,"elv":35},
		"antenna":{"dia":1.2,"eff":60},
		"link":{"freq1":20,"freq2":30,"pol":45,"unavail":0.1}}`)}

	sc, err := ParseScenario(raw)
	require.NoError(t, err)

	assert.Equal(t, "gw-1", sc.ID)
	assert.Equal(t, Station{Lat: 44.17, Lon: -80.9, AltitudeM: 120, ElevationDeg: 35}, sc.Station)
	assert.Equal(t, Antenna{DiameterM: 1.2, EfficiencyPct: 60}, sc.Antenna)
	assert.Equal(t, Link{Freq1GHz: 20, Freq2GHz: 30, PolarizationDeg: 45, UnavailabilityPct: 0.1}, sc.Link)
}

func TestParseScenario_InvalidJSON(t *testing.T) {
	_, err := ParseScenario(RawEvent{Value: []byte("not-json{{{")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
	assert.False(t, IsDomainError(err))
}

func TestParseScenario_GeneratesDeterministicID(t *testing.T) {
	raw := RawEvent{Value: []byte(`{"station":{"lat":44.17,"lon":-80.9,"elv":90},
		"antenna":{"dia":1,"eff":50},
		"link":{"freq1":20,"freq2":30,"pol":45,"unavail":0.01}}`)}

	a, err := ParseScenario(raw)
	require.NoError(t, err)
	b, err := ParseScenario(raw)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID, "link-"))
	assert.Len(t, a.ID, len("link-")+16)
	assert.Equal(t, a.ID, b.ID)
}

func TestGenerateID_DependsOnInputs(t *testing.T) {
	ref := ReferenceScenario()
	other := ref
	other.Link.Freq2GHz = 40

	assert.NotEqual(t, generateID(ref), generateID(other))
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Scenario)
		param string
	}{
		{"lat too high", func(sc *Scenario) { sc.Station.Lat = 91 }, "lat"},
		{"lon too low", func(sc *Scenario) { sc.Station.Lon = -181 }, "lon"},
		{"negative altitude", func(sc *Scenario) { sc.Station.AltitudeM = -1 }, "alt"},
		{"elevation above zenith", func(sc *Scenario) { sc.Station.ElevationDeg = 91 }, "elv"},
		{"zero diameter", func(sc *Scenario) { sc.Antenna.DiameterM = 0 }, "dia"},
		{"efficiency over 100", func(sc *Scenario) { sc.Antenna.EfficiencyPct = 101 }, "eff"},
		{"zero frequency", func(sc *Scenario) { sc.Link.Freq1GHz = 0 }, "freq1"},
		{"NaN frequency 2", func(sc *Scenario) { sc.Link.Freq2GHz = math.NaN() }, "freq2"},
		{"zero unavailability", func(sc *Scenario) { sc.Link.UnavailabilityPct = 0 }, "p"},
		{"unavailability over 100", func(sc *Scenario) { sc.Link.UnavailabilityPct = 100.5 }, "p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := ReferenceScenario()
			tt.edit(&sc)

			err := sc.Validate()
			require.Error(t, err)
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.param, de.Param)
		})
	}
}

func TestScenarioValidate_Reference(t *testing.T) {
	assert.NoError(t, ReferenceScenario().Validate())
}
