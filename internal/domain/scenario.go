package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRequest reports a link request that is not a valid scenario
// document.
var ErrMalformedRequest = errors.New("malformed link request")

// ReferenceScenario is the demonstration link: a zenith-pointing 1 m antenna
// near Lake Huron receiving 20 GHz, scaled to 30 GHz, at 0.01 % unavailability.
func ReferenceScenario() Scenario {
	return Scenario{
		ID:      "reference",
		Station: Station{Lat: 44.17, Lon: -80.9, AltitudeM: 0, ElevationDeg: 90},
		Antenna: Antenna{DiameterM: 1, EfficiencyPct: 50},
		Link:    Link{Freq1GHz: 20, Freq2GHz: 30, PolarizationDeg: 45, UnavailabilityPct: 0.01},
	}
}

// ParseScenario deserializes a RawEvent's value into a Scenario and assigns
// a deterministic ID when the request carries none.
func ParseScenario(raw RawEvent) (Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(raw.Value, &sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if sc.ID == "" {
		sc.ID = generateID(sc)
	}
	return sc, nil
}

// generateID hashes the scenario inputs so replays of the same request map
// to the same report key.
func generateID(sc Scenario) string {
	input := fmt.Sprintf("%.4f|%.4f|%g|%g|%g|%g|%g|%g|%g|%g|%s",
		sc.Station.Lat, sc.Station.Lon, sc.Station.AltitudeM, sc.Station.ElevationDeg,
		sc.Antenna.DiameterM, sc.Antenna.EfficiencyPct,
		sc.Link.Freq1GHz, sc.Link.Freq2GHz, sc.Link.PolarizationDeg, sc.Link.UnavailabilityPct,
		sc.Station.Site,
	)
	hash := sha256.Sum256([]byte(input))
	return "link-" + hex.EncodeToString(hash[:8])
}

// Validate checks the station against its documented ranges.
func (s Station) Validate() error {
	const op = "station"
	if err := CheckCoordinates(op, s.Lat, s.Lon); err != nil {
		return err
	}
	if err := CheckNonNegative(op, "alt", s.AltitudeM); err != nil {
		return err
	}
	return CheckRange(op, "elv", s.ElevationDeg, 0, 90)
}

// Validate checks the antenna against its documented ranges.
func (a Antenna) Validate() error {
	const op = "antenna"
	if err := CheckPositive(op, "dia", a.DiameterM); err != nil {
		return err
	}
	if err := CheckPositive(op, "eff", a.EfficiencyPct); err != nil {
		return err
	}
	return CheckRange(op, "eff", a.EfficiencyPct, 0, 100)
}

// Validate checks the link against its documented ranges.
func (l Link) Validate() error {
	const op = "link"
	if err := CheckPositive(op, "freq1", l.Freq1GHz); err != nil {
		return err
	}
	if err := CheckPositive(op, "freq2", l.Freq2GHz); err != nil {
		return err
	}
	if err := CheckRange(op, "pol", l.PolarizationDeg, -90, 180); err != nil {
		return err
	}
	return CheckUnavailability(op, l.UnavailabilityPct)
}

// Validate checks every part of the scenario.
func (sc Scenario) Validate() error {
	if err := sc.Station.Validate(); err != nil {
		return err
	}
	if err := sc.Antenna.Validate(); err != nil {
		return err
	}
	return sc.Link.Validate()
}
