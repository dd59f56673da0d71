// Package domain models Earth–space link-budget scenarios and their results.
//
// # Inputs
//
// A [Scenario] bundles three immutable inputs, mirroring the fields of a
// classic propagation worksheet:
//
//	Station: lat/lon in degrees (WGS-84), altitude in metres, elevation in degrees.
//	Antenna: diameter in metres, aperture efficiency in percent.
//	Link:    frequency 1 and frequency 2 in GHz, polarization tilt in degrees
//	         (0 = horizontal, 90 = vertical, 45 = circular), unavailability in
//	         percent of an average year.
//
// Requests arrive as flat JSON:
//
//	{"id":"gw-1","station":{"lat":44.17,"lon":-80.9,"alt":0,"elv":90},
//	 "antenna":{"dia":1,"eff":50},
//	 "link":{"freq1":20,"freq2":30,"pol":45,"unavail":0.01}}
//
// A station may instead carry a "site" (and optional "state") with zero
// coordinates; it is then forward geocoded before evaluation.
//
// # Units
//
// The models never coerce units on their own. Callers convert elevation to
// radians and efficiency to a fraction before invoking them; temperatures are
// kelvin throughout; attenuations are dB; noise temperatures are kelvin.
//
// # Unavailability floor
//
// Integrated water vapour content and cloud liquid water statistics are only
// published down to 1 % of time. Below that the lookups are evaluated at 1 %
// and two [Warning] values (iwvc_clamped, lwcc_clamped) are attached to the
// report. See [ClampVapourUnavailability].
//
// # Errors
//
// Every rejected input is a [DomainError]. It names the operation, the
// parameter and the value. DomainErrors are deterministic and never retried.
// Inputs inside the physical domain but outside a model's fitted window are
// not errors: the model is evaluated at the window edge and a
// <model>_<input>_clamped [Warning] is attached instead.
//
// # ID Generation
//
// Requests without an ID get a deterministic SHA-256 prefix of their inputs,
// so replaying a request produces the same report key. See [generateID].
package domain
