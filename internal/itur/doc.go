// Package itur implements the ITU-R propagation models used by a satellite
// link budget. Each model is a pure function of physical inputs:
//
//	GaseousAttenuation      ITU-R P.676 Annex 2, surface water vapour density
//	GaseousAttenuationExc   ITU-R P.676 Annex 2, integrated water vapour content
//	RainAttenuation         ITU-R P.618 §2.2.1.1, P.838-3 specific attenuation
//	CloudAttenuation        ITU-R P.840, double-Debye liquid water permittivity
//	Scintillation           ITU-R P.618 §2.4.1
//	XPD                     ITU-R P.618 §4.1
//	EFSR                    ITU-R P.618 §2.2.1.2 long-term frequency scaling
//	MeanRadiatingTemperature, NoiseTemperature, TotalAttenuation
//
// Elevation angles are radians except where a name says Deg. Temperatures are
// kelvin. Physically invalid inputs (a non-positive frequency, an elevation
// outside [0, π/2], a time percentage outside (0, 100]) are rejected with a
// *domain.DomainError; no function returns NaN. Valid inputs outside the
// window a recommendation was fitted over are evaluated at the window edge,
// and the model's Validity reports them as warnings.
package itur
