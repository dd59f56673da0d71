package domain

import (
	"context"
	"time"
)

// Station is an Earth station position and pointing.
type Station struct {
	Site         string  `json:"site,omitempty" toml:"site"` // optional place name, geocoded when coordinates are absent
	State        string  `json:"state,omitempty" toml:"state"`
	Lat          float64 `json:"lat" toml:"lat"`                // degrees, -90..90
	Lon          float64 `json:"lon" toml:"lon"`                // degrees, -180..180
	AltitudeM    float64 `json:"alt" toml:"alt"`                // metres above mean sea level
	ElevationDeg float64 `json:"elv" toml:"elv"`                // degrees, 0..90
	GeoSource    string  `json:"geo_source,omitempty" toml:"-"` // "forward" or "original"
}

// Antenna describes the receiving aperture.
type Antenna struct {
	DiameterM     float64 `json:"dia" toml:"dia"` // metres
	EfficiencyPct float64 `json:"eff" toml:"eff"` // percent, 0..100
}

// Link holds the carrier and availability target.
type Link struct {
	Freq1GHz          float64 `json:"freq1" toml:"freq1"`
	Freq2GHz          float64 `json:"freq2" toml:"freq2"`
	PolarizationDeg   float64 `json:"pol" toml:"pol"`         // tilt angle relative to horizontal
	UnavailabilityPct float64 `json:"unavail" toml:"unavail"` // percent of time
}

// Scenario is one link-budget evaluation request.
type Scenario struct {
	ID      string  `json:"id,omitempty" toml:"id"`
	Station Station `json:"station" toml:"station"`
	Antenna Antenna `json:"antenna" toml:"antenna"`
	Link    Link    `json:"link" toml:"link"`
}

// ClimaticParameters is the site climate bundle derived from a Station and
// an unavailability. Temperatures are in kelvin.
type ClimaticParameters struct {
	RainIntensity                float64 `json:"rain_intensity"`                  // mm/h exceeded 0.01 % of time
	Nwet                         float64 `json:"nwet"`                            // ppm
	RainHeight                   float64 `json:"rain_height"`                     // km
	TotalColumnarContent         float64 `json:"total_columnar_content"`          // kg/m²
	SurfaceWaterVapourDensity    float64 `json:"surface_water_vapour_density"`    // g/m³
	IntegratedWaterVapourContent float64 `json:"integrated_water_vapour_content"` // kg/m²
	Temperature                  float64 `json:"temperature"`                     // K
	MeanRadiatingTemperature     float64 `json:"mean_radiating_temperature"`      // K
}

// AttenuationResult holds every attenuation term of a scenario, in dB unless noted.
type AttenuationResult struct {
	Gas                 float64 `json:"atm_gas_atten"`
	GasExceeded         float64 `json:"exc_atm_gas_atten"`
	Rain                float64 `json:"rain_atten"`
	Cloud               float64 `json:"cloud_atten"`
	Scintillation       float64 `json:"scintillation"`
	XPD                 float64 `json:"xpd"`
	TotalMethod1        float64 `json:"total_atten_wo_xpd_method1"`
	TotalMethod2        float64 `json:"total_atten_wo_xpd_method2"`
	SkyNoiseTemperature float64 `json:"sky_noise_temp"` // K
	RainFreq2Scaled     float64 `json:"long_term_rain_atten_freq2_scaling"`
}

// Report is the serialized outcome of evaluating a Scenario.
type Report struct {
	ID            string             `json:"id"`
	Scenario      Scenario           `json:"scenario"`
	Climate       ClimaticParameters `json:"climate"`
	Attenuation   AttenuationResult  `json:"attenuation"`
	Warnings      []Warning          `json:"warnings,omitempty"`
	ClimateSource string             `json:"climate_source"`
	ProcessedAt   time.Time          `json:"processed_at"`
}

// RawEvent represents an unprocessed message from the request topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}
