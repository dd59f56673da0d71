package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

const rule = " ------------------------------------------- "

type row struct {
	key   string
	value string
}

func num(key string, v float64) row {
	return row{key: key, value: strconv.FormatFloat(v, 'g', -1, 64)}
}

// printReport writes the report as the sectioned plain-text listing of the
// demo command.
func printReport(w io.Writer, r domain.Report) error {
	bw := bufio.NewWriter(w)
	sc := r.Scenario

	for _, warn := range r.Warnings {
		fmt.Fprintf(bw, " - WARNING: %s\n", warn.Message)
	}

	fmt.Fprintln(bw, " << RESULTS >> ")

	station := []row{
		num("lat", sc.Station.Lat),
		num("lon", sc.Station.Lon),
		num("alt", sc.Station.AltitudeM),
		num("elv", sc.Station.ElevationDeg),
	}
	if sc.Station.Site != "" {
		station = append([]row{{key: "site", value: sc.Station.Site}}, station...)
	}
	section(bw, "Station", station)

	section(bw, "Antenna", []row{
		num("dia", sc.Antenna.DiameterM),
		num("eff", sc.Antenna.EfficiencyPct),
	})

	section(bw, "Link", []row{
		num("freq1", sc.Link.Freq1GHz),
		num("freq2", sc.Link.Freq2GHz),
		num("pol", sc.Link.PolarizationDeg),
		num("unavail", sc.Link.UnavailabilityPct),
	})

	c := r.Climate
	section(bw, "Climatic Parameters", []row{
		num("rain_intensity", c.RainIntensity),
		num("Nwet", c.Nwet),
		num("rain_height", c.RainHeight),
		num("total_columnar_content", c.TotalColumnarContent),
		num("surface_water_vapour_density", c.SurfaceWaterVapourDensity),
		num("integrated_water_vapour_content", c.IntegratedWaterVapourContent),
		num("temperature", c.Temperature),
		num("mean_radiating_temperature", c.MeanRadiatingTemperature),
	})

	a := r.Attenuation
	section(bw, "Attenuation - Frequency 1", []row{
		num("atm_gas_atten", a.Gas),
		num("exc_atm_gas_atten", a.GasExceeded),
		num("rain_atten", a.Rain),
		num("cloud_atten", a.Cloud),
		num("scintillation", a.Scintillation),
		num("XPD", a.XPD),
		num("total_atten_wo_XPD_method1", a.TotalMethod1),
		num("total_atten_wo_XPD_method2", a.TotalMethod2),
		num("sky_noise_temp", a.SkyNoiseTemperature),
	})

	section(bw, "Attenuation - Frequency 2", []row{
		num("long_term_rain_atten_freq2_scaling", a.RainFreq2Scaled),
	})

	fmt.Fprintf(bw, "%s\n> climate source: %s\n", rule, r.ClimateSource)
	return bw.Flush()
}

func section(w io.Writer, title string, rows []row) {
	fmt.Fprintf(w, "%s\n> %s\n", rule, title)
	for _, r := range rows {
		fmt.Fprintf(w, " - %s : %s\n", r.key, r.value)
	}
}
