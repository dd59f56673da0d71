package itur

import (
	"math"
	"testing"

	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidity_InsideWindow(t *testing.T) {
	for _, v := range []Validity{GasValidity, RainValidity, CloudValidity, ScintillationValidity, XPDValidity, EFSRValidity} {
		assert.Empty(t, v.Warnings(20, math.Pi/2, 0.01), v.Model)
	}
}

func TestValidity_Warnings(t *testing.T) {
	tests := []struct {
		name  string
		v     Validity
		f     float64
		el    float64
		p     float64
		codes []string
	}{
		{"scintillation low elevation", ScintillationValidity, 20, deg2rad(3), 0.01, []string{"scintillation_elevation_clamped"}},
		{"scintillation small p", ScintillationValidity, 20, math.Pi / 2, 0.005, []string{"scintillation_p_clamped"}},
		{"rain large p", RainValidity, 20, math.Pi / 2, 10, []string{"rain_p_clamped"}},
		{"xpd low frequency", XPDValidity, 4, math.Pi / 2, 0.01, []string{"xpd_freq_clamped"}},
		{"gas high frequency", GasValidity, 400, 0, 50, []string{"gas_freq_clamped"}},
		{"cloud at horizon", CloudValidity, 20, 0, 0.01, []string{"cloud_elevation_clamped"}},
		{"everything outside", ScintillationValidity, 150, 0, 80, []string{
			"scintillation_freq_clamped", "scintillation_elevation_clamped", "scintillation_p_clamped",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var codes []string
			for _, w := range tt.v.Warnings(tt.f, tt.el, tt.p) {
				codes = append(codes, w.Code)
				assert.NotEmpty(t, w.Message)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestValidity_FreqWarning(t *testing.T) {
	w, ok := EFSRValidity.FreqWarning("freq2", 80)
	assert.True(t, ok)
	assert.Equal(t, domain.Warning{
		Code:    "efsr_freq2_clamped",
		Message: "efsr: freq2 80 GHz outside [7, 55], evaluated at 55 GHz",
	}, w)

	_, ok = EFSRValidity.FreqWarning("freq2", 30)
	assert.False(t, ok)
}

func TestValidity_ElevationMessageInDegrees(t *testing.T) {
	ws := ScintillationValidity.Warnings(20, deg2rad(3), 0.01)
	if assert.Len(t, ws, 1) {
		assert.Contains(t, ws[0].Message, "evaluated at 5 deg")
	}
}
