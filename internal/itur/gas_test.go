package itur

import (
	"math"
	"testing"

	"github.com/couchcryptid/propa-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaseousAttenuation_Zenith20GHz(t *testing.T) {
	a, err := GaseousAttenuation(20, math.Pi/2, 288.15, 7.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.257, a, 0.01)
}

func TestGaseousAttenuation_SlantExceedsZenith(t *testing.T) {
	zenith, err := GaseousAttenuation(30, math.Pi/2, 288.15, 7.5)
	require.NoError(t, err)
	slant, err := GaseousAttenuation(30, deg2rad(30), 288.15, 7.5)
	require.NoError(t, err)
	assert.InDelta(t, 2*zenith, slant, 1e-9)
}

func TestGaseousAttenuation_LowElevationFinite(t *testing.T) {
	for _, deg := range []float64{0, 1, 4.9} {
		a, err := GaseousAttenuation(20, deg2rad(deg), 288.15, 7.5)
		require.NoError(t, err)
		assert.False(t, math.IsInf(a, 0), "el=%g", deg)
		assert.Positive(t, a)
	}
}

func TestGaseousAttenuation_DryAirIsOxygenOnly(t *testing.T) {
	dry, err := GaseousAttenuation(20, math.Pi/2, 288.15, 0)
	require.NoError(t, err)
	wet, err := GaseousAttenuation(20, math.Pi/2, 288.15, 10)
	require.NoError(t, err)
	assert.Positive(t, dry)
	assert.Greater(t, wet, dry)
}

func TestGaseousAttenuation_OxygenLineRegion(t *testing.T) {
	for _, f := range []float64{54, 57, 60, 61, 63, 66, 90, 118, 200} {
		a, err := GaseousAttenuation(f, math.Pi/2, 288.15, 7.5)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(a), "f=%g", f)
		assert.Positive(t, a, "f=%g", f)
	}
}

func TestGaseousAttenuationExc_Zenith20GHz(t *testing.T) {
	a, err := GaseousAttenuationExc(20, math.Pi/2, 288.15, 20)
	require.NoError(t, err)
	assert.InDelta(t, 0.323, a, 0.01)
}

func TestGaseousAttenuationExc_MonotonicInContent(t *testing.T) {
	prev := -1.0
	for _, v := range []float64{0, 0.05, 1, 10, 30, 60} {
		a, err := GaseousAttenuationExc(22, deg2rad(40), 288.15, v)
		require.NoError(t, err)
		assert.Greater(t, a, prev, "V=%g", v)
		prev = a
	}
}

func TestGaseousAttenuation_DomainErrors(t *testing.T) {
	_, err := GaseousAttenuation(-20, math.Pi/2, 288.15, 7.5)
	assert.True(t, domain.IsDomainError(err))

	_, err = GaseousAttenuation(0, math.Pi/2, 288.15, 7.5)
	assert.True(t, domain.IsDomainError(err))

	_, err = GaseousAttenuation(20, -0.01, 288.15, 7.5)
	assert.True(t, domain.IsDomainError(err))

	_, err = GaseousAttenuation(20, math.Pi/2, 0, 7.5)
	assert.True(t, domain.IsDomainError(err))

	_, err = GaseousAttenuation(20, math.Pi/2, 288.15, -1)
	assert.True(t, domain.IsDomainError(err))

	_, err = GaseousAttenuationExc(20, math.Pi/2, 288.15, math.Inf(1))
	assert.True(t, domain.IsDomainError(err))
}

func TestGaseousAttenuation_FrequencyAboveWindow(t *testing.T) {
	got, err := GaseousAttenuation(400, math.Pi/2, 288.15, 7.5)
	require.NoError(t, err)
	edge, err := GaseousAttenuation(350, math.Pi/2, 288.15, 7.5)
	require.NoError(t, err)
	assert.Equal(t, edge, got)

	got, err = GaseousAttenuationExc(400, math.Pi/2, 288.15, 20)
	require.NoError(t, err)
	edge, err = GaseousAttenuationExc(350, math.Pi/2, 288.15, 20)
	require.NoError(t, err)
	assert.Equal(t, edge, got)
}
