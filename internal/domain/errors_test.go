package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("rain_attenuation", "f", 120, "must be within [1, 100]")
	assert.Equal(t, "rain_attenuation: f=120: must be within [1, 100]", err.Error())

	wrapped := fmt.Errorf("evaluate gw-1: %w", err)
	assert.True(t, IsDomainError(wrapped))
	assert.False(t, IsDomainError(errors.New("boom")))
	assert.False(t, IsDomainError(nil))
}

func TestInputError(t *testing.T) {
	err := NewInputError("station", "site", `"Ottawa" could not be geocoded`)
	assert.Equal(t, `station: site: "Ottawa" could not be geocoded`, err.Error())
	assert.Equal(t, "site", err.Param)
	assert.True(t, IsDomainError(fmt.Errorf("resolve: %w", err)))
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		ok   bool
	}{
		{"finite", CheckFinite("op", "x", 1), true},
		{"NaN", CheckFinite("op", "x", math.NaN()), false},
		{"+Inf", CheckFinite("op", "x", math.Inf(1)), false},
		{"range lower bound", CheckRange("op", "x", 1, 1, 2), true},
		{"range upper bound", CheckRange("op", "x", 2, 1, 2), true},
		{"range below", CheckRange("op", "x", 0.999, 1, 2), false},
		{"range NaN", CheckRange("op", "x", math.NaN(), 1, 2), false},
		{"positive", CheckPositive("op", "x", 0.1), true},
		{"positive zero", CheckPositive("op", "x", 0), false},
		{"non-negative zero", CheckNonNegative("op", "x", 0), true},
		{"non-negative below", CheckNonNegative("op", "x", -0.1), false},
		{"coordinates", CheckCoordinates("op", -90, 180), true},
		{"coordinates lon", CheckCoordinates("op", 0, 180.5), false},
		{"unavailability 100", CheckUnavailability("op", 100), true},
		{"unavailability zero", CheckUnavailability("op", 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ok {
				assert.NoError(t, tt.err)
				return
			}
			assert.True(t, IsDomainError(tt.err))
		})
	}
}

func TestClampVapourUnavailability(t *testing.T) {
	p, warnings := ClampVapourUnavailability(0.01)
	assert.Equal(t, 1.0, p)
	if assert.Len(t, warnings, 2) {
		assert.Equal(t, WarnIWVCClamped, warnings[0].Code)
		assert.Equal(t, WarnLWCCClamped, warnings[1].Code)
		assert.Contains(t, warnings[0].Message, "0.01%")
	}

	p, warnings = ClampVapourUnavailability(1)
	assert.Equal(t, 1.0, p)
	assert.Empty(t, warnings)

	p, warnings = ClampVapourUnavailability(5)
	assert.Equal(t, 5.0, p)
	assert.Empty(t, warnings)
}
