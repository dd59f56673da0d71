package itur

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// EFSR scales a rain attenuation statistic a1 (dB) observed at f1 to an
// estimate at f2, for the same probability of exceedance (P.618 §2.2.1.2).
// Scaling to the same frequency returns a1 unchanged. Frequencies outside
// EFSRValidity are evaluated at the nearest edge.
func EFSR(f1, f2, a1 float64) (float64, error) {
	const op = "efsr"
	if err := domain.CheckPositive(op, "freq1", f1); err != nil {
		return 0, err
	}
	if err := domain.CheckPositive(op, "freq2", f2); err != nil {
		return 0, err
	}
	if err := domain.CheckNonNegative(op, "rain_atten", a1); err != nil {
		return 0, err
	}
	if f1 == f2 {
		return a1, nil
	}
	f1 = EFSRValidity.freq(f1)
	f2 = EFSRValidity.freq(f2)

	phi1 := scalingPhi(f1)
	ratio := scalingPhi(f2) / phi1
	h := 1.12e-3 * math.Sqrt(ratio) * math.Pow(phi1*a1, 0.55)

	return a1 * math.Pow(ratio, 1-h), nil
}

func scalingPhi(f float64) float64 {
	return f * f / (1 + 1e-4*f*f)
}
