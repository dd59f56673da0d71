package itur

import (
	"fmt"
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
)

// Validity is the input window a recommendation was fitted over. Inputs that
// are physically valid but fall outside the window are evaluated at its
// nearest edge. A zero bound is open.
type Validity struct {
	Model        string
	MinFreq      float64 // GHz
	MaxFreq      float64 // GHz
	MinElevation float64 // rad
	MinP         float64 // %
	MaxP         float64 // %
}

var (
	GasValidity           = Validity{Model: "gas", MinFreq: 1, MaxFreq: 350}
	RainValidity          = Validity{Model: "rain", MinFreq: 1, MaxFreq: 100, MinP: 0.001, MaxP: 5}
	CloudValidity         = Validity{Model: "cloud", MinFreq: 1, MaxFreq: 200, MinElevation: minSlantElevation}
	ScintillationValidity = Validity{Model: "scintillation", MinFreq: 1, MaxFreq: 100, MinElevation: minSlantElevation, MinP: 0.01, MaxP: 50}
	XPDValidity           = Validity{Model: "xpd", MinFreq: 6, MaxFreq: 55, MinP: 0.001, MaxP: 5}
	EFSRValidity          = Validity{Model: "efsr", MinFreq: 7, MaxFreq: 55}
)

func clampOpen(v, lo, hi float64) float64 {
	if lo > 0 {
		v = math.Max(v, lo)
	}
	if hi > 0 {
		v = math.Min(v, hi)
	}
	return v
}

func (v Validity) freq(f float64) float64      { return clampOpen(f, v.MinFreq, v.MaxFreq) }
func (v Validity) elevation(el float64) float64 { return clampOpen(el, v.MinElevation, 0) }
func (v Validity) percentage(p float64) float64 { return clampOpen(p, v.MinP, v.MaxP) }

// Warnings lists the inputs the model evaluates at a window edge instead of
// their own value. f is in GHz, el in radians and p in percent.
func (v Validity) Warnings(f, el, p float64) []domain.Warning {
	var ws []domain.Warning
	if w, ok := v.FreqWarning("freq", f); ok {
		ws = append(ws, w)
	}
	if at := v.elevation(el); at != el {
		ws = append(ws, v.warning("elevation", fmt.Sprintf("elevation %.4g deg below window, evaluated at %.4g deg",
			rad2deg(el), rad2deg(at))))
	}
	if at := v.percentage(p); at != p {
		ws = append(ws, v.warning("p", fmt.Sprintf("unavailability %g%% outside [%g, %g], evaluated at %g%%",
			p, v.MinP, v.MaxP, at)))
	}
	return ws
}

// FreqWarning reports whether the frequency named param falls outside v.
func (v Validity) FreqWarning(param string, f float64) (domain.Warning, bool) {
	at := v.freq(f)
	if at == f {
		return domain.Warning{}, false
	}
	return v.warning(param, fmt.Sprintf("%s %g GHz outside [%g, %g], evaluated at %g GHz",
		param, f, v.MinFreq, v.MaxFreq, at)), true
}

func (v Validity) warning(param, msg string) domain.Warning {
	return domain.Warning{
		Code:    v.Model + "_" + param + "_clamped",
		Message: v.Model + ": " + msg,
	}
}
