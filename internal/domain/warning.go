package domain

import "fmt"

// Warning codes surfaced alongside a report. Models evaluated at the edge
// of their fitted window add codes of the form <model>_<input>_clamped.
const (
	WarnIWVCClamped     = "iwvc_clamped"
	WarnLWCCClamped     = "lwcc_clamped"
	WarnLWCCUnavailable = "lwcc_unavailable"
)

// MinVapourUnavailability is the lowest time percentage at which the
// water-vapour and cloud liquid statistics are evaluated.
const MinVapourUnavailability = 1.0

// Warning is a non-fatal advisory produced while evaluating a scenario.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClampVapourUnavailability returns the time percentage at which IWVC and
// LWCC are evaluated, together with the warnings the clamp produces.
// p below 1 % is raised to 1 %.
func ClampVapourUnavailability(p float64) (float64, []Warning) {
	if p >= MinVapourUnavailability {
		return p, nil
	}
	return MinVapourUnavailability, []Warning{
		{Code: WarnIWVCClamped, Message: fmt.Sprintf("unavailability %g%% less than 1%%, calculating iwvc at 1%%", p)},
		{Code: WarnLWCCClamped, Message: fmt.Sprintf("unavailability %g%% less than 1%%, calculating lwcc at 1%%", p)},
	}
}
