package climate

import (
	"math"

	"github.com/couchcryptid/propa-engine/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// Grid is a regular latitude/longitude map. Row i lies at
// LatOrigin + i·LatStep, column j at LonOrigin + j·LonStep.
type Grid struct {
	LatOrigin float64
	LatStep   float64
	LonOrigin float64
	LonStep   float64

	values *mat.Dense
}

// NewGrid wraps values in a Grid. Steps must be non-zero.
func NewGrid(values *mat.Dense, latOrigin, latStep, lonOrigin, lonStep float64) *Grid {
	return &Grid{
		LatOrigin: latOrigin,
		LatStep:   latStep,
		LonOrigin: lonOrigin,
		LonStep:   lonStep,
		values:    values,
	}
}

// Dims returns the number of rows and columns.
func (g *Grid) Dims() (rows, cols int) {
	return g.values.Dims()
}

// global reports whether the columns span the full circle, so that
// interpolation may wrap across the seam.
func (g *Grid) global() bool {
	_, cols := g.Dims()
	return float64(cols)*math.Abs(g.LonStep) >= 360-1e-9
}

// Interpolate returns the bilinear interpolation of the four grid nodes
// surrounding (lat, lon).
func (g *Grid) Interpolate(op string, lat, lon float64) (float64, error) {
	rows, cols := g.Dims()

	r := (lat - g.LatOrigin) / g.LatStep
	if r < -1e-9 || r > float64(rows-1)+1e-9 {
		return 0, domain.NewDomainError(op, "lat", lat, "outside climate grid")
	}
	r = math.Min(math.Max(r, 0), float64(rows-1))

	var c float64
	if g.global() {
		period := 360 / math.Abs(g.LonStep)
		c = math.Mod((lon-g.LonOrigin)/g.LonStep, period)
		if c < 0 {
			c += period
		}
	} else {
		c = (lon - g.LonOrigin) / g.LonStep
		if c < -1e-9 || c > float64(cols-1)+1e-9 {
			return 0, domain.NewDomainError(op, "lon", lon, "outside climate grid")
		}
		c = math.Min(math.Max(c, 0), float64(cols-1))
	}

	r0 := int(math.Floor(r))
	c0 := int(math.Floor(c))
	r1 := min(r0+1, rows-1)
	c1 := c0 + 1
	if c1 >= cols {
		if g.global() {
			c1 %= int(math.Round(360 / math.Abs(g.LonStep)))
			c1 = min(c1, cols-1)
		} else {
			c1 = cols - 1
		}
	}
	c0 = min(c0, cols-1)

	dr := r - float64(r0)
	dc := c - float64(c0)

	v := (1-dr)*(1-dc)*g.values.At(r0, c0) +
		(1-dr)*dc*g.values.At(r0, c1) +
		dr*(1-dc)*g.values.At(r1, c0) +
		dr*dc*g.values.At(r1, c1)
	return v, nil
}
