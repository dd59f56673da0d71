package climate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the file in a data directory that describes its maps.
const ManifestFile = "manifest.yaml"

// Map names a GridSource needs.
const (
	MapPr6    = "pr6"      // P.837-5 probability of rain in 6 h, %
	MapMt     = "mt"       // P.837-5 annual mean rainfall, mm
	MapBeta   = "beta"     // P.837-5 convective fraction
	MapH0     = "h0"       // P.839 0 °C isotherm height, km
	MapNwet   = "nwet"     // P.453 median Nwet, ppm
	MapRho    = "rho"      // P.836 surface water vapour density, g/m³
	MapVShape = "v_k"      // P.836 Weibull shape
	MapVScale = "v_lambda" // P.836 Weibull scale, kg/m²
	MapLMean  = "l_m"      // P.840 lognormal mean
	MapLSigma = "l_sigma"  // P.840 lognormal standard deviation
	MapLProb  = "l_pclw"   // P.840 probability of liquid water, %
	MapTemp   = "t_annual" // P.1510 annual mean surface temperature, K
)

var requiredMaps = []string{
	MapPr6, MapMt, MapBeta, MapH0, MapNwet, MapRho,
	MapVShape, MapVScale, MapLMean, MapLSigma, MapLProb, MapTemp,
}

// manifest is the YAML layout of ManifestFile.
type manifest struct {
	Maps map[string]mapSpec `yaml:"maps"`
}

type mapSpec struct {
	File      string  `yaml:"file"`
	LatOrigin float64 `yaml:"lat_origin"`
	LatStep   float64 `yaml:"lat_step"`
	LonOrigin float64 `yaml:"lon_origin"`
	LonStep   float64 `yaml:"lon_step"`
}

// Dataset is an immutable set of named grids.
type Dataset struct {
	grids map[string]*Grid
}

// Grid returns the named map.
func (d *Dataset) Grid(name string) (*Grid, bool) {
	g, ok := d.grids[name]
	return g, ok
}

// LoadDataset reads the manifest in dir and every map it lists.
func LoadDataset(dir string) (*Dataset, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read climate manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse climate manifest: %w", err)
	}

	ds := &Dataset{grids: make(map[string]*Grid, len(m.Maps))}
	for _, name := range requiredMaps {
		spec, ok := m.Maps[name]
		if !ok {
			return nil, fmt.Errorf("climate manifest: missing map %q", name)
		}
		g, err := loadGrid(filepath.Join(dir, spec.File), spec)
		if err != nil {
			return nil, fmt.Errorf("load map %q: %w", name, err)
		}
		ds.grids[name] = g
	}
	return ds, nil
}

func loadGrid(path string, spec mapSpec) (*Grid, error) {
	if spec.LatStep == 0 || spec.LonStep == 0 {
		return nil, errors.New("lat_step and lon_step must be non-zero")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		data []float64
		cols int
		rows int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", rows+1, len(fields), cols)
		}
		for _, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", rows+1, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("grid is %dx%d, need at least 2x2", rows, cols)
	}

	return NewGrid(mat.NewDense(rows, cols, data), spec.LatOrigin, spec.LatStep, spec.LonOrigin, spec.LonStep), nil
}
