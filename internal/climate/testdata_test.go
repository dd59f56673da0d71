package climate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureValues are the uniform map values of writeDataset.
var fixtureValues = map[string]float64{
	MapPr6:    5,
	MapMt:     500,
	MapBeta:   0.5,
	MapH0:     3.0,
	MapNwet:   42.5,
	MapRho:    7.5,
	MapVShape: 2.5,
	MapVScale: 30,
	MapLMean:  -1,
	MapLSigma: 0.8,
	MapLProb:  40,
	MapTemp:   288.15,
}

// writeDataset writes a global 45°-spaced dataset to a temp dir. Fields in
// override replace the uniform value of a map with a function of position.
func writeDataset(t *testing.T, override map[string]func(lat, lon float64) float64) string {
	t.Helper()
	dir := t.TempDir()

	var manifest strings.Builder
	manifest.WriteString("maps:\n")
	for name, uniform := range fixtureValues {
		fn := override[name]
		if fn == nil {
			fn = func(_, _ float64) float64 { return uniform }
		}

		var b strings.Builder
		for lat := 90.0; lat >= -90; lat -= 45 {
			row := make([]string, 0, 9)
			for lon := 0.0; lon <= 360; lon += 45 {
				row = append(row, fmt.Sprintf("%g", fn(lat, lon)))
			}
			b.WriteString(strings.Join(row, " "))
			b.WriteString("\n")
		}
		file := name + ".txt"
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(b.String()), 0o600))

		fmt.Fprintf(&manifest, "  %s:\n    file: %s\n    lat_origin: 90\n    lat_step: -45\n    lon_origin: 0\n    lon_step: 45\n", name, file)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest.String()), 0o600))
	return dir
}
