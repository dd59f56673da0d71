// Package climate provides the climatological inputs of a link budget: rain
// intensity, rain height, wet refractivity, water vapour, cloud liquid water
// and surface temperature at a station.
//
// Two sources are available. [GridSource] reads the ITU-R digital maps from a
// data directory described by manifest.yaml:
//
//	maps:
//	  pr6:
//	    file: pr6.txt
//	    lat_origin: 90
//	    lat_step: -1.125
//	    lon_origin: 0
//	    lon_step: 1.125
//
// Each file is a whitespace-separated text matrix, one row per latitude.
// Values between nodes are interpolated bilinearly and longitude wraps at the
// antimeridian for maps that cover the whole circle.
//
// [ZonalSource] needs no files. It is the default when no data directory is
// configured and is meant for demos and tests rather than link planning.
package climate
