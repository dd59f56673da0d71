package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// ResolveStation fills in station coordinates from its site name when the
// request carries a site but no position. A site that cannot be placed, with
// geocoding disabled or no match found, fails with a *DomainError. A geocoder
// failure is returned wrapped.
func ResolveStation(ctx context.Context, st Station, geocoder Geocoder, logger *slog.Logger) (Station, error) {
	const op = "station"
	hasCoords := st.Lat != 0 || st.Lon != 0
	if hasCoords || st.Site == "" {
		st.GeoSource = "original"
		return st, nil
	}
	if geocoder == nil {
		return st, NewInputError(op, "site", fmt.Sprintf("%q has no coordinates and geocoding is disabled", st.Site))
	}

	result, err := geocoder.ForwardGeocode(ctx, st.Site, st.State)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"site", st.Site,
			"state", st.State,
			"error", err,
		)
		return st, fmt.Errorf("geocode site %q: %w", st.Site, err)
	}
	if result.Lat == 0 && result.Lon == 0 {
		return st, NewInputError(op, "site", fmt.Sprintf("%q could not be geocoded", st.Site))
	}

	st.Lat = result.Lat
	st.Lon = result.Lon
	st.GeoSource = "forward"
	logger.Debug("station geocoded",
		"site", st.Site,
		"place", result.FormattedAddress,
		"confidence", result.Confidence,
	)
	return st, nil
}
