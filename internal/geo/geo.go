// Package geo holds distance math and coordinate extraction for inventory records.
package geo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"rentalhub-storefront-api/internal/model"

	"github.com/mmcloughlin/geohash"
)

// EarthRadiusMiles is the mean Earth radius used by the haversine formula.
const EarthRadiusMiles = 3958.8

// GeohashPrecision is the cell precision used to bucket coordinates (~5m).
const GeohashPrecision = 9

// DistanceMiles returns the great-circle distance between a and b.
func DistanceMiles(a, b model.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// WithinRadius reports whether (lat, lon) lies inside the service area.
// A point exactly on the boundary is inside.
func WithinRadius(area model.ServiceArea, lat, lon float64) bool {
	return DistanceMiles(area.Center, model.Coordinates{Lat: lat, Lon: lon}) <= area.RadiusMiles
}

// WithinFilter reports whether c lies inside the filter's radius.
func WithinFilter(f model.GeoFilter, c model.Coordinates) bool {
	return DistanceMiles(model.Coordinates{Lat: f.Lat, Lon: f.Lon}, c) <= f.RadiusMiles
}

// Geohash encodes c as a fixed-precision geohash cell.
func Geohash(c model.Coordinates) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, GeohashPrecision)
}

// ExtractCoordinates reads a point from a raw index record. Shapes are tried
// in order: top-level latitude/longitude, point.coordinates as [lon, lat],
// then location.latitude/location.longitude. The first shape that parses to
// finite, in-range numbers wins; nil means no shape did.
func ExtractCoordinates(raw map[string]any) *model.Coordinates {
	if raw == nil {
		return nil
	}

	if c, ok := pair(raw["latitude"], raw["longitude"]); ok {
		return c
	}

	if point, ok := raw["point"].(map[string]any); ok {
		if coords, ok := point["coordinates"].([]any); ok && len(coords) >= 2 {
			// GeoJSON order
			if c, ok := pair(coords[1], coords[0]); ok {
				return c
			}
		}
	}

	if loc, ok := raw["location"].(map[string]any); ok {
		if c, ok := pair(loc["latitude"], loc["longitude"]); ok {
			return c
		}
	}

	return nil
}

func pair(latRaw, lonRaw any) (*model.Coordinates, bool) {
	lat, ok := Number(latRaw)
	if !ok || lat < -90 || lat > 90 {
		return nil, false
	}
	lon, ok := Number(lonRaw)
	if !ok || lon < -180 || lon > 180 {
		return nil, false
	}
	return &model.Coordinates{Lat: lat, Lon: lon}, true
}

// Number converts a decoded JSON value to a finite float64.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
