package geo

import (
	"encoding/json"
	"strings"
	"testing"

	"rentalhub-storefront-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lafayette = model.ServiceArea{
	Center:      model.Coordinates{Lat: 30.2241, Lon: -92.0198},
	RadiusMiles: 100,
	City:        "Lafayette",
	State:       "LA",
}

func TestDistanceMiles(t *testing.T) {
	// Lafayette to Baton Rouge is roughly 50 miles as the crow flies.
	d := DistanceMiles(lafayette.Center, model.Coordinates{Lat: 30.4515, Lon: -91.1871})
	assert.InDelta(t, 52, d, 3)

	assert.Zero(t, DistanceMiles(lafayette.Center, lafayette.Center))
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, WithinRadius(lafayette, 30.4515, -91.1871), "Baton Rouge")
	assert.False(t, WithinRadius(lafayette, 29.7604, -95.3698), "Houston")
}

func TestWithinRadius_BoundaryIsInclusive(t *testing.T) {
	p := model.Coordinates{Lat: 30.4515, Lon: -91.1871}
	area := lafayette
	area.RadiusMiles = DistanceMiles(area.Center, p)

	assert.True(t, WithinRadius(area, p.Lat, p.Lon))
}

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *model.Coordinates
	}{
		{
			name: "explicit fields",
			raw:  `{"latitude": 30.1, "longitude": -92.1}`,
			want: &model.Coordinates{Lat: 30.1, Lon: -92.1},
		},
		{
			name: "numeric strings",
			raw:  `{"latitude": "30.1", "longitude": " -92.1 "}`,
			want: &model.Coordinates{Lat: 30.1, Lon: -92.1},
		},
		{
			name: "point pair is lon lat",
			raw:  `{"point": {"type": "Point", "coordinates": [-92.1, 30.1]}}`,
			want: &model.Coordinates{Lat: 30.1, Lon: -92.1},
		},
		{
			name: "nested location",
			raw:  `{"location": {"latitude": 30.1, "longitude": -92.1, "city": "Lafayette"}}`,
			want: &model.Coordinates{Lat: 30.1, Lon: -92.1},
		},
		{
			name: "explicit fields win over point",
			raw:  `{"latitude": 1, "longitude": 2, "point": {"coordinates": [3, 4]}}`,
			want: &model.Coordinates{Lat: 1, Lon: 2},
		},
		{
			name: "broken explicit falls through to point",
			raw:  `{"latitude": "n/a", "longitude": 2, "point": {"coordinates": [3, 4]}}`,
			want: &model.Coordinates{Lat: 4, Lon: 3},
		},
		{
			name: "out of range latitude rejected",
			raw:  `{"latitude": 120, "longitude": 2}`,
			want: nil,
		},
		{
			name: "short pair rejected",
			raw:  `{"point": {"coordinates": [3]}}`,
			want: nil,
		},
		{
			name: "absent",
			raw:  `{"city": "Lafayette"}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := json.NewDecoder(strings.NewReader(tt.raw))
			dec.UseNumber()
			var raw map[string]any
			require.NoError(t, dec.Decode(&raw))

			got := ExtractCoordinates(raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lon, got.Lon, 1e-9)
		})
	}
}

func TestExtractCoordinates_Nil(t *testing.T) {
	assert.Nil(t, ExtractCoordinates(nil))
}

func TestGeohash(t *testing.T) {
	a := Geohash(lafayette.Center)
	assert.Len(t, a, GeohashPrecision)
	assert.Equal(t, a, Geohash(lafayette.Center))
	assert.NotEqual(t, a, Geohash(model.Coordinates{Lat: 29.7604, Lon: -95.3698}))
}
