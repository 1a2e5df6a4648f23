package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeMatchesCaseInsensitively(t *testing.T) {
	lat, lon := geocode("port harcourt")
	require.NotNil(t, lat)
	require.NotNil(t, lon)
	assert.InDelta(t, 4.8156, *lat, 0.0001)
	assert.InDelta(t, 7.0498, *lon, 0.0001)
}

func TestGeocodeUnknownLocation(t *testing.T) {
	lat, lon := geocode("Atlantis")
	assert.Nil(t, lat)
	assert.Nil(t, lon)

	lat, lon = geocode("")
	assert.Nil(t, lat)
	assert.Nil(t, lon)

	lat, lon = geocode("Unknown")
	assert.Nil(t, lat)
	assert.Nil(t, lon)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Port Harcourt", titleCase("PORT harcourt"))
	assert.Equal(t, "Lagos", titleCase("lagos"))
	// First rune may be multibyte; casing must not split it
	assert.Equal(t, "Èkó Ìlú", titleCase("èkó ìlú"))
}
