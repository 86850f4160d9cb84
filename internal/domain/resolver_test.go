package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticResolver_Resolve(t *testing.T) {
	r := NewStaticResolver(map[string]Coordinates{
		"Taipei City": {Lat: 25.0330, Lon: 121.5654},
	})

	coords, ok := r.Resolve("Taipei City")
	require.True(t, ok)
	assert.Equal(t, 25.0330, coords.Lat)
	assert.Equal(t, 121.5654, coords.Lon)
}

func TestStaticResolver_UnknownLocation(t *testing.T) {
	r := NewStaticResolver(map[string]Coordinates{
		"Taipei City": {Lat: 25.0330, Lon: 121.5654},
	})

	_, ok := r.Resolve("Atlantis")
	assert.False(t, ok)
}

func TestStaticResolver_LocationsSorted(t *testing.T) {
	r := NewStaticResolver(map[string]Coordinates{
		"Yilan County": {Lat: 24.7021, Lon: 121.7378},
		"Chiayi City":  {Lat: 23.4801, Lon: 120.4491},
		"Taipei City":  {Lat: 25.0330, Lon: 121.5654},
	})

	names := r.Locations()
	assert.Equal(t, []string{"Chiayi City", "Taipei City", "Yilan County"}, names)
}

func TestStaticResolver_LocationsReturnsCopy(t *testing.T) {
	r := NewStaticResolver(map[string]Coordinates{
		"Taipei City": {},
		"Chiayi City": {},
	})

	names := r.Locations()
	names[0] = "mutated"

	assert.Equal(t, []string{"Chiayi City", "Taipei City"}, r.Locations())
}

func TestDefaultCoordinateTable_CoversCWACounties(t *testing.T) {
	table := DefaultCoordinateTable()
	r := NewStaticResolver(table)

	assert.True(t, sort.StringsAreSorted(r.Locations()))
	for name, coords := range table {
		assert.NotZero(t, coords.Lat, "lat for %s", name)
		assert.NotZero(t, coords.Lon, "lon for %s", name)
	}

	// Spot-check a few counties the feed always reports.
	for _, name := range []string{"Taipei City", "Kaohsiung City", "Penghu County"} {
		_, ok := r.Resolve(name)
		assert.True(t, ok, "missing %s", name)
	}
}
