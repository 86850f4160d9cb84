package domain

import "sort"

// CoordinateResolver maps a forecast location name to map coordinates.
// Implementations must be safe for concurrent use.
type CoordinateResolver interface {
	// Resolve returns the coordinates for a location, or false when the
	// location is unknown. An unknown location is expected, not an error.
	Resolve(location string) (Coordinates, bool)

	// Locations returns every resolvable location name in lexicographic
	// order. Used as the nominal choice set when no stored row resolves.
	Locations() []string
}

// StaticResolver resolves locations from a fixed in-memory table. It is the
// stand-in for real geocoding while the upstream feed carries no coordinates.
type StaticResolver struct {
	table map[string]Coordinates
	names []string
}

// NewStaticResolver builds a resolver over a copy of the given table.
func NewStaticResolver(table map[string]Coordinates) *StaticResolver {
	copied := make(map[string]Coordinates, len(table))
	names := make([]string, 0, len(table))
	for name, coords := range table {
		copied[name] = coords
		names = append(names, name)
	}
	sort.Strings(names)
	return &StaticResolver{table: copied, names: names}
}

func (r *StaticResolver) Resolve(location string) (Coordinates, bool) {
	coords, ok := r.table[location]
	return coords, ok
}

func (r *StaticResolver) Locations() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// DefaultCoordinateTable returns the built-in county → coordinates table for
// the regions the CWA agri-forecast feed reports. Values are approximate
// county-seat coordinates, adequate for dashboard map markers.
func DefaultCoordinateTable() map[string]Coordinates {
	return map[string]Coordinates{
		"Keelung City":      {Lat: 25.1276, Lon: 121.7392},
		"Taipei City":       {Lat: 25.0330, Lon: 121.5654},
		"New Taipei City":   {Lat: 25.0170, Lon: 121.4628},
		"Taoyuan City":      {Lat: 24.9936, Lon: 121.3010},
		"Hsinchu City":      {Lat: 24.8138, Lon: 120.9675},
		"Hsinchu County":    {Lat: 24.8387, Lon: 121.0177},
		"Miaoli County":     {Lat: 24.5602, Lon: 120.8214},
		"Taichung City":     {Lat: 24.1477, Lon: 120.6736},
		"Changhua County":   {Lat: 24.0518, Lon: 120.5161},
		"Nantou County":     {Lat: 23.9609, Lon: 120.9719},
		"Yunlin County":     {Lat: 23.7092, Lon: 120.4313},
		"Chiayi City":       {Lat: 23.4801, Lon: 120.4491},
		"Chiayi County":     {Lat: 23.4518, Lon: 120.2555},
		"Tainan City":       {Lat: 22.9999, Lon: 120.2269},
		"Kaohsiung City":    {Lat: 22.6273, Lon: 120.3014},
		"Pingtung County":   {Lat: 22.5519, Lon: 120.5487},
		"Yilan County":      {Lat: 24.7021, Lon: 121.7378},
		"Hualien County":    {Lat: 23.9872, Lon: 121.6016},
		"Taitung County":    {Lat: 22.7583, Lon: 121.1444},
		"Penghu County":     {Lat: 23.5712, Lon: 119.5793},
		"Kinmen County":     {Lat: 24.4493, Lon: 118.3767},
		"Lienchiang County": {Lat: 26.1608, Lon: 119.9489},
	}
}
