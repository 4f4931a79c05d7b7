package domain

import "strings"

// WaypointKind discriminates the two waypoint variants.
type WaypointKind int

const (
	// WaypointNamed is an airport or fix identified by code.
	WaypointNamed WaypointKind = iota
	// WaypointGPS is a waypoint identified solely by coordinates.
	WaypointGPS
)

// Represents a single point in a flight route.
// A Waypoint is either NAMED (an airport/fix identifier, uppercased) or GPS
// (decimal-degree coordinates, negative = South/West). Waypoints are
// constructed once by the route parser, are immutable afterwards, and are
// always passed by value.
type Waypoint struct {
	Kind WaypointKind
	Name string  // set when Kind == WaypointNamed
	Lat  float64 // set when Kind == WaypointGPS, range [-90, 90]
	Lon  float64 // set when Kind == WaypointGPS, range [-180, 180]
}

// NewNamedWaypoint builds a NAMED waypoint, uppercasing the identifier.
func NewNamedWaypoint(name string) Waypoint {
	return Waypoint{Kind: WaypointNamed, Name: strings.ToUpper(name)}
}

// NewGPSWaypoint builds a GPS waypoint from decimal-degree coordinates.
func NewGPSWaypoint(lat, lon float64) Waypoint {
	return Waypoint{Kind: WaypointGPS, Lat: lat, Lon: lon}
}

// IsGPS reports whether the waypoint carries coordinates.
func (w Waypoint) IsGPS() bool { return w.Kind == WaypointGPS }
