package services

import (
	"strconv"
	"strings"

	"flightplan-service/internal/domain"
)

// unknownID stands in for the departure or arrival identifier when the route
// carries no named waypoint at that end.
const unknownID = "UNKNOWN"

// Generate renders a waypoint sequence as a simulator-ready flight plan.
//
// It is total: any sequence, including an empty one, yields a well-formed
// document, with UNKNOWN identifiers and zero positions standing in for data
// the route does not carry. Identical input always yields an identical
// document, byte for byte.
func Generate(waypoints []domain.Waypoint) domain.PlanDocument {
	departureID := unknownID
	for _, w := range waypoints {
		if w.Kind == domain.WaypointNamed {
			departureID = w.Name
			break
		}
	}
	destinationID := unknownID
	for i := len(waypoints) - 1; i >= 0; i-- {
		if waypoints[i].Kind == domain.WaypointNamed {
			destinationID = waypoints[i].Name
			break
		}
	}

	// Document-level positions come straight from the ends of the sequence.
	// They are resolved independently of the per-airport positions below and
	// the two can disagree for the same airport; consumers rely on the
	// document keeping both results as is.
	depLat, depLon := firstGPSPosition(waypoints)
	arrLat, arrLon := lastGPSPosition(waypoints)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(`<?xml version="1.0" encoding="UTF-8"?>`)
	line(`<SimBase.Document Type="AceXML" version="2,0">`)
	line(`  <Descr>FlightPlan</Descr>`)
	line(`  <FlightPlan.FlightPlan>`)
	line(`    <AppVersion>`)
	line(`      <AppVersionMajor>1</AppVersionMajor>`)
	line(`      <AppVersionMinor>0</AppVersionMinor>`)
	line(`    </AppVersion>`)
	line(`    <Title>` + EscapeXML(departureID) + ` to ` + EscapeXML(destinationID) + `</Title>`)
	line(`    <FPType>VFR</FPType>`)
	line(`    <RouteType>Direct</RouteType>`)
	line(`    <CruisingAlt>3500</CruisingAlt>`)
	line(`    <DepartureID>` + EscapeXML(departureID) + `</DepartureID>`)
	line(`    <DepartureLLA>` + formatLLA(depLat, depLon) + `</DepartureLLA>`)
	line(`    <DestinationID>` + EscapeXML(destinationID) + `</DestinationID>`)
	line(`    <DestinationLLA>` + formatLLA(arrLat, arrLon) + `</DestinationLLA>`)
	line(`    <ATCWaypointList>`)

	gpsCount := 0
	for i, w := range waypoints {
		switch w.Kind {
		case domain.WaypointNamed:
			lat, lon := airportPosition(waypoints, i)
			ident := EscapeXML(w.Name)
			line(`      <ATCWaypoint id="` + ident + `">`)
			line(`        <ATCWaypointType>Airport</ATCWaypointType>`)
			line(`        <WorldPosition>` + formatLLA(lat, lon) + `</WorldPosition>`)
			line(`        <ICAO>`)
			line(`          <ICAOIdent>` + ident + `</ICAOIdent>`)
			line(`        </ICAO>`)
			line(`      </ATCWaypoint>`)
		case domain.WaypointGPS:
			gpsCount++
			line(`      <ATCWaypoint id="WP` + strconv.Itoa(gpsCount) + `">`)
			line(`        <ATCWaypointType>User</ATCWaypointType>`)
			line(`        <WorldPosition>` + formatLLA(w.Lat, w.Lon) + `</WorldPosition>`)
			line(`      </ATCWaypoint>`)
		}
	}

	line(`    </ATCWaypointList>`)
	line(`  </FlightPlan.FlightPlan>`)
	b.WriteString(`</SimBase.Document>`)

	return domain.PlanDocument{
		XML:           b.String(),
		DepartureID:   departureID,
		DestinationID: destinationID,
	}
}

// airportPosition resolves the world position rendered for the named waypoint
// at index i. The rule is local first: the immediate successor's coordinates
// if it is a GPS waypoint, else the immediate predecessor's. Only the first
// and last waypoints of the whole sequence fall back to a route-wide scan; an
// isolated airport in the middle renders at the origin.
func airportPosition(waypoints []domain.Waypoint, i int) (lat, lon float64) {
	if i+1 < len(waypoints) && waypoints[i+1].IsGPS() {
		return waypoints[i+1].Lat, waypoints[i+1].Lon
	}
	if i > 0 && waypoints[i-1].IsGPS() {
		return waypoints[i-1].Lat, waypoints[i-1].Lon
	}
	if i == 0 {
		return firstGPSPosition(waypoints)
	}
	if i == len(waypoints)-1 {
		return lastGPSPosition(waypoints)
	}
	return 0, 0
}

// firstGPSPosition returns the coordinates of the first GPS waypoint in the
// sequence, or the origin when there is none.
func firstGPSPosition(waypoints []domain.Waypoint) (lat, lon float64) {
	for _, w := range waypoints {
		if w.IsGPS() {
			return w.Lat, w.Lon
		}
	}
	return 0, 0
}

// lastGPSPosition returns the coordinates of the last GPS waypoint in the
// sequence, or the origin when there is none.
func lastGPSPosition(waypoints []domain.Waypoint) (lat, lon float64) {
	for i := len(waypoints) - 1; i >= 0; i-- {
		if waypoints[i].IsGPS() {
			return waypoints[i].Lat, waypoints[i].Lon
		}
	}
	return 0, 0
}

// formatLLA renders a latitude, longitude, altitude triple the way the
// simulator expects it: fixed six-decimal precision, comma separated, with a
// zero altitude.
func formatLLA(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lon, 'f', 6, 64) + ",0"
}

// EscapeXML escapes the five XML special characters in free text. Ampersand
// is replaced first so the escapes it introduces are not escaped again.
func EscapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
