package services

import (
	"errors"
	"fmt"
	"strings"

	"flightplan-service/internal/domain"
)

var (
	// ErrMissingLongitude reports a latitude token with nothing after it.
	ErrMissingLongitude = errors.New("latitude is missing its longitude")
	// ErrInvalidPairing reports a latitude token whose successor is not a
	// longitude.
	ErrInvalidPairing = errors.New("latitude is not followed by a longitude")
)

// Parse converts raw route text into an ordered waypoint sequence.
//
// Unlike Validate, Parse is authoritative: the first token it cannot turn
// into a waypoint aborts the whole parse, since generation cannot proceed
// from partial coordinates. Empty input parses to an empty sequence.
//
// A latitude token binds to the longitude token immediately after it; a
// combined token carries both halves itself. Every other token, including a
// longitude with no preceding latitude, becomes a named waypoint. The
// validator reports the questionable ones.
func Parse(routeText string) ([]domain.Waypoint, error) {
	tokens := strings.Fields(routeText)
	waypoints := make([]domain.Waypoint, 0, len(tokens))

	for i := 0; i < len(tokens); {
		tok := tokens[i]

		switch ClassifyToken(tok) {
		case TokenCombo:
			lat, err := ToDecimalDegrees(tok[:7])
			if err != nil {
				return nil, err
			}
			lon, err := ToDecimalDegrees(tok[7:])
			if err != nil {
				return nil, err
			}
			waypoints = append(waypoints, domain.NewGPSWaypoint(lat, lon))
			i++

		case TokenLatitude:
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("latitude %q at end of route: %w", tok, ErrMissingLongitude)
			}
			next := tokens[i+1]
			if ClassifyToken(next) != TokenLongitude {
				return nil, fmt.Errorf("latitude %q followed by %q: %w", tok, next, ErrInvalidPairing)
			}
			lat, err := ToDecimalDegrees(tok)
			if err != nil {
				return nil, err
			}
			lon, err := ToDecimalDegrees(next)
			if err != nil {
				return nil, err
			}
			waypoints = append(waypoints, domain.NewGPSWaypoint(lat, lon))
			i += 2

		default:
			waypoints = append(waypoints, domain.NewNamedWaypoint(tok))
			i++
		}
	}

	return waypoints, nil
}
