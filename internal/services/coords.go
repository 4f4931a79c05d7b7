package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Strict grammar for a single coordinate token: fixed-width degrees, minutes
// and seconds plus a hemisphere letter. Latitude carries two degree digits,
// longitude three, and the hemisphere letter must match the axis.
var (
	latitudeRe  = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})([NS])$`)
	longitudeRe = regexp.MustCompile(`^(\d{3})(\d{2})(\d{2})([EW])$`)
)

var (
	// ErrInvalidFormat reports a token that matches no recognized coordinate
	// grammar.
	ErrInvalidFormat = errors.New("invalid coordinate format")
	// ErrInvalidRange reports a coordinate field outside its legal bounds.
	ErrInvalidRange = errors.New("coordinate field out of range")
)

// ToDecimalDegrees converts one coordinate token (DDMMSS plus N/S, or DDDMMSS
// plus E/W) into signed decimal degrees rounded to six decimal places. South
// and west hemispheres yield negative values.
func ToDecimalDegrees(token string) (float64, error) {
	m := latitudeRe.FindStringSubmatch(token)
	maxDeg := 90
	if m == nil {
		m = longitudeRe.FindStringSubmatch(token)
		maxDeg = 180
	}
	if m == nil {
		return 0, fmt.Errorf("coordinate %q: %w", token, ErrInvalidFormat)
	}

	deg, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])

	// Sexagesimal fields are checked before the degree bound so a token
	// broken in both ways reports minutes or seconds first.
	if min >= 60 {
		return 0, fmt.Errorf("coordinate %q: minutes %d: %w", token, min, ErrInvalidRange)
	}
	if sec >= 60 {
		return 0, fmt.Errorf("coordinate %q: seconds %d: %w", token, sec, ErrInvalidRange)
	}
	if deg > maxDeg {
		return 0, fmt.Errorf("coordinate %q: degrees %d exceed %d: %w", token, deg, maxDeg, ErrInvalidRange)
	}

	dec := float64(deg) + float64(min)/60 + float64(sec)/3600
	if m[4] == "S" || m[4] == "W" {
		dec = -dec
	}
	return roundDegrees(dec), nil
}

// roundDegrees rounds to six decimal places, half away from zero. Six
// decimals is about 0.11 m of positional precision, well below anything a
// simulator can display.
func roundDegrees(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
