package services

import (
	"fmt"
	"strconv"
	"strings"

	"flightplan-service/internal/domain"
)

// Diagnostic message catalog. Callers and end-to-end checks match on these
// substrings, so the wording is part of the validator's contract.
const (
	msgEmptyInput   = "Route input cannot be empty"
	msgTooFewTokens = "Route must contain at least 2 waypoints"
	msgBadShape     = "Invalid coordinate format"
	msgNameShort    = "Waypoint name too short (minimum 2 characters)"
	msgNameLong     = "Waypoint name too long (maximum 12 characters)"
	msgNameChars    = "Waypoint name contains invalid characters (only letters and digits allowed)"
)

// Waypoint name bounds, in bytes. Route tokens are ASCII by the time they
// matter, so byte length and character length agree.
const (
	minNameLen = 2
	maxNameLen = 12
)

type coordinateAxis int

const (
	axisLatitude coordinateAxis = iota
	axisLongitude
)

// Validate scans route text token by token and reports every problem it can
// find. It never fails and never stops early: a token broken in three ways
// yields three diagnostics. The result is advisory and strictly per token;
// Parse remains the authority on whether a route is actually convertible,
// and can still reject a route that validated clean (a latitude with nothing
// to pair with, for instance).
func Validate(routeText string) []domain.Diagnostic {
	if strings.TrimSpace(routeText) == "" {
		return []domain.Diagnostic{{Message: msgEmptyInput}}
	}

	tokens := strings.Fields(routeText)
	var diags []domain.Diagnostic

	if len(tokens) < 2 {
		diags = append(diags, domain.Diagnostic{Message: msgTooFewTokens})
	}

	for i, tok := range tokens {
		pos := i + 1
		switch ClassifyToken(tok) {
		case TokenCombo:
			// Each half of a combined token is validated as its own
			// coordinate, so both can contribute diagnostics.
			diags = appendCoordinateDiagnostics(diags, pos, tok[:7], axisLatitude)
			diags = appendCoordinateDiagnostics(diags, pos, tok[7:], axisLongitude)
		case TokenLatitude:
			diags = appendCoordinateDiagnostics(diags, pos, tok, axisLatitude)
		case TokenLongitude:
			diags = appendCoordinateDiagnostics(diags, pos, tok, axisLongitude)
		case TokenMalformedCoordinate:
			diags = append(diags, domain.Diagnostic{Message: msgBadShape, Position: pos, Input: tok})
		default:
			diags = appendNameDiagnostics(diags, pos, tok)
		}
	}

	return diags
}

// appendCoordinateDiagnostics checks every field of one coordinate-shaped
// token. The shape is guaranteed by the classifier: digits followed by a
// single hemisphere letter, with the axis decided by the digit width.
func appendCoordinateDiagnostics(diags []domain.Diagnostic, pos int, tok string, axis coordinateAxis) []domain.Diagnostic {
	digits, hemi := tok[:len(tok)-1], tok[len(tok)-1:]

	degWidth := 2
	if axis == axisLongitude {
		degWidth = 3
	}
	deg, _ := strconv.Atoi(digits[:degWidth])
	min, _ := strconv.Atoi(digits[degWidth : degWidth+2])
	sec, _ := strconv.Atoi(digits[degWidth+2:])

	add := func(msg string) {
		diags = append(diags, domain.Diagnostic{Message: msg, Position: pos, Input: tok})
	}

	if min >= 60 {
		add(fmt.Sprintf("Invalid minutes %d (must be below 60)", min))
	}
	if sec >= 60 {
		add(fmt.Sprintf("Invalid seconds %d (must be below 60)", sec))
	}
	switch axis {
	case axisLatitude:
		if deg > 90 {
			add(fmt.Sprintf("Invalid latitude degrees %d (maximum 90)", deg))
		}
		if hemi != "N" && hemi != "S" {
			add(fmt.Sprintf("Invalid hemisphere %s for latitude (expected N or S)", hemi))
		}
	case axisLongitude:
		if deg > 180 {
			add(fmt.Sprintf("Invalid longitude degrees %d (maximum 180)", deg))
		}
		if hemi != "E" && hemi != "W" {
			add(fmt.Sprintf("Invalid hemisphere %s for longitude (expected E or W)", hemi))
		}
	}
	return diags
}

// appendNameDiagnostics checks a waypoint name token. Length and character
// checks are independent, so one name can fail several at once.
func appendNameDiagnostics(diags []domain.Diagnostic, pos int, tok string) []domain.Diagnostic {
	add := func(msg string) {
		diags = append(diags, domain.Diagnostic{Message: msg, Position: pos, Input: tok})
	}

	if len(tok) < minNameLen {
		add(msgNameShort)
	}
	if len(tok) > maxNameLen {
		add(msgNameLong)
	}
	for _, r := range tok {
		if !isAlphanumeric(r) {
			add(msgNameChars)
			break
		}
	}
	return diags
}

func isAlphanumeric(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// FormatSummary renders diagnostics as a user-facing report: a count header,
// the numbered findings, and a reminder of the token formats the converter
// accepts. An empty diagnostic list renders as an empty string.
func FormatSummary(diags []domain.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d problem(s) in the route:\n", len(diags))
	for i, d := range diags {
		if d.Position > 0 && d.Input != "" {
			fmt.Fprintf(&b, "  %d. Token %d %q: %s\n", i+1, d.Position, d.Input, d.Message)
		} else {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, d.Message)
		}
	}
	b.WriteString("\nExpected formats:\n")
	b.WriteString("  Airport or fix   KJFK\n")
	b.WriteString("  Latitude         403210N\n")
	b.WriteString("  Longitude        0772310W\n")
	b.WriteString("  Combined         403210N0772310W\n")
	b.WriteString("  Full route       P34 403210N 0772310W N68\n")
	return b.String()
}
