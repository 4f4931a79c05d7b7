package services

import "regexp"

// TokenKind classifies a single route token.
//
// The validator and the parser both consume this classification, so the two
// stages can never drift apart on what a token means. Classification is
// purely structural (digit widths and a trailing hemisphere letter); whether
// the fields inside a coordinate-shaped token are legal is a separate concern.
type TokenKind int

const (
	// TokenName is an airport/fix identifier, or anything that matches no
	// coordinate shape.
	TokenName TokenKind = iota
	// TokenLatitude is six digits followed by one hemisphere letter.
	TokenLatitude
	// TokenLongitude is seven digits followed by one hemisphere letter.
	TokenLongitude
	// TokenCombo is a latitude and a longitude concatenated into one token.
	TokenCombo
	// TokenMalformedCoordinate looks like a coordinate but has the wrong
	// digit widths for every recognized shape.
	TokenMalformedCoordinate
)

var (
	comboShapeRe     = regexp.MustCompile(`^\d{6}[NSEW]\d{7}[NSEW]$`)
	latitudeShapeRe  = regexp.MustCompile(`^\d{6}[NSEW]$`)
	longitudeShapeRe = regexp.MustCompile(`^\d{7}[NSEW]$`)

	// Near-miss shapes: enough digits to rule out a plausible waypoint name,
	// but widths that match no recognized coordinate grammar.
	digitsHemiRe = regexp.MustCompile(`^\d{4,}[NSEW]$`)
	bareDigitsRe = regexp.MustCompile(`^\d{8,}$`)
	comboLikeRe  = regexp.MustCompile(`^\d{4,}[NSEW]\d{4,}[NSEW]$`)
)

// ClassifyToken assigns a route token to exactly one kind. Precedence runs
// combo, latitude, longitude, malformed coordinate, name; the first match
// wins, so a well-formed combo is never reported as a near miss.
func ClassifyToken(token string) TokenKind {
	switch {
	case comboShapeRe.MatchString(token):
		return TokenCombo
	case latitudeShapeRe.MatchString(token):
		return TokenLatitude
	case longitudeShapeRe.MatchString(token):
		return TokenLongitude
	case looksLikeCoordinate(token):
		return TokenMalformedCoordinate
	default:
		return TokenName
	}
}

// looksLikeCoordinate reports tokens that almost certainly mean a mistyped
// coordinate rather than a waypoint name: four or more digits followed by a
// hemisphere letter, eight or more bare digits, or a combo-like shape with
// the wrong digit counts.
func looksLikeCoordinate(token string) bool {
	return digitsHemiRe.MatchString(token) ||
		bareDigitsRe.MatchString(token) ||
		comboLikeRe.MatchString(token)
}
