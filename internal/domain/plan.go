package domain

import "strings"

// Represents a generated flight-plan document.
// A PlanDocument carries the rendered XML alongside the resolved boundary
// identifiers. It is ephemeral data: created per conversion request and
// discarded after the document has been handed out.
type PlanDocument struct {
	XML           string
	DepartureID   string
	DestinationID string
}

// Filename derives the canonical file name for the document, "P34-N68.pln"
// style. Identifier characters that do not belong in a file name are
// replaced with underscores; when both identifiers are empty the name
// falls back to "flightplan.pln".
func (d PlanDocument) Filename() string {
	dep := sanitizeID(d.DepartureID)
	arr := sanitizeID(d.DestinationID)
	if dep == "" && arr == "" {
		return "flightplan.pln"
	}
	return dep + "-" + arr + ".pln"
}

func sanitizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
