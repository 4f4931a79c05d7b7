package ports

import "context"

// Contract for persisting a rendered flight-plan document.
type PlanWriter interface {
	// Write the document under the given file name and return the full
	// path it ended up at.
	WritePlan(ctx context.Context, filename string, xml string) (string, error)
}
