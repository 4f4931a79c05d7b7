package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"flightplan-service/internal/platform/obs"
)

// Directory-backed implementation of the PlanWriter port.
type FileWriter struct {
	Dir string
}

// NewFileWriter writes plans into dir, creating it on first use. An empty
// dir means the current working directory.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{Dir: dir}
}

// Write the document into the target directory and return its full path.
func (w *FileWriter) WritePlan(ctx context.Context, filename string, xml string) (path string, err error) {
	defer obs.Time(ctx, "export.WritePlan")(&err)

	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("write plan: create output directory: %w", err)
	}

	path = filepath.Join(dir, filename)
	if err = os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}

	return path, nil
}
