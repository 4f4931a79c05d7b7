package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriterWritePlan(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plans")

	path, err := NewFileWriter(dir).WritePlan(context.Background(), "P34-N68.pln", "<xml/>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "P34-N68.pln") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<xml/>" {
		t.Errorf("contents = %q", data)
	}
}

func TestFileWriterOverwritesExistingPlan(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir)

	if _, err := w.WritePlan(context.Background(), "route.pln", "old"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path, err := w.WritePlan(context.Background(), "route.pln", "new")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("contents = %q, want %q", data, "new")
	}
}
