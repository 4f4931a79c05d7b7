package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"flightplan-service/internal/platform/obs"
)

// Input cap for route files. Real route strings are a few hundred bytes, so
// anything near the cap is a mistake, not a route.
const maxRouteBytes = 1 << 20

var (
	// ErrRouteTooLarge reports an input over the size cap.
	ErrRouteTooLarge = errors.New("route input exceeds size limit")
	// ErrNotUTF8 reports input that is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("route input is not valid UTF-8")
)

// File-backed implementation of the RouteSource port. The path "-" reads
// from standard input.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Return the file contents as route text.
func (s *FileSource) ReadRoute(ctx context.Context) (route string, err error) {
	defer obs.Time(ctx, "source.ReadRoute")(&err)

	var r io.Reader
	if s.Path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(s.Path)
		if err != nil {
			return "", fmt.Errorf("read route: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxRouteBytes+1))
	if err != nil {
		return "", fmt.Errorf("read route: %w", err)
	}
	if len(data) > maxRouteBytes {
		return "", fmt.Errorf("read route %q: %w", s.Path, ErrRouteTooLarge)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read route %q: %w", s.Path, ErrNotUTF8)
	}

	return string(data), nil
}

// In-memory implementation of the RouteSource port, for route text passed
// directly on the command line.
type StringSource struct {
	Text string
}

func NewStringSource(text string) *StringSource {
	return &StringSource{Text: text}
}

func (s *StringSource) ReadRoute(ctx context.Context) (string, error) {
	if !utf8.ValidString(s.Text) {
		return "", fmt.Errorf("read route: %w", ErrNotUTF8)
	}

	return s.Text, nil
}
