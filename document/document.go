package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker gates the publishers and must never reach generated files.
const Marker = "#publish"

// ErrNotFound is returned by Load when the input path does not exist.
var ErrNotFound = errors.New("input file not found")

// Document is a source file read from disk.
type Document struct {
	Path string
	Text string
}

// Load reads path as text.
func Load(path string) (Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read input file: %w", err)
	}
	return Document{Path: path, Text: string(data)}, nil
}

// HasMarker reports whether the document asks to be published.
func (d Document) HasMarker() bool {
	return HasMarker(d.Text)
}

// Body returns the text with every marker removed and surrounding space trimmed.
func (d Document) Body() string {
	return strings.TrimSpace(StripMarker(d.Text))
}

// HasMarker reports whether text contains Marker anywhere.
func HasMarker(text string) bool {
	return strings.Contains(text, Marker)
}

// StripMarker removes every occurrence of Marker.
func StripMarker(text string) string {
	return strings.ReplaceAll(text, Marker, "")
}

// DerivedPath inserts label before the extension: note.md -> note.medium.md.
func DerivedPath(path, label string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"."+label+ext)
}
