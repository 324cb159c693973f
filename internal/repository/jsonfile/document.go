// Package jsonfile stores each logical store as one JSON document on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Document is a whole-document JSON store. A missing file reads as the zero value.
// All mutations of one document are serialized.
type Document[T any] struct {
	path string
	mu   sync.Mutex
}

// NewDocument creates a document backed by path
func NewDocument[T any](path string) *Document[T] {
	return &Document[T]{path: path}
}

// Load reads the current document
func (d *Document[T]) Load() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

// Update runs fn over the current document and writes the result back.
// Nothing is written when fn returns an error.
func (d *Document[T]) Update(fn func(doc *T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return d.write(doc)
}

func (d *Document[T]) read() (T, error) {
	var doc T

	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s: %w", d.path, err)
	}
	return doc, nil
}

// write replaces the file atomically through a temp file in the same directory
func (d *Document[T]) write(doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	return os.Rename(tmp.Name(), d.path)
}
