package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// DefaultFilePath is where File keeps the artifact unless told otherwise.
const DefaultFilePath = "./intent_embeddings.cache"

// File stores the index in a single file on local disk.
type File struct {
	path string
}

// NewFile creates a file-backed cache at path.
func NewFile(path string) *File {
	if path == "" {
		path = DefaultFilePath
	}
	return &File{path: path}
}

// Path returns the artifact location.
func (f *File) Path() string {
	return f.path
}

// Load reads the artifact. A missing file is ErrMiss.
func (f *File) Load(_ context.Context, corpusHash string) (*semantic.Index, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache %s: %w", f.path, err)
	}
	return Decode(data, corpusHash)
}

// Save replaces the artifact. The new content is written to a sibling
// temporary file first and renamed over the old one.
func (f *File) Save(_ context.Context, ix *semantic.Index, corpusHash string) error {
	data, err := Encode(ix, corpusHash)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%s", f.path, uuid.New().String()[:8])
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write embedding cache %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace embedding cache %s: %w", f.path, err)
	}
	return nil
}
