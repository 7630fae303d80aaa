// Package modelfile reads the model under correction from the file
// the user edits between turns. The file is the source of truth; the
// workflow re-reads it after every confirmed edit.
package modelfile

import (
	"context"
	"fmt"
	"os"
)

type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Read(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading model file %s: %w", s.path, err)
	}
	return string(raw), nil
}
