package loader

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource reads a fixture from disk. The path "-" reads Stdin.
type FileSource struct {
	Path  string
	Stdin io.Reader
}

// NewFileSource creates a FileSource reading from os.Stdin for "-".
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Stdin: os.Stdin}
}

func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Path == "-" {
		data, err := io.ReadAll(s.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s *FileSource) Describe() string {
	if s.Path == "-" {
		return "stdin"
	}
	return s.Path
}
