package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Stale returns the names of the files whose content in outputDir is
// missing or differs from the generated content.
func Stale(files []GeneratedFile, outputDir string) ([]string, error) {
	var stale []string

	for _, file := range files {
		current, err := os.ReadFile(filepath.Join(outputDir, file.Filename))

		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, file.Filename)
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", file.Filename, err)
		case !bytes.Equal(current, file.Content):
			stale = append(stale, file.Filename)
		}
	}

	return stale, nil
}
