package gen

import (
	"os"
	"path/filepath"
)

// debugSuffix is appended to the name of a file that failed formatting.
// The sidecar must not end in .go or it would break the package build.
const debugSuffix = ".unformatted"

// writeDebugUnformatted writes unformatted code next to the intended
// output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, filename+debugSuffix), content, filePerm)
}
