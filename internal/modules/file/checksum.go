package file

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the XXHash of a file's content, formatted as a
// fixed-width hex string. Used for change detection and result
// reporting.
func Checksum(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // declared target path
	if err != nil {
		return "", pathErr(err, "failed to open file", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", pathErr(err, "failed to hash file content", path)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
