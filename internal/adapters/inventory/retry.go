package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileRetryWriter implements ports.RetryWriter. It drops a .retry file
// next to the playbook listing the failed hosts, one per line, so a
// follow-up run can use it as a limit pattern.
type FileRetryWriter struct {
	// Dir overrides the target directory. Empty keeps the retry file
	// next to the playbook.
	Dir string
}

// NewRetryWriter creates a retry writer targeting dir. An empty dir
// places retry files next to their playbooks.
func NewRetryWriter(dir string) *FileRetryWriter {
	return &FileRetryWriter{Dir: dir}
}

// Write persists the failed host list for the given playbook and
// returns the path written.
func (w *FileRetryWriter) Write(playbookPath string, hosts []string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(playbookPath), filepath.Ext(playbookPath))
	dir := w.Dir
	if dir == "" {
		dir = filepath.Dir(playbookPath)
	}
	path := filepath.Join(dir, base+".retry")

	content := strings.Join(hosts, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // operator-readable state file
		return "", zerr.With(zerr.Wrap(err, domain.ErrRetryWriteFailed.Error()), "path", path)
	}
	return path, nil
}
