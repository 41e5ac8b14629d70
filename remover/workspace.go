package remover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workspace manages the temp directory where processed files and video-job
// intermediates land when the caller does not pick a destination itself.
type Workspace struct {
	Dir string
}

func NewWorkspace() *Workspace {
	return &Workspace{Dir: filepath.Join(os.TempDir(), "unwatermark")}
}

func (w *Workspace) ensure() error {
	return os.MkdirAll(w.Dir, 0o755)
}

// OutputPath returns a unique path in the workspace, named
// <prefix>_<id>_<unixts>.<ext>.
func (w *Workspace) OutputPath(prefix, ext string) (string, error) {
	if err := w.ensure(); err != nil {
		return "", fmt.Errorf("create workspace directory: %w", err)
	}

	id, _, _ := strings.Cut(uuid.NewString(), "-")
	name := fmt.Sprintf("%s_%s_%d.%s", prefix, id, time.Now().Unix(), strings.TrimPrefix(ext, "."))
	return filepath.Join(w.Dir, name), nil
}

// Cleanup removes every file in the workspace directory. A missing directory
// is not an error.
func (w *Workspace) Cleanup() error {
	entries, err := os.ReadDir(w.Dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read workspace directory: %w", err)
	}

	for _, entry := range entries {
		os.Remove(filepath.Join(w.Dir, entry.Name()))
	}
	return nil
}
