package bookbinder

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workDir is a scratch directory exclusively owned by one run. Release
// must be deferred as soon as the directory exists so cleanup runs on
// every exit path, including failures mid-pipeline.
type workDir struct {
	Path string
	keep bool
}

func newWorkDir(prefix string) (*workDir, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	return &workDir{Path: path}, nil
}

// Keep marks the directory to survive Release so the operator can
// inspect the intermediate sources.
func (w *workDir) Keep() { w.keep = true }

func (w *workDir) Release() {
	if w.keep {
		log.Printf("Keeping work directory %s", w.Path)
		return
	}
	os.RemoveAll(w.Path)
}
