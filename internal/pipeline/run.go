package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const failedSuffix = "_FAILED"

// Run identifies one execution of the pipeline.
// It is passed explicitly to every collaborator that needs run scoped state.
type Run struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	Root  string    `json:"root"`
}

// NewRun creates a new run whose output goes under the given root directory.
func NewRun(root string) Run {
	return Run{
		ID:    uuid.New().String(),
		Start: time.Now(),
		Root:  root,
	}
}

// Name is the name of the run directory.
func (r Run) Name() string {
	return fmt.Sprintf("%s_%s", r.Start.Format("2006-01-02_15.04.05"), r.ID[:8])
}

// Dir is the output directory of the run.
func (r Run) Dir() string {
	return filepath.Join(r.Root, r.Name())
}

// Fail marks the output of the run as failed by renaming its directory.
func (r Run) Fail() error {
	dir := r.Dir()
	if _, err := os.Stat(dir); err != nil {
		// nothing was written
		return nil
	}
	if err := os.Rename(dir, dir+failedSuffix); err != nil {
		return fmt.Errorf("could not mark run '%s' as failed: %w", r.ID, err)
	}
	log.Warn().Str("run", r.ID).Str("dir", dir+failedSuffix).Msg("marked run as failed")
	return nil
}
