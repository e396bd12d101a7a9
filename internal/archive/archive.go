// Package archive writes timestamped JSON snapshots of completed analyses.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meeting-analysis-service/internal/models"
)

// Archiver persists one JSON file per completed job under a fixed directory.
// Snapshots are a convenience artifact; write failures are reported to the
// caller but never fail the job that produced the result.
type Archiver struct {
	dir string
	now func() time.Time
}

// New creates an archiver rooted at dir.
func New(dir string) *Archiver {
	return &Archiver{dir: dir, now: time.Now}
}

// Save writes the result as indented JSON and returns the file path.
// The file name embeds the timestamp and the job id, so repeated analyses of
// the same recording never collide.
func (a *Archiver) Save(jobID string, result models.MeetingAnalysisResult) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("archive dir: %w", err)
	}

	name := fmt.Sprintf("meeting_analysis_%s_%s.json", a.now().Format("20060102_150405"), jobID)
	path := filepath.Join(a.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("archive create: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("archive encode: %w", err)
	}

	return path, nil
}
