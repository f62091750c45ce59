package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Write stores the rendered report under dir, named by formatting runDate
// with filenameLayout (a Go time layout such as "2006-01-02.md"). It returns
// the written path.
func Write(content, dir, filenameLayout string, runDate time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, runDate.Format(filenameLayout))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
