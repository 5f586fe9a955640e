package pdfreport

import (
	"fmt"
	"path/filepath"
	"time"
)

// Report describes a generated PDF.
type Report struct {
	ID          string
	Path        string // absolute
	Size        int64  // bytes
	Blocks      int
	GeneratedAt time.Time
	Warnings    []Warning
}

// Warning is a non-fatal problem met while building the story. A missing
// chart leaves its block out of the report; a missing logo is dropped while
// the title page is kept.
type Warning struct {
	Block BlockKind
	Path  string
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s %s: %v", w.Block, w.Path, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// outputTimeLayout stamps default report file names.
const outputTimeLayout = "20060102_150405"

// ResolveOutputPath returns dir/filename, or dir/report_YYYYMMDD_HHMMSS.pdf
// when filename is empty. An empty dir means the working directory.
func ResolveOutputPath(dir, filename string, now time.Time) string {
	if filename == "" {
		filename = "report_" + now.Format(outputTimeLayout) + ".pdf"
	}
	if filepath.IsAbs(filename) || dir == "" {
		return filename
	}
	return filepath.Join(dir, filename)
}
