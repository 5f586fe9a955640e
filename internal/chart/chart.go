// Package chart draws the report's bar, line, pie and comparison charts as
// SVG files sized for print.
//
// Every chart is width x height inches at the configured DPI. Files are
// written into one directory and tracked so Cleanup can remove them once the
// report has been generated.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/alnah/go-pdfreport/internal/fileutil"
)

// Sentinel errors for chart operations.
var (
	ErrNoData          = errors.New("chart has no data")
	ErrLengthMismatch  = errors.New("labels and values differ in length")
	ErrTooFewSeries    = errors.New("comparison needs at least two series")
	ErrInvalidOptions  = errors.New("invalid chart options")
	ErrInvalidFileName = errors.New("invalid chart file name")
)

// Chart size limits.
const (
	maxBarCategories = 10
	maxPieSlices     = 5
	minDPI           = 36
	maxDPI           = 600
)

// Options sizes charts and picks their colours.
type Options struct {
	Width   float64 // inches
	Height  float64 // inches
	DPI     int
	Primary string   // line charts and axis text
	Accent  string   // single-series bars and line fill
	Series  []string // comparison, pie and legend colours, cycled
}

// DefaultOptions returns 5x3 inch charts at 150 DPI.
func DefaultOptions() Options {
	return Options{
		Width:   5,
		Height:  3,
		DPI:     150,
		Primary: "#2C3E50",
		Accent:  "#3498DB",
		Series:  []string{"#3498DB", "#E74C3C", "#2ECC71", "#F39C12"},
	}
}

// Validate checks sizes and colours.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %.2fx%.2f inches must be positive", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.DPI < minDPI || o.DPI > maxDPI {
		return fmt.Errorf("%w: dpi %d (must be between %d and %d)", ErrInvalidOptions, o.DPI, minDPI, maxDPI)
	}
	if o.Primary == "" || o.Accent == "" || len(o.Series) == 0 {
		return fmt.Errorf("%w: colours are required", ErrInvalidOptions)
	}
	return nil
}

// Series is one named row of values in a comparison chart.
type Series struct {
	Name   string
	Values []float64
}

// Writer renders charts into a directory.
type Writer struct {
	dir   string
	opts  Options
	files []string
}

// NewWriter creates dir if needed and returns a Writer.
func NewWriter(dir string, opts Options) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating chart directory: %w", err)
	}
	return &Writer{dir: dir, opts: opts}, nil
}

// Bar draws the first ten labels and values as vertical bars.
func (w *Writer) Bar(name, title, xLabel, yLabel string, labels []string, values []float64) (string, error) {
	if err := checkSeries(labels, values); err != nil {
		return "", err
	}
	n := min(len(labels), maxBarCategories)
	return w.write(name, w.canvas().bar(title, xLabel, yLabel, labels[:n], values[:n]))
}

// Line draws values as a marked line over a shaded area.
func (w *Writer) Line(name, title, xLabel, yLabel string, labels []string, values []float64) (string, error) {
	if err := checkSeries(labels, values); err != nil {
		return "", err
	}
	return w.write(name, w.canvas().line(title, xLabel, yLabel, labels, values))
}

// Pie counts occurrences of each category and draws the five most frequent.
func (w *Writer) Pie(name, title string, categories []string) (string, error) {
	counts := topCounts(categories, maxPieSlices)
	if len(counts) == 0 {
		return "", ErrNoData
	}
	return w.write(name, w.canvas().pie(title, counts))
}

// Comparison draws grouped bars, one group per label and one bar per series.
func (w *Writer) Comparison(name, title string, labels []string, series []Series) (string, error) {
	if len(series) < 2 {
		return "", ErrTooFewSeries
	}
	for _, s := range series {
		if err := checkSeries(labels, s.Values); err != nil {
			return "", fmt.Errorf("series %q: %w", s.Name, err)
		}
	}
	return w.write(name, w.canvas().comparison(title, labels, series))
}

// Files returns the paths written so far.
func (w *Writer) Files() []string {
	return slices.Clone(w.files)
}

// Cleanup removes every file the writer produced.
func (w *Writer) Cleanup() error {
	var errs []error
	for _, f := range w.files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	w.files = nil
	return errors.Join(errs...)
}

func (w *Writer) canvas() *canvas {
	return newCanvas(w.opts)
}

func (w *Writer) write(name, svg string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	path := filepath.Join(w.dir, name+".svg")
	if err := fileutil.WriteFileAtomic(path, []byte(svg), 0o644); err != nil {
		return "", fmt.Errorf("writing chart: %w", err)
	}
	if !slices.Contains(w.files, path) {
		w.files = append(w.files, path)
	}
	return path, nil
}

func checkSeries(labels []string, values []float64) error {
	if len(values) == 0 {
		return ErrNoData
	}
	if len(labels) != len(values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}
	return nil
}

type count struct {
	label string
	n     int
}

// topCounts returns the k most frequent non-empty values, ties in order of
// first appearance.
func topCounts(values []string, k int) []count {
	var out []count
	index := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			out[i].n++
			continue
		}
		index[v] = len(out)
		out = append(out, count{label: v, n: 1})
	}
	slices.SortStableFunc(out, func(a, b count) int { return b.n - a.n })
	if len(out) > k {
		out = out[:k]
	}
	return out
}
