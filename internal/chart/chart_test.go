package chart

// Notes:
// - SVG output is parsed with encoding/xml to count drawn elements; pixel
//   positions are not asserted.

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	months = []string{"January", "February", "March", "April", "May", "June"}
	sales  = []float64{15000, 18000, 16500, 22000, 19500, 25000}
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()

	w, err := NewWriter(filepath.Join(t.TempDir(), "charts"), DefaultOptions())
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	return w
}

type svgDoc struct {
	Width    string     `xml:"width,attr"`
	Height   string     `xml:"height,attr"`
	Rects    []struct{} `xml:"rect"`
	Circles  []struct{} `xml:"circle"`
	Paths    []struct{} `xml:"path"`
	Polyline []struct{} `xml:"polyline"`
	Texts    []string   `xml:"text"`
}

func readSVG(t *testing.T, path string) svgDoc {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid SVG: %v\n%s", err, data)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestOptions
// ---------------------------------------------------------------------------

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "zero width", mutate: func(o *Options) { o.Width = 0 }, wantErr: ErrInvalidOptions},
		{name: "dpi too low", mutate: func(o *Options) { o.DPI = 10 }, wantErr: ErrInvalidOptions},
		{name: "dpi too high", mutate: func(o *Options) { o.DPI = 1200 }, wantErr: ErrInvalidOptions},
		{name: "no series colours", mutate: func(o *Options) { o.Series = nil }, wantErr: ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			tt.mutate(&o)
			if err := o.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriter - Chart kinds
// ---------------------------------------------------------------------------

func TestWriter_BarSizeAndBars(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	path, err := w.Bar("bar_chart", "Monthly Sales", "Month", "Sales", months, sales)
	if err != nil {
		t.Fatalf("Bar() error = %v", err)
	}
	if filepath.Ext(path) != ".svg" {
		t.Errorf("path = %q, want .svg", path)
	}

	doc := readSVG(t, path)
	if doc.Width != "750" || doc.Height != "450" {
		t.Errorf("size = %sx%s, want 750x450 (5x3in at 150dpi)", doc.Width, doc.Height)
	}
	// background + one rect per bar
	if len(doc.Rects) != 1+len(sales) {
		t.Errorf("rects = %d, want %d", len(doc.Rects), 1+len(sales))
	}
	if !slicesContain(doc.Texts, "Monthly Sales") || !slicesContain(doc.Texts, "February") {
		t.Errorf("texts = %v", doc.Texts)
	}
}

func TestWriter_BarKeepsFirstTen(t *testing.T) {
	t.Parallel()

	labels := make([]string, 14)
	values := make([]float64, 14)
	for i := range labels {
		labels[i] = string(rune('a' + i))
		values[i] = float64(i + 1)
	}

	w := newTestWriter(t)
	path, err := w.Bar("many", "", "", "", labels, values)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(readSVG(t, path).Rects); got != 1+maxBarCategories {
		t.Errorf("rects = %d, want %d", got, 1+maxBarCategories)
	}
}

func TestWriter_Line(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	path, err := w.Line("line_chart", "Revenue Trend", "Month", "Revenue", months, sales)
	if err != nil {
		t.Fatal(err)
	}

	doc := readSVG(t, path)
	if len(doc.Polyline) != 1 || len(doc.Circles) != len(sales) {
		t.Errorf("polyline=%d circles=%d", len(doc.Polyline), len(doc.Circles))
	}
}

func TestWriter_PieTopFive(t *testing.T) {
	t.Parallel()

	categories := []string{"a", "b", "b", "c", "c", "c", "d", "e", "f", "g", "", "b"}

	w := newTestWriter(t)
	path, err := w.Pie("pie_chart", "Distribution", categories)
	if err != nil {
		t.Fatal(err)
	}

	doc := readSVG(t, path)
	if len(doc.Paths) != maxPieSlices {
		t.Errorf("slices = %d, want %d", len(doc.Paths), maxPieSlices)
	}
	if !slicesContain(doc.Texts, "b") || slicesContain(doc.Texts, "g") {
		t.Errorf("legend = %v, want top five only", doc.Texts)
	}
}

func TestWriter_PieSingleCategory(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	path, err := w.Pie("one", "", []string{"x", "x"})
	if err != nil {
		t.Fatal(err)
	}
	if doc := readSVG(t, path); len(doc.Circles) != 1 || len(doc.Paths) != 0 {
		t.Errorf("single slice drawn as circles=%d paths=%d", len(doc.Circles), len(doc.Paths))
	}
}

func TestWriter_Comparison(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	path, err := w.Comparison("comparison_chart", "Sales vs Customers", months, []Series{
		{Name: "Sales", Values: sales},
		{Name: "Customers", Values: []float64{120, 145, 135, 180, 160, 200}},
	})
	if err != nil {
		t.Fatal(err)
	}

	doc := readSVG(t, path)
	// background + 2 legend swatches + 12 bars
	if len(doc.Rects) != 1+2+12 {
		t.Errorf("rects = %d, want 15", len(doc.Rects))
	}
}

func TestWriter_Errors(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name:    "bar without data",
			call:    func() error { _, err := w.Bar("b", "", "", "", nil, nil); return err },
			wantErr: ErrNoData,
		},
		{
			name:    "line length mismatch",
			call:    func() error { _, err := w.Line("l", "", "", "", months[:2], sales); return err },
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "pie of blanks",
			call:    func() error { _, err := w.Pie("p", "", []string{"", ""}); return err },
			wantErr: ErrNoData,
		},
		{
			name: "comparison with one series",
			call: func() error {
				_, err := w.Comparison("c", "", months, []Series{{Name: "Sales", Values: sales}})
				return err
			},
			wantErr: ErrTooFewSeries,
		},
		{
			name:    "path in file name",
			call:    func() error { _, err := w.Bar("../escape", "", "", "", months, sales); return err },
			wantErr: ErrInvalidFileName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriter_EscapesText(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	path, err := w.Bar("esc", "R&D <spend>", "", "", []string{"a&b"}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	doc := readSVG(t, path)
	if !slicesContain(doc.Texts, "R&D <spend>") {
		t.Errorf("title not round-tripped: %v", doc.Texts)
	}
}

func TestWriter_Cleanup(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	bar, _ := w.Bar("bar_chart", "", "", "", months, sales)
	line, _ := w.Line("line_chart", "", "", "", months, sales)

	if diff := cmp.Diff([]string{bar, line}, w.Files()); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}

	if err := w.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	for _, p := range []string{bar, line} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists", p)
		}
	}
	if len(w.Files()) != 0 {
		t.Error("Files() not empty after Cleanup")
	}
}

func TestNiceRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lo, hi                   float64
		wantLo, wantHi, wantStep float64
	}{
		{0, 25000, 0, 25000, 5000},
		{0, 200, 0, 200, 50},
		{0, 0, 0, 1, 0.2},
		{-30, 70, -40, 80, 20},
	}
	for _, tt := range tests {
		lo, hi, step := niceRange(tt.lo, tt.hi)
		if lo != tt.wantLo || hi != tt.wantHi || step != tt.wantStep {
			t.Errorf("niceRange(%v, %v) = %v %v %v, want %v %v %v", tt.lo, tt.hi, lo, hi, step, tt.wantLo, tt.wantHi, tt.wantStep)
		}
	}
}

func slicesContain(texts []string, want string) bool {
	for _, s := range texts {
		if strings.TrimSpace(s) == want {
			return true
		}
	}
	return false
}
