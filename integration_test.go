//go:build integration

package pdfreport

// Notes:
// - Requires Chrome (ROD_BROWSER_BIN or a go-rod download).
// - The written PDF is reopened with ledongthuc/pdf; its plain-text
//   extraction drops layout, so table rows are checked by cell order.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 60 * time.Second

// readPDF returns the page count and plain text of the PDF at path.
func readPDF(t *testing.T, path string) (int, string) {
	t.Helper()

	f, r, err := pdf.Open(path)
	if err != nil {
		t.Fatalf("pdf.Open() error = %v", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		t.Fatalf("GetPlainText() error = %v", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		t.Fatal(err)
	}
	return r.NumPage(), string(text)
}

func TestIntegration_Q1Report(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "q1.pdf")

	asm, err := New(Config{
		OutputPath: out,
		Title:      "Q1 Report",
		Company:    "Acme",
		Author:     "Finance",
		Footer:     &Footer{ShowPageNumber: true},
	}, WithTimeout(testTimeout), WithClock(func() time.Time {
		// April keeps month names on the title page clear of the row labels.
		return time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatal(err)
	}

	if err := asm.AddTitlePage(); err != nil {
		t.Fatal(err)
	}
	if err := asm.AddSection("Summary", Paragraph{Text: "All metrics up"}); err != nil {
		t.Fatal(err)
	}
	if err := asm.AddTable([][]string{{"Month", "Sales"}, {"Jan", "100"}, {"Feb", "120"}}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	report, err := asm.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", raw[:min(16, len(raw))])
	}
	if report.Size != int64(len(raw)) {
		t.Errorf("report size = %d, file size = %d", report.Size, len(raw))
	}

	pages, text := readPDF(t, out)
	if pages < 2 {
		t.Errorf("page count = %d, want >= 2", pages)
	}

	// Header first, then both data rows in order, each cell once.
	pos := 0
	for _, cell := range []string{"Month", "Sales", "Jan", "100", "Feb", "120"} {
		i := strings.Index(text[pos:], cell)
		if i < 0 {
			t.Fatalf("cell %q not found in order after offset %d:\n%s", cell, pos, text)
		}
		pos += i + len(cell)
	}
	if n := strings.Count(text, "Jan") + strings.Count(text, "Feb"); n != 2 {
		t.Errorf("data row labels found %d times, want 2", n)
	}
}

func TestIntegration_ChartImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chart := filepath.Join(dir, "bar.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="200"><rect width="400" height="200" fill="#3498DB"/></svg>`
	if err := os.WriteFile(chart, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	asm, err := New(Config{OutputPath: filepath.Join(dir, "chart.pdf")}, WithTimeout(testTimeout))
	if err != nil {
		t.Fatal(err)
	}
	_ = asm.AddChart(chart, WithTitle("Sales"))
	_ = asm.AddChart(filepath.Join(dir, "missing.svg"))

	report, err := asm.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if report.Blocks != 1 || len(report.Warnings) != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestIntegration_CorruptImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bad.pdf")

	asm, err := New(Config{OutputPath: out}, WithTimeout(testTimeout))
	if err != nil {
		t.Fatal(err)
	}
	_ = asm.AddChart(bad)

	_, err = asm.Generate(context.Background())
	if !errors.Is(err, ErrRender) || !errors.Is(err, ErrBrokenImage) {
		t.Fatalf("Generate() error = %v, want ErrRender wrapping ErrBrokenImage", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("partial output left behind")
	}
}
