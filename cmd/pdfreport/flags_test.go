package main

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-pdfreport/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseGenerateFlags
// ---------------------------------------------------------------------------

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseGenerateFlags([]string{
		"data.xlsx", "-o", "out.pdf", "-t", "90s", "-p", "letter", "-q",
		"--compare", "Sales,Revenue", "--compare", "Customers", "--x-column", "Month",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseGenerateFlags() error = %v", err)
	}

	if diff := cmp.Diff([]string{"data.xlsx"}, positional); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
	if f.output != "out.pdf" || f.timeout != 90*time.Second || f.page.size != "letter" || !f.common.quiet {
		t.Errorf("flags = %+v", f)
	}
	want := chartFlags{xColumn: "Month", compare: []string{"Sales", "Revenue", "Customers"}}
	if diff := cmp.Diff(want, f.charts, cmp.AllowUnexported(chartFlags{})); diff != "" {
		t.Errorf("chart flags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGenerateFlags_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--unknown"}},
		{"bad duration", []string{"--timeout", "soon"}},
		{"bad margin", []string{"--margin", "wide"}},
		{"bad max rows", []string{"--max-rows", "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := parseGenerateFlags(tt.args, io.Discard); !errors.Is(err, ErrInvalidFlag) {
				t.Errorf("error = %v, want ErrInvalidFlag", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Only explicitly set flags override the config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	fromFile := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.Report.Title = "From Config"
		cfg.Page.Margin = 50
		cfg.Footer = config.FooterConfig{Enabled: true, Position: "center", Text: "Confidential"}
		return cfg
	}

	tests := []struct {
		name   string
		args   []string
		mutate func(*config.Config)
	}{
		{
			name:   "no flags keep config",
			args:   nil,
			mutate: func(*config.Config) {},
		},
		{
			name: "set flags win",
			args: []string{"--title", "From Flag", "--margin", "0", "-p", "Legal", "--max-rows", "3"},
			mutate: func(c *config.Config) {
				c.Report.Title = "From Flag"
				c.Page.Margin = 0
				c.Page.Size = "legal"
				c.Data.MaxRows = 3
			},
		},
		{
			name: "footer text enables footer",
			args: []string{"--footer-text", "Draft"},
			mutate: func(c *config.Config) {
				c.Footer.Text = "Draft"
			},
		},
		{
			name: "no-footer disables footer",
			args: []string{"--no-footer"},
			mutate: func(c *config.Config) {
				c.Footer.Enabled = false
			},
		},
		{
			name: "no-footer wins over footer text",
			args: []string{"--footer-text", "Draft", "--no-footer"},
			mutate: func(c *config.Config) {
				c.Footer.Enabled = false
				c.Footer.Text = "Draft"
			},
		},
		{
			name: "output flags",
			args: []string{"-o", "q1.pdf", "--output-dir", "out", "--sheet", "Q1", "-t", "2m"},
			mutate: func(c *config.Config) {
				c.Output = config.OutputConfig{Dir: "out", Filename: "q1.pdf"}
				c.Data.Sheet = "Q1"
				c.Timeout = 2 * time.Minute
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseGenerateFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseGenerateFlags() error = %v", err)
			}

			got := fromFile()
			mergeFlags(f, got)

			want := fromFile()
			tt.mutate(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mergeFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
