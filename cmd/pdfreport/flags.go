package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdfreport/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// reportFlags holds title page flags.
type reportFlags struct {
	title      string
	company    string
	author     string
	logo       string
	dateFormat string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
	footerText  string
	noFooter    bool
}

// chartFlags selects the dataset columns drawn in the visual analysis.
type chartFlags struct {
	xColumn    string
	barColumn  string
	lineColumn string
	pieColumn  string
	compare    []string
	disabled   bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common    commonFlags
	output    string
	outputDir string
	sheet     string
	maxRows   int
	timeout   time.Duration
	report    reportFlags
	page      pageFlags
	charts    chartFlags

	fs *flag.FlagSet
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addReportFlags adds title page flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.title, "title", "", "report title")
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.author, "author", "", "prepared by")
	fs.StringVar(&f.logo, "logo", "", "logo image path")
	fs.StringVar(&f.dateFormat, "date-format", "", "title page date format")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in points (0-288)")
	fs.StringVar(&f.footerText, "footer-text", "", "footer text")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable footer")
}

// addChartFlags adds chart column flags to a FlagSet.
func addChartFlags(fs *flag.FlagSet, f *chartFlags) {
	fs.StringVar(&f.xColumn, "x-column", "", "category column")
	fs.StringVar(&f.barColumn, "bar-column", "", "bar chart column")
	fs.StringVar(&f.lineColumn, "line-column", "", "line chart column")
	fs.StringVar(&f.pieColumn, "pie-column", "", "pie chart column")
	fs.StringSliceVar(&f.compare, "compare", nil, "columns for a grouped bar chart")
	fs.BoolVar(&f.disabled, "no-charts", false, "skip charts")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{fs: fs}

	fs.StringVarP(&f.output, "output", "o", "", "output file name or path")
	fs.StringVar(&f.outputDir, "output-dir", "", "output directory")
	fs.StringVar(&f.sheet, "sheet", "", "worksheet name")
	fs.IntVar(&f.maxRows, "max-rows", 0, "rows in the data table")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF generation timeout")

	addCommonFlags(fs, &f.common)
	addReportFlags(fs, &f.report)
	addPageFlags(fs, &f.page)
	addChartFlags(fs, &f.charts)

	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	return f, fs.Args(), nil
}

// mergeFlags copies explicitly set flags over cfg, so flags win over the
// environment and the config file.
func mergeFlags(f *generateFlags, cfg *config.Config) {
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}

	set("output", func() { cfg.Output.Filename = f.output })
	set("output-dir", func() { cfg.Output.Dir = f.outputDir })
	set("sheet", func() { cfg.Data.Sheet = f.sheet })
	set("max-rows", func() { cfg.Data.MaxRows = f.maxRows })
	set("timeout", func() { cfg.Timeout = f.timeout })

	set("title", func() { cfg.Report.Title = f.report.title })
	set("company", func() { cfg.Report.Company = f.report.company })
	set("author", func() { cfg.Report.Author = f.report.author })
	set("logo", func() { cfg.Report.Logo = f.report.logo })
	set("date-format", func() { cfg.Report.DateFormat = f.report.dateFormat })

	set("page-size", func() { cfg.Page.Size = strings.ToLower(f.page.size) })
	set("orientation", func() { cfg.Page.Orientation = strings.ToLower(f.page.orientation) })
	set("margin", func() { cfg.Page.Margin = f.page.margin })
	set("footer-text", func() {
		cfg.Footer.Enabled = true
		cfg.Footer.Text = f.page.footerText
	})
	if f.page.noFooter {
		cfg.Footer.Enabled = false
	}
}
