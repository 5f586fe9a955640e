package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"

	pdfreport "github.com/alnah/go-pdfreport"
	"github.com/alnah/go-pdfreport/internal/assets"
	"github.com/alnah/go-pdfreport/internal/chart"
	"github.com/alnah/go-pdfreport/internal/config"
	"github.com/alnah/go-pdfreport/internal/dataset"
	"github.com/alnah/go-pdfreport/internal/hints"
)

// Sentinel errors for the generate command.
var (
	ErrNoInput  = errors.New("no data file specified")
	ErrReadData = errors.New("failed to read data file")
)

const (
	executiveSummary = "This report provides a comprehensive overview of business performance " +
		"for the reporting period. Key metrics show positive growth trends across all major indicators."
	visualIntro   = "The following charts provide visual representation of key trends."
	pointsPerInch = 72
	// extra series colour after the palette's secondary, accent and success
	seriesExtra = "#F39C12"
)

// runGenerate builds one report from a dataset.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printGenerateUsage(env.Stderr)
		return ErrNoInput
	}
	dataPath := positional[0]
	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	table, err := dataset.Load(dataPath, cfg.Data.Sheet)
	if err != nil {
		if errors.Is(err, dataset.ErrUnsupportedFormat) {
			return fmt.Errorf("%w%s", err, hints.ForDataFile())
		}
		return fmt.Errorf("%w: %w%s", ErrReadData, err, hints.ForDataFile())
	}
	logger.Debug("dataset loaded", "path", dataPath, "columns", len(table.Header), "rows", len(table.Rows))

	plan, err := planCharts(table, flags.charts)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForMissingColumn(table.NumericColumns()))
	}

	palette := paletteFrom(cfg)
	styles, err := pdfreport.NewStyleRegistry(palette, pdfreport.PageGeometry{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margins:     pdfreport.UniformMargins(cfg.Page.Margin),
	})
	if err != nil {
		return err
	}

	asm, err := newAssembler(cfg, dataPath, styles, logger, env)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.StyleNames()))
		}
		return err
	}

	charts, cleanup, err := newChartWriter(cfg, palette)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("chart cleanup failed", "error", err)
		}
	}()

	if err := buildStory(asm, table, cfg, plan, charts, logger); err != nil {
		return err
	}

	report, err := asm.Generate(ctx)
	if err != nil {
		return withRenderHint(err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Report written: %s (%s, %d blocks)\n",
			report.Path, humanize.Bytes(uint64(report.Size)), report.Blocks)
	}
	return nil
}

// loadConfig applies defaults, file, environment and flags in that order.
func loadConfig(flags *generateFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.common.config)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !filepath.IsAbs(flags.common.config) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.common.config)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func paletteFrom(cfg *config.Config) pdfreport.Palette {
	def := pdfreport.DefaultPalette()
	return pdfreport.Palette{
		Primary:   cmp.Or(cfg.Colors.Primary, def.Primary),
		Secondary: cmp.Or(cfg.Colors.Secondary, def.Secondary),
		Accent:    cmp.Or(cfg.Colors.Accent, def.Accent),
		Success:   cmp.Or(cfg.Colors.Success, def.Success),
	}
}

func newAssembler(cfg *config.Config, dataPath string, styles *pdfreport.StyleRegistry, logger *slog.Logger, env *Environment) (*pdfreport.Assembler, error) {
	var footer *pdfreport.Footer
	if cfg.Footer.Enabled {
		footer = &pdfreport.Footer{
			Position:       cfg.Footer.Position,
			ShowPageNumber: cfg.Footer.ShowPageNumber,
			Text:           cfg.Footer.Text,
		}
	}

	opts := []pdfreport.Option{
		pdfreport.WithStyleRegistry(styles),
		pdfreport.WithLogger(logger),
		pdfreport.WithClock(env.Now),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, pdfreport.WithTimeout(cfg.Timeout))
	}
	if env.Renderer != nil {
		opts = append(opts, pdfreport.WithRenderer(env.Renderer))
	}

	return pdfreport.New(pdfreport.Config{
		OutputPath:   pdfreport.ResolveOutputPath(cfg.Output.Dir, cfg.Output.Filename, env.Now()),
		Title:        cfg.Report.Title,
		Company:      cfg.Report.Company,
		Author:       cfg.Report.Author,
		Subject:      cmp.Or(cfg.Report.Subject, "Generated from "+filepath.Base(dataPath)),
		LogoPath:     cfg.Report.Logo,
		DateFormat:   cfg.Report.DateFormat,
		Lang:         cfg.Report.Lang,
		Footer:       footer,
		AssetPath:    cfg.Assets.BasePath,
		StyleName:    cfg.Assets.Style,
		TemplateName: cfg.Assets.Template,
	}, opts...)
}

// newChartWriter creates a scratch directory for chart files. The returned
// cleanup removes the files and the directory.
func newChartWriter(cfg *config.Config, palette pdfreport.Palette) (*chart.Writer, func() error, error) {
	dir, err := os.MkdirTemp(cfg.Chart.TempDir, "pdfreport-charts-")
	if err != nil {
		return nil, nil, fmt.Errorf("creating chart directory: %w", err)
	}

	w, err := chart.NewWriter(dir, chart.Options{
		Width:   cfg.Chart.Width,
		Height:  cfg.Chart.Height,
		DPI:     cfg.Chart.DPI,
		Primary: palette.Primary,
		Accent:  palette.Secondary,
		Series:  []string{palette.Secondary, palette.Accent, palette.Success, seriesExtra},
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, nil, err
	}

	cleanup := func() error {
		return errors.Join(w.Cleanup(), os.RemoveAll(dir))
	}
	return w, cleanup, nil
}

// buildStory appends the standard report layout: title page, executive
// summary, key metrics, data table, charts and conclusion.
func buildStory(asm *pdfreport.Assembler, table *dataset.Table, cfg *config.Config, plan chartPlan, charts *chart.Writer, logger *slog.Logger) error {
	if err := asm.AddTitlePage(); err != nil {
		return err
	}
	if err := asm.AddSection("Executive Summary", pdfreport.Paragraph{Text: executiveSummary}); err != nil {
		return err
	}

	if summary := table.Summary(); len(summary) > 0 {
		metrics := make([]pdfreport.Metric, len(summary))
		for i, m := range summary {
			metrics[i] = pdfreport.Metric{Label: m.Label, Value: m.Value}
		}
		if err := asm.AddSummaryBox(metrics, pdfreport.WithTitle("Key Metrics Summary")); err != nil {
			return err
		}
	} else {
		logger.Warn("no numeric columns, skipping key metrics")
	}

	if err := asm.AddTable(table.Grid(cfg.Data.MaxRows), pdfreport.WithTitle("Detailed Data")); err != nil {
		return err
	}

	if !plan.empty() {
		if err := asm.AddPageBreak(); err != nil {
			return err
		}
		if err := asm.AddSection("Visual Analysis", pdfreport.Paragraph{Text: visualIntro}); err != nil {
			return err
		}
		if err := addCharts(asm, table, cfg, plan, charts); err != nil {
			return err
		}
	}

	if err := asm.AddPageBreak(); err != nil {
		return err
	}
	return asm.AddSection("Conclusion", pdfreport.BulletList{Items: conclusion(table, plan.x)})
}

func addCharts(asm *pdfreport.Assembler, table *dataset.Table, cfg *config.Config, plan chartPlan, charts *chart.Writer) error {
	size := pdfreport.WithSize(cfg.Chart.Width*pointsPerInch, cfg.Chart.Height*pointsPerInch)
	labels, err := table.Labels(plan.x)
	if err != nil {
		return err
	}

	add := func(path, title string, err error) error {
		if err != nil {
			return fmt.Errorf("drawing %q: %w", title, err)
		}
		return asm.AddChart(path, pdfreport.WithTitle(title), size)
	}

	if plan.bar != "" {
		values, err := table.Values(plan.bar)
		var path string
		if err == nil {
			path, err = charts.Bar("bar_chart", plan.bar+" by "+plan.x, plan.x, plan.bar, labels, values)
		}
		if err := add(path, plan.bar+" Performance", err); err != nil {
			return err
		}
	}
	if plan.line != "" {
		values, err := table.Values(plan.line)
		var path string
		if err == nil {
			path, err = charts.Line("line_chart", plan.line+" Trend", plan.x, plan.line, labels, values)
		}
		if err := add(path, plan.line+" Trends", err); err != nil {
			return err
		}
	}
	if plan.pie != "" {
		categories, err := table.Labels(plan.pie)
		var path string
		if err == nil {
			path, err = charts.Pie("pie_chart", "Distribution of "+plan.pie, categories)
		}
		if err := add(path, plan.pie+" Distribution", err); err != nil {
			return err
		}
	}
	if len(plan.compare) > 0 {
		series := make([]chart.Series, len(plan.compare))
		var err error
		for i, col := range plan.compare {
			var values []float64
			if values, err = table.Values(col); err != nil {
				break
			}
			series[i] = chart.Series{Name: col, Values: values}
		}
		var path string
		if err == nil {
			path, err = charts.Comparison("comparison_chart", "Comparison", labels, series)
		}
		if err := add(path, "Comparison", err); err != nil {
			return err
		}
	}
	return nil
}

// conclusion summarises how each numeric column moved from the first row to
// the last.
func conclusion(table *dataset.Table, xColumn string) []string {
	var movements []string
	allGrew := true
	for _, col := range table.NumericColumns() {
		if col == xColumn {
			continue
		}
		values, err := table.Values(col)
		if err != nil || len(values) < 2 || values[0] == 0 {
			continue
		}

		first, last := values[0], values[len(values)-1]
		change := math.Round((last - first) / math.Abs(first) * 100)
		switch {
		case change > 0:
			movements = append(movements, fmt.Sprintf("%s growth of %.0f%% over the period (%s to %s)",
				col, change, humanize.Commaf(first), humanize.Commaf(last)))
		case change < 0:
			allGrew = false
			movements = append(movements, fmt.Sprintf("%s declined by %.0f%% over the period (%s to %s)",
				col, -change, humanize.Commaf(first), humanize.Commaf(last)))
		default:
			allGrew = false
			movements = append(movements, fmt.Sprintf("%s was flat over the period", col))
		}
	}

	if len(movements) == 0 {
		return []string{fmt.Sprintf("%d rows analysed; no numeric trend to report", len(table.Rows))}
	}
	if allGrew {
		return slices.Concat(
			[]string{"Strong performance across all key metrics"},
			movements,
			[]string{"Recommended actions: Continue current strategy and increase marketing spend"},
		)
	}
	return append(movements, "Recommended actions: Review the declining metrics in the detailed data")
}

// withRenderHint appends a hint matching the failure class.
func withRenderHint(err error) error {
	switch {
	case errors.Is(err, pdfreport.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, pdfreport.ErrMissingAsset), errors.Is(err, pdfreport.ErrBrokenImage):
		return fmt.Errorf("%w%s", err, hints.ForMissingAsset())
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	default:
		return err
	}
}
