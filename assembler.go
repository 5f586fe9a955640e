package pdfreport

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-pdfreport/internal/assets"
	"github.com/alnah/go-pdfreport/internal/fileutil"
	"github.com/alnah/go-pdfreport/internal/layout"
)

// Default image box, five by three inches.
const (
	DefaultImageWidth  = 360.0
	DefaultImageHeight = 216.0
)

// Config holds the document-level settings of one report.
type Config struct {
	OutputPath string // required
	Title      string
	Company    string
	Author     string
	Subject    string // PDF description metadata
	LogoPath   string
	DateFormat string // dateutil tokens or preset; empty for "MMMM DD, YYYY"
	Lang       string // html lang attribute; empty for "en"
	Footer     *Footer

	// AssetPath points at a directory with styles/ and templates/ overrides.
	AssetPath    string
	StyleName    string // empty for assets.DefaultStyleName
	TemplateName string // empty for assets.DefaultTemplateName
}

// Validate checks required fields and nested settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}
	if err := c.Footer.Validate(); err != nil {
		return err
	}
	return nil
}

// Assembler accumulates blocks into a story and renders them once.
// An Assembler is not safe for concurrent use.
type Assembler struct {
	cfg      Config
	styles   *StyleRegistry
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
	renderer Renderer
	extraCSS string

	baseCSS string
	layout  *layout.Renderer

	story    []Block
	warnings []Warning
	spent    bool
}

// New creates an Assembler bound to cfg.OutputPath.
// Returns error if the config is invalid or assets cannot be loaded.
func New(cfg Config, opts ...Option) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Assembler{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.styles == nil {
		a.styles = DefaultStyleRegistry()
	}

	if err := a.loadAssets(); err != nil {
		return nil, err
	}

	// Create the engine if not injected (e.g., by tests)
	if a.renderer == nil {
		a.renderer = newRodRenderer(a.timeout)
	}

	return a, nil
}

func (a *Assembler) loadAssets() error {
	resolver, err := assets.NewAssetResolver(a.cfg.AssetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	styleName := cmp.Or(a.cfg.StyleName, assets.DefaultStyleName)
	css, err := resolver.LoadStyle(styleName)
	if err != nil {
		return fmt.Errorf("loading stylesheet: %w", err)
	}
	a.baseCSS = css

	tmplName := cmp.Or(a.cfg.TemplateName, assets.DefaultTemplateName)
	src, err := resolver.LoadTemplate(tmplName)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	a.layout, err = layout.NewRenderer(src)
	if err != nil {
		return fmt.Errorf("initializing layout: %w", err)
	}
	return nil
}

// AddTitlePage appends the cover built from the config, followed by a page
// break. A configured logo that does not exist is left out and recorded as a
// Warning.
func (a *Assembler) AddTitlePage() error {
	if a.spent {
		return ErrAssemblerSpent
	}

	logo := a.cfg.LogoPath
	if logo != "" && !fileutil.FileExists(logo) {
		a.warn(KindTitlePage, logo)
		logo = ""
	}

	a.append(TitlePageBlock{
		LogoPath:    logo,
		Title:       a.cfg.Title,
		Company:     a.cfg.Company,
		Author:      a.cfg.Author,
		GeneratedAt: a.now(),
	})
	a.append(PageBreakBlock{})
	return nil
}

// AddSection appends a heading and its body. The body must be a non-empty
// Paragraph or BulletList.
func (a *Assembler) AddSection(title string, body SectionBody, opts ...BlockOption) error {
	if a.spent {
		return ErrAssemblerSpent
	}

	body, err := normalizeBody(body)
	if err != nil {
		return err
	}

	s := applyBlockOptions(opts)
	heading := cmp.Or(s.headingStyle, StyleHeading)
	bodyStyle := cmp.Or(s.style, StyleBody)
	if err := a.checkStyles(heading, bodyStyle); err != nil {
		return err
	}

	a.append(SectionBlock{
		Title:        title,
		Body:         body,
		HeadingStyle: heading,
		BodyStyle:    bodyStyle,
	})
	return nil
}

func normalizeBody(body SectionBody) (SectionBody, error) {
	switch b := body.(type) {
	case Paragraph:
		if strings.TrimSpace(b.Text) == "" {
			return nil, fmt.Errorf("%w: empty paragraph", ErrInvalidContent)
		}
		return b, nil
	case *Paragraph:
		if b == nil {
			return nil, fmt.Errorf("%w: nil paragraph", ErrInvalidContent)
		}
		return normalizeBody(*b)
	case BulletList:
		if len(b.Items) == 0 {
			return nil, fmt.Errorf("%w: empty bullet list", ErrInvalidContent)
		}
		return b, nil
	case *BulletList:
		if b == nil {
			return nil, fmt.Errorf("%w: nil bullet list", ErrInvalidContent)
		}
		return normalizeBody(*b)
	default:
		return nil, fmt.Errorf("%w: section body must be a Paragraph or BulletList, got %T", ErrInvalidContent, body)
	}
}

// AddTable appends a table. Row 0 of grid is the header; every row must have
// as many cells as the header. The grid is copied.
func (a *Assembler) AddTable(grid [][]string, opts ...BlockOption) error {
	if a.spent {
		return ErrAssemblerSpent
	}

	s := applyBlockOptions(opts)
	if err := validateGrid(grid, s.widths); err != nil {
		return err
	}

	titleStyle := cmp.Or(s.style, StyleHeading)
	if err := a.checkStyles(titleStyle); err != nil {
		return err
	}

	a.append(TableBlock{
		Title:        s.title,
		Grid:         grid,
		ColumnWidths: s.widths,
		TitleStyle:   titleStyle,
	})
	return nil
}

func validateGrid(grid [][]string, widths []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: empty grid", ErrMalformedTable)
	}
	cols := len(grid[0])
	if cols == 0 {
		return fmt.Errorf("%w: empty header row", ErrMalformedTable)
	}
	for i, row := range grid[1:] {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, header has %d", ErrMalformedTable, i+1, len(row), cols)
		}
	}
	if widths == nil {
		return nil
	}
	if len(widths) != cols {
		return fmt.Errorf("%w: %d column widths for %d columns", ErrMalformedTable, len(widths), cols)
	}
	for i, w := range widths {
		if w <= 0 {
			return fmt.Errorf("%w: column %d width %.1f must be positive", ErrMalformedTable, i, w)
		}
	}
	return nil
}

// Metric is one labelled value of a summary box.
type Metric struct {
	Label string
	Value string
}

// summaryHeader is the header row of a summary box.
var summaryHeader = []string{"Metric", "Value"}

// AddSummaryBox appends metrics as a two-column table, in the given order.
// It is exactly AddTable with a Metric/Value header.
func (a *Assembler) AddSummaryBox(metrics []Metric, opts ...BlockOption) error {
	grid := make([][]string, 0, len(metrics)+1)
	grid = append(grid, summaryHeader)
	for _, m := range metrics {
		grid = append(grid, []string{m.Label, m.Value})
	}
	return a.AddTable(grid, opts...)
}

// AddChart appends an image. A path that does not exist appends nothing and
// records a Warning instead of failing.
func (a *Assembler) AddChart(path string, opts ...BlockOption) error {
	if a.spent {
		return ErrAssemblerSpent
	}

	s := applyBlockOptions(opts)
	width, height := s.width, s.height
	if width == 0 && height == 0 {
		width, height = DefaultImageWidth, DefaultImageHeight
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image size %.1fx%.1f must be positive", ErrInvalidContent, width, height)
	}

	titleStyle := cmp.Or(s.style, StyleHeading)
	if err := a.checkStyles(titleStyle); err != nil {
		return err
	}

	if !fileutil.FileExists(path) {
		a.warn(KindImage, path)
		return nil
	}

	a.append(ImageBlock{
		Title:      s.title,
		Path:       path,
		Width:      width,
		Height:     height,
		TitleStyle: titleStyle,
	})
	return nil
}

// AddPageBreak forces the next block onto a new page.
func (a *Assembler) AddPageBreak() error {
	if a.spent {
		return ErrAssemblerSpent
	}
	a.append(PageBreakBlock{})
	return nil
}

// Story returns a copy of the blocks appended so far.
func (a *Assembler) Story() []Block {
	out := make([]Block, len(a.story))
	for i, b := range a.story {
		out[i] = cloneBlock(b)
	}
	return out
}

// Warnings returns the warnings recorded so far.
func (a *Assembler) Warnings() []Warning {
	return slices.Clone(a.warnings)
}

// Styles returns the registry blocks are resolved against.
func (a *Assembler) Styles() *StyleRegistry {
	return a.styles
}

// HTML returns the document Generate would print, without printing it.
func (a *Assembler) HTML(ctx context.Context) (string, error) {
	doc, err := a.lower()
	if err != nil {
		return "", err
	}
	return a.layout.Render(ctx, doc)
}

// Generate renders the story to the output path. It is terminal: after it
// returns, successfully or not, the assembler only answers ErrAssemblerSpent.
// Every failure wraps ErrRender and leaves no file at the output path.
func (a *Assembler) Generate(ctx context.Context) (report *Report, err error) {
	if a.spent {
		return nil, ErrAssemblerSpent
	}
	a.spent = true

	defer func() {
		if r := recover(); r != nil {
			report, err = nil, fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()
	defer func() {
		if cerr := a.renderer.Close(); cerr != nil {
			a.logger.Warn("closing renderer", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	started := a.now()
	a.logger.Debug("generating report", "output", a.cfg.OutputPath, "blocks", len(a.story))

	if err := a.checkImages(); err != nil {
		return nil, renderError("checking images", err)
	}

	htmlContent, err := a.HTML(ctx)
	if err != nil {
		return nil, renderError("building document", err)
	}

	pdf, err := a.renderer.ToPDF(ctx, htmlContent, &PDFOptions{
		Page:   a.styles.Page(),
		Footer: a.cfg.Footer,
	})
	if err != nil {
		return nil, renderError("printing", err)
	}
	if len(pdf) == 0 {
		return nil, renderError("printing", fmt.Errorf("%w: empty output", ErrPDFGeneration))
	}

	path, err := filepath.Abs(a.cfg.OutputPath)
	if err != nil {
		return nil, renderError("resolving output path", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, renderError("creating output directory", err)
	}
	if err := fileutil.WriteFileAtomic(path, pdf, 0o644); err != nil {
		return nil, renderError("writing output", err)
	}

	report = &Report{
		ID:          uuid.NewString(),
		Path:        path,
		Size:        int64(len(pdf)),
		Blocks:      len(a.story),
		GeneratedAt: started,
		Warnings:    a.Warnings(),
	}
	a.logger.Info("report generated",
		"path", report.Path,
		"bytes", report.Size,
		"blocks", report.Blocks,
		"warnings", len(report.Warnings),
		"elapsed", a.now().Sub(started))
	return report, nil
}

// checkImages re-checks files that existed at append time.
func (a *Assembler) checkImages() error {
	for _, b := range a.story {
		switch v := b.(type) {
		case ImageBlock:
			if !fileutil.FileExists(v.Path) {
				return fmt.Errorf("%w: %s", ErrMissingAsset, v.Path)
			}
		case TitlePageBlock:
			if v.LogoPath != "" && !fileutil.FileExists(v.LogoPath) {
				return fmt.Errorf("%w: %s", ErrMissingAsset, v.LogoPath)
			}
		}
	}
	return nil
}

func renderError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRender, step, err)
}

func (a *Assembler) append(b Block) {
	a.story = append(a.story, cloneBlock(b))
	a.logger.Debug("block appended", "kind", b.Kind(), "position", len(a.story)-1)
}

func (a *Assembler) warn(kind BlockKind, path string) {
	w := Warning{Block: kind, Path: path, Err: ErrMissingAsset}
	a.warnings = append(a.warnings, w)
	msg := "chart not found, block skipped"
	if kind == KindTitlePage {
		msg = "logo not found, omitted from title page"
	}
	a.logger.Warn(msg, "block", kind, "path", path)
}

func (a *Assembler) checkStyles(names ...string) error {
	for _, n := range names {
		if _, err := a.styles.Resolve(n); err != nil {
			return err
		}
	}
	return nil
}
