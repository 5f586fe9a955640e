package pdfreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pdfreport/internal/fileutil"
	"github.com/alnah/go-pdfreport/internal/process"
)

// Renderer prints a complete HTML document to PDF bytes.
// Implementations are closed by the Assembler when Generate returns.
type Renderer interface {
	ToPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ Renderer = (*rodRenderer)(nil)

// PDFOptions holds print settings for one document.
type PDFOptions struct {
	Page   PageGeometry
	Footer *Footer
}

// pointsPerInch converts page geometry to Chrome's inch-based print options.
const pointsPerInch = 72.0

// minFooterMargin leaves room for the footer template, in points.
const minFooterMargin = 54.0

// brokenImagesJS lists the sources of images that loaded but did not decode.
const brokenImagesJS = `() => Array.from(document.images)
  .filter(img => img.complete && img.naturalWidth === 0)
  .map(img => img.getAttribute('src') || '')`

// rodRenderer implements Renderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given page load timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources, including orphaned renderer processes.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// ToPDF writes the document to a temporary file so relative and file://
// resources resolve, then prints it.
func (r *rodRenderer) ToPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.renderFromFile(ctx, tmpPath, opts)
}

// renderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) renderFromFile(ctx context.Context, filePath string, opts *PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	url, err := fileutil.FileURL(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := checkImages(page); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// checkImages fails when the page holds an image the browser could not decode.
func checkImages(page *rod.Page) error {
	res, err := page.Eval(brokenImagesJS)
	if err != nil {
		return fmt.Errorf("%w: inspecting images: %v", ErrPageLoad, err)
	}

	var broken []string
	for _, v := range res.Value.Arr() {
		broken = append(broken, v.Str())
	}
	if len(broken) > 0 {
		return fmt.Errorf("%w: %s", ErrBrokenImage, strings.Join(broken, ", "))
	}
	return nil
}

// buildPDFOptions converts page geometry to proto.PagePrintToPDF.
func buildPDFOptions(opts *PDFOptions) *proto.PagePrintToPDF {
	page := DefaultPageGeometry()
	var footer *Footer
	if opts != nil {
		page = opts.Page
		footer = opts.Footer
	}

	width, height := page.Dimensions()
	m := page.Margins
	if footer != nil && m.Bottom < minFooterMargin {
		m.Bottom = minFooterMargin
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      inches(width),
		PaperHeight:     inches(height),
		MarginTop:       inches(m.Top),
		MarginBottom:    inches(m.Bottom),
		MarginLeft:      inches(m.Left),
		MarginRight:     inches(m.Right),
		PrintBackground: true,
	}

	if footer != nil {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>"
		pdfOpts.FooterTemplate = buildFooterTemplate(footer)
	}

	return pdfOpts
}

// inches converts points to a pointer to inches.
func inches(points float64) *float64 {
	v := points / pointsPerInch
	return &v
}
