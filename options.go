package pdfreport

import (
	"log/slog"
	"slices"
	"time"
)

// Option configures an Assembler.
type Option func(*Assembler)

// defaultTimeout bounds one Generate call when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdfreport: WithTimeout duration must be positive")
	}
	return func(a *Assembler) {
		a.timeout = d
	}
}

// WithStyleRegistry replaces the default registry.
func WithStyleRegistry(r *StyleRegistry) Option {
	return func(a *Assembler) {
		if r != nil {
			a.styles = r
		}
	}
}

// WithLogger sets the logger used for warnings and progress. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides time.Now for the title page date and the report
// timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithRenderer replaces the headless Chrome engine. The assembler closes it
// when Generate returns.
func WithRenderer(r Renderer) Option {
	return func(a *Assembler) {
		a.renderer = r
	}
}

// WithStylesheet appends css after the built-in stylesheet.
func WithStylesheet(css string) Option {
	return func(a *Assembler) {
		a.extraCSS = css
	}
}

// blockSettings collects per-block options.
type blockSettings struct {
	title        string
	widths       []float64
	width        float64
	height       float64
	style        string
	headingStyle string
}

// BlockOption configures one appended block.
type BlockOption func(*blockSettings)

// WithTitle sets the caption of a table or image.
func WithTitle(title string) BlockOption {
	return func(s *blockSettings) {
		s.title = title
	}
}

// WithColumnWidths fixes table column widths in points.
func WithColumnWidths(widths ...float64) BlockOption {
	return func(s *blockSettings) {
		s.widths = slices.Clone(widths)
	}
}

// WithSize sets the bounding box of an image in points.
func WithSize(width, height float64) BlockOption {
	return func(s *blockSettings) {
		s.width = width
		s.height = height
	}
}

// WithStyle names the style of a section body or of a table or image caption.
func WithStyle(name string) BlockOption {
	return func(s *blockSettings) {
		s.style = name
	}
}

// WithHeadingStyle names the style of a section heading.
func WithHeadingStyle(name string) BlockOption {
	return func(s *blockSettings) {
		s.headingStyle = name
	}
}

func applyBlockOptions(opts []BlockOption) blockSettings {
	var s blockSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
