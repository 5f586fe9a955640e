package pdfreport

import (
	"fmt"
	"regexp"
	"strings"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in points.
const (
	MinMargin     = 0.0
	MaxMargin     = 288.0
	DefaultMargin = 72.0
)

// Page dimensions in points, portrait.
var pageDimensions = map[string][2]float64{
	PageSizeA4:     {595.28, 841.89},
	PageSizeLetter: {612, 792},
	PageSizeLegal:  {612, 1008},
}

// Margins holds the four page margins in points.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// UniformMargins returns margins of pt on every side.
func UniformMargins(pt float64) Margins {
	return Margins{Top: pt, Bottom: pt, Left: pt, Right: pt}
}

// PageGeometry configures page dimensions.
type PageGeometry struct {
	Size        string // "a4", "letter", "legal"
	Orientation string // "portrait", "landscape"
	Margins     Margins
}

// DefaultPageGeometry returns A4 portrait with one-inch margins.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margins:     UniformMargins(DefaultMargin),
	}
}

// Validate checks that the geometry is usable. Comparison is case-insensitive.
func (p PageGeometry) Validate() error {
	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	sides := []struct {
		name string
		v    float64
	}{
		{"top", p.Margins.Top},
		{"bottom", p.Margins.Bottom},
		{"left", p.Margins.Left},
		{"right", p.Margins.Right},
	}
	for _, s := range sides {
		if s.v < MinMargin || s.v > MaxMargin {
			return fmt.Errorf("%w: %s %.1fpt (must be between %.0f and %.0f)",
				ErrInvalidMargin, s.name, s.v, MinMargin, MaxMargin)
		}
	}
	return nil
}

// Dimensions returns the page width and height in points after orientation.
func (p PageGeometry) Dimensions() (width, height float64) {
	d := pageDimensions[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return d[1], d[0]
	}
	return d[0], d[1]
}

// hexColorPattern matches #RRGGBB.
var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validateColor(field, color string) error {
	if !hexColorPattern.MatchString(color) {
		return fmt.Errorf("%w: %s %q (want #RRGGBB)", ErrInvalidColor, field, color)
	}
	return nil
}

// Palette holds the brand colours used by the built-in styles and charts.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Success   string
}

// DefaultPalette returns the stock blue and slate palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   "#2C3E50",
		Secondary: "#3498DB",
		Accent:    "#E74C3C",
		Success:   "#2ECC71",
	}
}

// Validate checks that every colour is #RRGGBB.
func (p Palette) Validate() error {
	for _, c := range []struct{ field, v string }{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"success", p.Success},
	} {
		if err := validateColor(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Footer configures the running page footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}
