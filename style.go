package pdfreport

import (
	"fmt"
	"regexp"
	"slices"
)

// Built-in style names.
const (
	StyleTitle       = "title"
	StyleHeading     = "heading"
	StyleBody        = "body"
	StyleTableHeader = "table-header"
	StyleTableBody   = "table-body"
)

// Alignment values for StyleProfile.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// StyleProfile is a named set of text presentation attributes. Sizes are in
// points; zero Leading lets the engine pick the line height.
type StyleProfile struct {
	Name        string
	FontSize    float64
	Leading     float64
	Color       string
	Background  string // optional, table headers use it
	Bold        bool
	Alignment   string
	SpaceBefore float64
	SpaceAfter  float64
}

func (p StyleProfile) validate() error {
	if p.FontSize <= 0 {
		return fmt.Errorf("%w: font size %.1f must be positive", ErrInvalidStyleProfile, p.FontSize)
	}
	if p.Leading < 0 || p.SpaceBefore < 0 || p.SpaceAfter < 0 {
		return fmt.Errorf("%w: leading and spacing cannot be negative", ErrInvalidStyleProfile)
	}
	if err := validateColor("color", p.Color); err != nil {
		return err
	}
	if p.Background != "" {
		if err := validateColor("background", p.Background); err != nil {
			return err
		}
	}
	switch p.Alignment {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		return fmt.Errorf("%w: alignment %q", ErrInvalidStyleProfile, p.Alignment)
	}
	return nil
}

// styleNamePattern keeps names usable as CSS class suffixes.
var styleNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// StyleRegistry maps names to style profiles and carries the palette and page
// geometry they were derived from. It is not safe for concurrent mutation.
type StyleRegistry struct {
	palette  Palette
	page     PageGeometry
	profiles map[string]StyleProfile
	order    []string
}

// NewStyleRegistry validates palette and page and seeds the built-in profiles.
func NewStyleRegistry(palette Palette, page PageGeometry) (*StyleRegistry, error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	r := &StyleRegistry{
		palette:  palette,
		page:     page,
		profiles: make(map[string]StyleProfile),
	}
	for _, p := range builtinProfiles(palette) {
		if err := r.Register(p.Name, p); err != nil {
			return nil, fmt.Errorf("seeding %s: %w", p.Name, err)
		}
	}
	return r, nil
}

// DefaultStyleRegistry returns a registry built from DefaultPalette and
// DefaultPageGeometry.
func DefaultStyleRegistry() *StyleRegistry {
	r, err := NewStyleRegistry(DefaultPalette(), DefaultPageGeometry())
	if err != nil {
		panic("pdfreport: default style registry: " + err.Error())
	}
	return r
}

func builtinProfiles(p Palette) []StyleProfile {
	return []StyleProfile{
		{Name: StyleTitle, FontSize: 24, Color: p.Primary, Alignment: AlignCenter, SpaceAfter: 30},
		{Name: StyleHeading, FontSize: 16, Color: p.Secondary, Bold: true, SpaceBefore: 20, SpaceAfter: 12},
		{Name: StyleBody, FontSize: 11, Leading: 14, Color: "#000000", SpaceAfter: 12},
		{Name: StyleTableHeader, FontSize: 12, Color: "#F5F5F5", Background: p.Primary, Bold: true, Alignment: AlignCenter},
		{Name: StyleTableBody, FontSize: 10, Color: "#000000", Alignment: AlignCenter},
	}
}

// Register stores profile under name, replacing any previous profile. The
// profile's Name field is set to name.
func (r *StyleRegistry) Register(name string, profile StyleProfile) error {
	if !styleNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
	}
	profile.Name = name
	if err := profile.validate(); err != nil {
		return fmt.Errorf("style %q: %w", name, err)
	}

	if _, exists := r.profiles[name]; !exists {
		r.order = append(r.order, name)
	}
	r.profiles[name] = profile
	return nil
}

// Resolve returns a copy of the profile registered under name.
func (r *StyleRegistry) Resolve(name string) (StyleProfile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return StyleProfile{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return p, nil
}

// Names returns registered names in registration order.
func (r *StyleRegistry) Names() []string {
	return slices.Clone(r.order)
}

// Palette returns the palette the built-ins were coloured from.
func (r *StyleRegistry) Palette() Palette {
	return r.palette
}

// Page returns the page geometry.
func (r *StyleRegistry) Page() PageGeometry {
	return r.page
}

// all returns every profile in registration order.
func (r *StyleRegistry) all() []StyleProfile {
	out := make([]StyleProfile, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.profiles[n])
	}
	return out
}
