package pdfreport

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestNewStyleRegistry - Built-in profiles
// ---------------------------------------------------------------------------

func TestNewStyleRegistry_Builtins(t *testing.T) {
	t.Parallel()

	r := DefaultStyleRegistry()

	want := []string{StyleTitle, StyleHeading, StyleBody, StyleTableHeader, StyleTableBody}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		want StyleProfile
	}{
		{
			name: StyleTitle,
			want: StyleProfile{Name: StyleTitle, FontSize: 24, Color: "#2C3E50", Alignment: AlignCenter, SpaceAfter: 30},
		},
		{
			name: StyleHeading,
			want: StyleProfile{Name: StyleHeading, FontSize: 16, Color: "#3498DB", Bold: true, SpaceBefore: 20, SpaceAfter: 12},
		},
		{
			name: StyleBody,
			want: StyleProfile{Name: StyleBody, FontSize: 11, Leading: 14, Color: "#000000", SpaceAfter: 12},
		},
		{
			name: StyleTableHeader,
			want: StyleProfile{Name: StyleTableHeader, FontSize: 12, Color: "#F5F5F5", Background: "#2C3E50", Bold: true, Alignment: AlignCenter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.name, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestNewStyleRegistry_PaletteColoursBuiltins(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	p.Primary = "#112233"
	r, err := NewStyleRegistry(p, DefaultPageGeometry())
	if err != nil {
		t.Fatal(err)
	}

	title, _ := r.Resolve(StyleTitle)
	if title.Color != "#112233" {
		t.Errorf("title colour = %s, want palette primary", title.Color)
	}
	if r.Palette() != p {
		t.Errorf("Palette() = %+v, want %+v", r.Palette(), p)
	}
}

func TestNewStyleRegistry_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		palette func(*Palette)
		page    func(*PageGeometry)
		wantErr error
	}{
		{name: "defaults"},
		{name: "letter landscape", page: func(g *PageGeometry) { g.Size, g.Orientation = "Letter", "LANDSCAPE" }},
		{name: "zero margins", page: func(g *PageGeometry) { g.Margins = UniformMargins(0) }},
		{name: "unknown size", page: func(g *PageGeometry) { g.Size = "a3" }, wantErr: ErrInvalidPageSize},
		{name: "unknown orientation", page: func(g *PageGeometry) { g.Orientation = "diagonal" }, wantErr: ErrInvalidOrientation},
		{name: "negative margin", page: func(g *PageGeometry) { g.Margins.Left = -1 }, wantErr: ErrInvalidMargin},
		{name: "margin too large", page: func(g *PageGeometry) { g.Margins.Bottom = MaxMargin + 1 }, wantErr: ErrInvalidMargin},
		{name: "short hex", palette: func(p *Palette) { p.Accent = "#FFF" }, wantErr: ErrInvalidColor},
		{name: "named colour", palette: func(p *Palette) { p.Success = "green" }, wantErr: ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := DefaultPalette()
			if tt.palette != nil {
				tt.palette(&p)
			}
			g := DefaultPageGeometry()
			if tt.page != nil {
				tt.page(&g)
			}

			_, err := NewStyleRegistry(p, g)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewStyleRegistry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStyleRegistry_Register / Resolve
// ---------------------------------------------------------------------------

func TestStyleRegistry_Register(t *testing.T) {
	t.Parallel()

	valid := StyleProfile{FontSize: 9, Color: "#7F8C8D"}

	tests := []struct {
		name    string
		style   string
		profile StyleProfile
		wantErr error
	}{
		{name: "new profile", style: "note", profile: valid},
		{name: "underscore and digits", style: "note_2", profile: valid},
		{name: "empty name", style: "", profile: valid, wantErr: ErrInvalidStyleName},
		{name: "name with space", style: "small print", profile: valid, wantErr: ErrInvalidStyleName},
		{name: "name starting with digit", style: "2col", profile: valid, wantErr: ErrInvalidStyleName},
		{name: "zero font size", style: "x", profile: StyleProfile{Color: "#000000"}, wantErr: ErrInvalidStyleProfile},
		{name: "bad colour", style: "x", profile: StyleProfile{FontSize: 9, Color: "red"}, wantErr: ErrInvalidColor},
		{name: "bad background", style: "x", profile: StyleProfile{FontSize: 9, Color: "#000000", Background: "#12"}, wantErr: ErrInvalidColor},
		{name: "bad alignment", style: "x", profile: StyleProfile{FontSize: 9, Color: "#000000", Alignment: "middle"}, wantErr: ErrInvalidStyleProfile},
		{name: "negative spacing", style: "x", profile: StyleProfile{FontSize: 9, Color: "#000000", SpaceAfter: -2}, wantErr: ErrInvalidStyleProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := DefaultStyleRegistry()
			err := r.Register(tt.style, tt.profile)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register(%q) error = %v, want %v", tt.style, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(r.Names()) != 5 {
					t.Errorf("failed Register changed the registry: %v", r.Names())
				}
				return
			}

			got, err := r.Resolve(tt.style)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.style {
				t.Errorf("Resolve().Name = %q, want %q", got.Name, tt.style)
			}
		})
	}
}

func TestStyleRegistry_RegisterOverwritesKeepsOrder(t *testing.T) {
	t.Parallel()

	r := DefaultStyleRegistry()
	if err := r.Register(StyleBody, StyleProfile{FontSize: 12, Color: "#333333"}); err != nil {
		t.Fatal(err)
	}

	body, _ := r.Resolve(StyleBody)
	if body.FontSize != 12 {
		t.Errorf("body font size = %v, want 12", body.FontSize)
	}
	if r.Names()[2] != StyleBody || len(r.Names()) != 5 {
		t.Errorf("Names() = %v, want body kept in place", r.Names())
	}
}

func TestStyleRegistry_ResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := DefaultStyleRegistry().Resolve("caption")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Resolve(caption) error = %v, want ErrUnknownStyle", err)
	}
}

func TestStyleRegistry_ResolveIsIdempotentAndReturnsCopies(t *testing.T) {
	t.Parallel()

	r := DefaultStyleRegistry()

	first, err := r.Resolve(StyleHeading)
	if err != nil {
		t.Fatal(err)
	}
	first.FontSize = 99
	first.Color = "#FFFFFF"

	second, _ := r.Resolve(StyleHeading)
	third, _ := r.Resolve(StyleHeading)
	if diff := cmp.Diff(second, third); diff != "" {
		t.Errorf("consecutive Resolve differ (-second +third):\n%s", diff)
	}
	if second.FontSize != 16 {
		t.Errorf("mutating a resolved copy changed the registry: font size %v", second.FontSize)
	}
}

// ---------------------------------------------------------------------------
// TestPageGeometry_Dimensions
// ---------------------------------------------------------------------------

func TestPageGeometry_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size, orientation string
		wantW, wantH      float64
	}{
		{PageSizeA4, OrientationPortrait, 595.28, 841.89},
		{PageSizeLetter, OrientationPortrait, 612, 792},
		{PageSizeLetter, OrientationLandscape, 792, 612},
		{PageSizeLegal, "Landscape", 1008, 612},
	}

	for _, tt := range tests {
		g := PageGeometry{Size: tt.size, Orientation: tt.orientation}
		w, h := g.Dimensions()
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("%s %s Dimensions() = %vx%v, want %vx%v", tt.size, tt.orientation, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestFooter_Validate(t *testing.T) {
	t.Parallel()

	var nilFooter *Footer
	if err := nilFooter.Validate(); err != nil {
		t.Errorf("nil footer: %v", err)
	}
	for _, pos := range []string{"", "left", "Center", "right"} {
		if err := (&Footer{Position: pos}).Validate(); err != nil {
			t.Errorf("Position %q: %v", pos, err)
		}
	}
	if err := (&Footer{Position: "top"}).Validate(); !errors.Is(err, ErrInvalidFooterPosition) {
		t.Errorf("Position top error = %v, want ErrInvalidFooterPosition", err)
	}
}
