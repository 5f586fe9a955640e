package pdfreport

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-pdfreport/internal/layout"
)

// defaultFontFamily is the font stack for footers and generated content.
const defaultFontFamily = "Helvetica, Arial, sans-serif"

// buildPaletteCSS exposes the palette as custom properties for the base
// stylesheet.
func buildPaletteCSS(p Palette) string {
	return fmt.Sprintf(`
/* Palette */
:root {
  --color-primary: %s;
  --color-secondary: %s;
  --color-accent: %s;
  --color-success: %s;
}
`, p.Primary, p.Secondary, p.Accent, p.Success)
}

// buildProfileCSS renders one style profile as a class rule.
func buildProfileCSS(p StyleProfile) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, ".%s {\n", layout.StyleClass(p.Name))
	fmt.Fprintf(&buf, "  font-size: %s;\n", pt(p.FontSize))
	if p.Leading > 0 {
		fmt.Fprintf(&buf, "  line-height: %s;\n", pt(p.Leading))
	}
	fmt.Fprintf(&buf, "  color: %s;\n", p.Color)
	if p.Background != "" {
		fmt.Fprintf(&buf, "  background-color: %s;\n", p.Background)
	}
	if p.Bold {
		buf.WriteString("  font-weight: bold;\n")
	} else {
		buf.WriteString("  font-weight: normal;\n")
	}
	if p.Alignment != "" {
		fmt.Fprintf(&buf, "  text-align: %s;\n", p.Alignment)
	}
	fmt.Fprintf(&buf, "  margin-top: %s;\n", pt(p.SpaceBefore))
	fmt.Fprintf(&buf, "  margin-bottom: %s;\n", pt(p.SpaceAfter))
	buf.WriteString("}\n")

	return buf.String()
}

// buildRegistryCSS renders the palette and every registered profile, in
// registration order so later profiles win on equal specificity.
func buildRegistryCSS(r *StyleRegistry) string {
	var buf strings.Builder

	buf.WriteString(buildPaletteCSS(r.Palette()))
	buf.WriteString("\n/* Style profiles */\n")
	for _, p := range r.all() {
		buf.WriteString(buildProfileCSS(p))
	}
	return buf.String()
}

// buildFooterTemplate generates an HTML template for Chrome's native footer.
// Page numbers use the pageNumber and totalPages placeholder classes.
func buildFooterTemplate(f *Footer) string {
	if f == nil {
		return "<span></span>"
	}

	var parts []string
	if f.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	textAlign := "right"
	switch strings.ToLower(f.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 9px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		defaultFontFamily, textAlign, strings.Join(parts, " - "))
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
