package layout

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// Document is the template data for one report.
type Document struct {
	Lang    string
	Title   string
	Author  string
	Subject string
	CSS     template.CSS
	Blocks  []Block
}

// Block holds exactly one populated variant.
type Block struct {
	TitlePage *TitlePage
	Section   *Section
	Table     *Table
	Image     *Image
	PageBreak bool
}

// TitlePage is the cover of the report.
type TitlePage struct {
	LogoURL    template.URL
	Title      string
	Company    string
	Date       string
	Author     string
	TitleClass string
	BodyClass  string
}

// Section is a heading followed by either a paragraph or a bullet list.
// Bullets take precedence when both are set.
type Section struct {
	Title        string
	Paragraph    string
	Bullets      []string
	HeadingClass string
	BodyClass    string
}

// Table is a header row plus body rows.
type Table struct {
	Title       string
	Header      []string
	Rows        [][]string
	Widths      []template.CSS
	TitleClass  string
	HeaderClass string
	CellClass   string
}

// Image is a captioned picture referenced by file URL.
type Image struct {
	Title      string
	URL        template.URL
	Size       template.CSS
	TitleClass string
}

// StyleClass returns the CSS class emitted for a named style profile.
func StyleClass(name string) string {
	return "style-" + name
}

// WidthStyle returns the inline style for a fixed column width in points.
func WidthStyle(pt float64) template.CSS {
	return template.CSS("width: " + formatPt(pt))
}

// SizeStyle returns the inline style bounding an image in points. The
// picture keeps its aspect ratio inside the box.
func SizeStyle(width, height float64) template.CSS {
	return template.CSS(fmt.Sprintf("width: %s; height: %s; object-fit: contain",
		formatPt(width), formatPt(height)))
}

// SanitizeCSS prevents a stylesheet from closing the surrounding style element.
func SanitizeCSS(css string) template.CSS {
	return template.CSS(strings.ReplaceAll(css, "</", `<\/`))
}

func formatPt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
