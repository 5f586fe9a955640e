package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for layout operations.
var (
	ErrTemplateParse = errors.New("parsing report template")
	ErrTemplateExec  = errors.New("executing report template")
	ErrNilDocument   = errors.New("document is nil")
)

// Renderer turns a Document into HTML. It is safe for concurrent use once
// constructed.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// NewRenderer parses the report template source.
func NewRenderer(source string) (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			// Raw HTML stays disabled: report text comes from data files.
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"inline": r.Inline,
	}).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render executes the template for doc.
func (r *Renderer) Render(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil {
		return "", ErrNilDocument
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExec, err)
	}
	return buf.String(), nil
}

// Inline renders emphasis, strong and strikethrough inside a single line of
// text. Input that goldmark reads as block structure (lists, headings,
// several paragraphs) is escaped verbatim instead. Every input character
// reaches the output: tag-like runs such as "<Region>" stay literal text.
func (r *Renderer) Inline(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(escapeLiterals(text)), &buf); err != nil {
		return "", fmt.Errorf("rendering inline markup: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", nil
	}
	inner, ok := strings.CutPrefix(out, "<p>")
	if ok {
		inner, ok = strings.CutSuffix(inner, "</p>")
	}
	if !ok || strings.Contains(inner, "<p>") {
		return template.HTML(template.HTMLEscapeString(text)), nil
	}
	return template.HTML(inner), nil
}

// escapeLiterals backslash-escapes characters goldmark would drop or
// reinterpret. A '*' between two letters or digits is arithmetic, not
// emphasis.
func escapeLiterals(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, c := range runes {
		switch {
		case c == '<', c == '\\':
			b.WriteByte('\\')
		case c == '*' && i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1]):
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func isWordRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}
