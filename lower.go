package pdfreport

import (
	"cmp"
	"fmt"
	"html/template"

	"github.com/alnah/go-pdfreport/internal/dateutil"
	"github.com/alnah/go-pdfreport/internal/fileutil"
	"github.com/alnah/go-pdfreport/internal/layout"
)

// lower converts the story and registry to layout data.
func (a *Assembler) lower() (*layout.Document, error) {
	css := buildRegistryCSS(a.styles) + "\n" + a.baseCSS
	if a.extraCSS != "" {
		css += "\n" + a.extraCSS
	}

	doc := &layout.Document{
		Lang:    cmp.Or(a.cfg.Lang, "en"),
		Title:   a.cfg.Title,
		Author:  a.cfg.Author,
		Subject: a.cfg.Subject,
		CSS:     layout.SanitizeCSS(css),
		Blocks:  make([]layout.Block, 0, len(a.story)),
	}

	for i, b := range a.story {
		lb, err := a.lowerBlock(b)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Kind(), err)
		}
		doc.Blocks = append(doc.Blocks, lb)
	}
	return doc, nil
}

func (a *Assembler) lowerBlock(b Block) (layout.Block, error) {
	switch v := b.(type) {
	case TitlePageBlock:
		tp, err := a.toTitlePage(v)
		return layout.Block{TitlePage: tp}, err
	case SectionBlock:
		s, err := a.toSection(v)
		return layout.Block{Section: s}, err
	case TableBlock:
		t, err := a.toTable(v)
		return layout.Block{Table: t}, err
	case ImageBlock:
		img, err := a.toImage(v)
		return layout.Block{Image: img}, err
	case PageBreakBlock:
		return layout.Block{PageBreak: true}, nil
	default:
		return layout.Block{}, fmt.Errorf("unsupported block %T", b)
	}
}

// class resolves a style name to its CSS class, failing on unknown names.
func (a *Assembler) class(name string) (string, error) {
	if _, err := a.styles.Resolve(name); err != nil {
		return "", err
	}
	return layout.StyleClass(name), nil
}

func (a *Assembler) toTitlePage(b TitlePageBlock) (*layout.TitlePage, error) {
	date, err := dateutil.Format(b.GeneratedAt, a.cfg.DateFormat)
	if err != nil {
		return nil, err
	}
	titleClass, err := a.class(StyleTitle)
	if err != nil {
		return nil, err
	}
	bodyClass, err := a.class(StyleBody)
	if err != nil {
		return nil, err
	}

	tp := &layout.TitlePage{
		Title:      b.Title,
		Company:    b.Company,
		Author:     b.Author,
		Date:       date,
		TitleClass: titleClass,
		BodyClass:  bodyClass,
	}
	if b.LogoPath != "" {
		u, err := fileutil.FileURL(b.LogoPath)
		if err != nil {
			return nil, err
		}
		tp.LogoURL = template.URL(u)
	}
	return tp, nil
}

func (a *Assembler) toSection(b SectionBlock) (*layout.Section, error) {
	headingClass, err := a.class(b.HeadingStyle)
	if err != nil {
		return nil, err
	}
	bodyClass, err := a.class(b.BodyStyle)
	if err != nil {
		return nil, err
	}

	s := &layout.Section{
		Title:        b.Title,
		HeadingClass: headingClass,
		BodyClass:    bodyClass,
	}
	switch body := b.Body.(type) {
	case Paragraph:
		s.Paragraph = body.Text
	case BulletList:
		s.Bullets = body.Items
	}
	return s, nil
}

func (a *Assembler) toTable(b TableBlock) (*layout.Table, error) {
	titleClass, err := a.class(b.TitleStyle)
	if err != nil {
		return nil, err
	}
	headerClass, err := a.class(StyleTableHeader)
	if err != nil {
		return nil, err
	}
	cellClass, err := a.class(StyleTableBody)
	if err != nil {
		return nil, err
	}

	t := &layout.Table{
		Title:       b.Title,
		Header:      b.Grid[0],
		Rows:        b.Grid[1:],
		TitleClass:  titleClass,
		HeaderClass: headerClass,
		CellClass:   cellClass,
	}
	for _, w := range b.ColumnWidths {
		t.Widths = append(t.Widths, layout.WidthStyle(w))
	}
	return t, nil
}

func (a *Assembler) toImage(b ImageBlock) (*layout.Image, error) {
	titleClass, err := a.class(b.TitleStyle)
	if err != nil {
		return nil, err
	}
	u, err := fileutil.FileURL(b.Path)
	if err != nil {
		return nil, err
	}
	return &layout.Image{
		Title:      b.Title,
		URL:        template.URL(u),
		Size:       layout.SizeStyle(b.Width, b.Height),
		TitleClass: titleClass,
	}, nil
}
