package pdfreport

import (
	"slices"
	"time"
)

// BlockKind names a block variant. The values match the data-block
// attributes in the rendered HTML.
type BlockKind string

// Block kinds.
const (
	KindTitlePage BlockKind = "title-page"
	KindSection   BlockKind = "section"
	KindTable     BlockKind = "table"
	KindImage     BlockKind = "image"
	KindPageBreak BlockKind = "page-break"
)

// Block is one unit of the story. The set of implementations is closed.
type Block interface {
	Kind() BlockKind
	isBlock()
}

// TitlePageBlock is the report cover. An empty LogoPath means no logo.
type TitlePageBlock struct {
	LogoPath    string
	Title       string
	Company     string
	Author      string
	GeneratedAt time.Time
}

// SectionBlock is a heading followed by a paragraph or a bullet list.
type SectionBlock struct {
	Title        string
	Body         SectionBody
	HeadingStyle string
	BodyStyle    string
}

// TableBlock is a grid whose first row is the header.
type TableBlock struct {
	Title        string
	Grid         [][]string
	ColumnWidths []float64 // points; nil lets the engine size columns
	TitleStyle   string
}

// ImageBlock is a captioned picture scaled into Width x Height points.
type ImageBlock struct {
	Title      string
	Path       string
	Width      float64
	Height     float64
	TitleStyle string
}

// PageBreakBlock forces the next block onto a new page.
type PageBreakBlock struct{}

func (TitlePageBlock) Kind() BlockKind { return KindTitlePage }
func (SectionBlock) Kind() BlockKind   { return KindSection }
func (TableBlock) Kind() BlockKind     { return KindTable }
func (ImageBlock) Kind() BlockKind     { return KindImage }
func (PageBreakBlock) Kind() BlockKind { return KindPageBreak }

func (TitlePageBlock) isBlock() {}
func (SectionBlock) isBlock()   {}
func (TableBlock) isBlock()     {}
func (ImageBlock) isBlock()     {}
func (PageBreakBlock) isBlock() {}

// SectionBody is either a Paragraph or a BulletList.
type SectionBody interface {
	isSectionBody()
}

// Paragraph is a single block of text. Inline **strong** and *emphasis*
// markers are honoured.
type Paragraph struct {
	Text string
}

// BulletList is an ordered list of items rendered as bullets.
type BulletList struct {
	Items []string
}

func (Paragraph) isSectionBody()  {}
func (BulletList) isSectionBody() {}

// cloneBlock copies the slices a caller could otherwise mutate after append.
func cloneBlock(b Block) Block {
	switch v := b.(type) {
	case SectionBlock:
		if list, ok := v.Body.(BulletList); ok {
			v.Body = BulletList{Items: slices.Clone(list.Items)}
		}
		return v
	case TableBlock:
		v.Grid = cloneGrid(v.Grid)
		v.ColumnWidths = slices.Clone(v.ColumnWidths)
		return v
	default:
		return b
	}
}

func cloneGrid(grid [][]string) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = slices.Clone(row)
	}
	return out
}
