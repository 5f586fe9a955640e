// Package layout lowers an ordered list of report blocks into a single HTML
// document ready for the print engine.
//
// The document is produced by an html/template loaded through
// internal/assets. Every block variant maps to one struct field on Block so
// the template can switch on whichever field is set. Paragraph and bullet
// text may carry inline Markdown emphasis, which goldmark renders without
// passing raw HTML through.
//
// Pagination, striping and image scaling are left to CSS: this package only
// produces markup.
package layout
