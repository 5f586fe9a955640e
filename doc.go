// Package pdfreport assembles business reports into paginated PDF files
// using headless Chrome.
//
// # Quick Start
//
// Build an assembler bound to an output path, append blocks in reading
// order, then generate:
//
//	asm, err := pdfreport.New(pdfreport.Config{
//	    OutputPath: "out/q1.pdf",
//	    Title:      "Q1 Report",
//	    Company:    "Acme",
//	    Author:     "Finance",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = asm.AddTitlePage()
//	_ = asm.AddSection("Intro", pdfreport.Paragraph{Text: "Hello"})
//	_ = asm.AddTable([][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}})
//	_ = asm.AddChart("charts/bar.svg", pdfreport.WithTitle("Sales"))
//
//	report, err := asm.Generate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Path, report.Warnings)
//
// # Blocks
//
// A report is an ordered story of blocks: title page, section (paragraph
// or bullet list), table, image and page break. The story only grows;
// blocks are rendered in the order they were appended.
//
// Structural mistakes fail the append that caused them: an unknown style
// name returns ErrUnknownStyle, an empty section body ErrInvalidContent and
// a ragged grid ErrMalformedTable. Missing image files do not fail: the
// block is skipped and a Warning is recorded, so a report can still be
// produced when a chart could not be drawn.
//
// # Styles
//
// Presentation is driven by a StyleRegistry. It starts with the built-in
// profiles title, heading, body, table-header and table-body, coloured from
// a Palette, and carries the PageGeometry used for pagination. Register
// adds or replaces profiles; blocks refer to them by name.
//
//	reg, _ := pdfreport.NewStyleRegistry(pdfreport.DefaultPalette(), pdfreport.PageGeometry{
//	    Size:        pdfreport.PageSizeLetter,
//	    Orientation: pdfreport.OrientationLandscape,
//	    Margins:     pdfreport.UniformMargins(54),
//	})
//	_ = reg.Register("note", pdfreport.StyleProfile{FontSize: 9, Color: "#7F8C8D"})
//	asm, _ := pdfreport.New(cfg, pdfreport.WithStyleRegistry(reg))
//
// # Generation
//
// Generate is terminal. It lowers the story to HTML, prints it through
// Chrome, and writes the PDF atomically. Any failure is wrapped in
// ErrRender and leaves no file at the output path. After Generate every
// method that changes the story returns ErrAssemblerSpent.
//
// Set ROD_BROWSER_BIN to use a pre-installed Chrome. Without it, go-rod
// downloads Chromium on first use.
package pdfreport
