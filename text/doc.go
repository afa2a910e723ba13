// Package text provides font loading and glyph outline extraction for
// glyphraster.
//
// The loading pipeline follows a separation of concerns:
//
//   - FontSource: Heavyweight, shared font resource (parses TTF/OTF/TTC files)
//   - ParsedFont: Read-only view of one font, safe for concurrent lookups
//   - FontParser: Pluggable font parsing backend (default: golang.org/x/image)
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outline, err := text.LoadOutline(source.Parsed(), 'A')
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(outline.Bounds.Width(), outline.Bounds.Height())
//
// Outlines are expressed in font units with the Y axis pointing down,
// so a caller only has to scale and translate them into pixel space.
//
// # Pluggable Parser Backend
//
// Two parsers are registered by default:
//
//   - "ximage": golang.org/x/image/font/opentype (sfnt)
//   - "gotext": github.com/go-text/typesetting
//
// Custom parsers can be registered for alternative implementations:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
package text
