// Package render turns DOT documents into files.
//
// # Formats
//
// [FormatDOT] writes the document unchanged. [FormatSVG] and [FormatJPG] are
// laid out by the Graphviz library bundled with go-graphviz, so no Graphviz
// installation is needed. [FormatPNG] and [FormatPDF] convert the SVG with
// the external rsvg-convert tool (from librsvg), which gives sharper text
// and supports scaling:
//
//	svg, err := render.Render(ctx, dotText, render.FormatSVG, render.Options{})
//	pdf, err := render.Render(ctx, dotText, render.FormatPDF, render.Options{})
//	png, err := render.Render(ctx, dotText, render.FormatPNG, render.Options{Scale: 2})
//
// [FormatFromPath] infers the format from an output file extension.
package render
