// Package render converts drawn charts to output formats.
//
// Charts are drawn as SVG element trees by package selection; this package
// turns the serialized SVG into raster and print formats using the external
// rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is missing, both return an UNSUPPORTED error; check
// [Available] first to degrade gracefully.
//
// The [doctree] subpackage renders the structure of a document tree itself
// as a Graphviz diagram, which is useful for inspecting what a chart script
// built.
//
// [doctree]: github.com/matzehuels/minid3/pkg/render/doctree
package render
