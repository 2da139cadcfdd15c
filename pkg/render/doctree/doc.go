// Package doctree renders the structure of a document tree as a Graphviz
// diagram.
//
// Every element becomes a box labelled like a CSS selector (tag#id.class),
// every non-blank text node becomes a note, and edges run from parent to
// child. SVG-namespace elements are filled light blue so that namespace
// mistakes stand out. With Options.Detailed, labels also list attributes
// and the bound datum.
//
//	dot := doctree.ToDOT(doc, doc.Body(), doctree.Options{})
//	svg, err := doctree.RenderSVG(ctx, dot)
package doctree
