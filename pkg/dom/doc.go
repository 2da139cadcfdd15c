// Package dom provides the host document tree that selections operate on.
//
// # Overview
//
// A [Document] wraps a parsed [golang.org/x/net/html] tree and supplies the
// primitives the selection engine needs:
//
//   - Query a single descendant or all descendants by CSS selector
//   - Create elements in the XHTML or SVG namespace, and text nodes
//   - Append children, read and write attributes and inline styles
//   - Serialize the tree (or a standalone SVG subtree) back to markup
//
// Selector matching is delegated to github.com/ericchiang/css; inline style
// declarations are parsed with github.com/aymerick/douceur.
//
// # Bound data
//
// Nodes can carry an opaque datum. The datum lives in a table on the
// Document, keyed by node pointer, so the tree itself stays a plain
// x/net/html tree that renders without extra attributes:
//
//	doc := dom.NewDocument()
//	div := doc.CreateElement("div")
//	doc.SetDatum(div, map[string]any{"name": "a"})
//	d, ok := doc.Datum(div)
//
// # Namespaces
//
// x/net/html records foreign content with a short namespace name ("svg").
// [NamespaceURI] maps that back to the URI form used by the DOM:
// [XHTMLNamespace] for ordinary elements and [SVGNamespace] for SVG.
package dom
