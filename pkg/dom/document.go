package dom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/minid3/pkg/errors"
)

// Namespace URIs understood by CreateElementNS and reported by NamespaceURI.
const (
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
	SVGNamespace   = "http://www.w3.org/2000/svg"
)

// emptyPage is the document NewDocument starts from.
const emptyPage = "<!doctype html><html><head></head><body></body></html>"

// Document is a mutable document tree plus the data bound to its nodes.
// A Document is not safe for concurrent mutation.
type Document struct {
	root *html.Node
	data map[*html.Node]any
}

// NewDocument returns an empty HTML document with head and body elements.
func NewDocument() *Document {
	doc, err := ParseString(emptyPage)
	if err != nil {
		panic(fmt.Sprintf("dom: parse empty page: %v", err))
	}
	return doc
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html")
	}
	return &Document{root: root, data: make(map[*html.Node]any)}, nil
}

// ParseString reads an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile reads an HTML document from the file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// DocumentElement returns the <html> element, or the document node itself
// when the tree has no element child.
func (d *Document) DocumentElement() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return d.root
}

// Body returns the <body> element, or nil if there is none.
func (d *Document) Body() *html.Node {
	for c := d.DocumentElement().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			return c
		}
	}
	return nil
}

// CreateElement creates a detached element in the XHTML namespace.
func (d *Document) CreateElement(tag string) *html.Node {
	return d.CreateElementNS(XHTMLNamespace, tag)
}

// CreateElementNS creates a detached element in namespace ns. Any namespace
// other than SVGNamespace is treated as XHTML.
func (d *Document) CreateElementNS(ns, tag string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if ns == SVGNamespace {
		n.Namespace = "svg"
	}
	return n
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// AppendChild attaches child as the last child of parent and returns child.
// A child that is already attached elsewhere is moved.
func (d *Document) AppendChild(parent, child *html.Node) *html.Node {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
	return child
}

// Datum returns the value bound to n and whether one is bound.
func (d *Document) Datum(n *html.Node) (any, bool) {
	v, ok := d.data[n]
	return v, ok
}

// SetDatum binds v to n, replacing any previous binding.
func (d *Document) SetDatum(n *html.Node, v any) {
	d.data[n] = v
}

// NamespaceURI returns the namespace URI of element n.
func NamespaceURI(n *html.Node) string {
	if n != nil && n.Namespace == "svg" {
		return SVGNamespace
	}
	return XHTMLNamespace
}

// Attr returns the value of attribute name on n and whether it is set.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute name on n to value, replacing an existing value in place.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// Render writes the whole document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderNode writes n and its subtree as markup to w.
func RenderNode(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// OuterSVG renders an <svg> subtree as a standalone SVG document, adding the
// xmlns declaration if the element does not carry one.
func OuterSVG(n *html.Node) ([]byte, error) {
	if n == nil || n.Type != html.ElementNode || n.Data != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node is not an <svg> element")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	out := buf.Bytes()
	if _, ok := Attr(n, "xmlns"); !ok {
		out = bytes.Replace(out, []byte("<svg"), []byte(`<svg xmlns="`+SVGNamespace+`"`), 1)
	}
	return append(out, '\n'), nil
}
