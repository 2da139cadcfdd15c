package doctree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/render"
)

// DefaultMaxText is the text node label length used when Options.MaxText is 0.
const DefaultMaxText = 24

// Options configures tree rendering.
type Options struct {
	// Detailed adds attributes and bound data to element labels.
	Detailed bool
	// MaxText truncates text node labels. Zero means DefaultMaxText.
	MaxText int
}

// ToDOT converts the subtree rooted at n to Graphviz DOT. doc supplies the
// bound data shown with Options.Detailed and may be nil otherwise.
func ToDOT(doc *dom.Document, n *html.Node, opts Options) string {
	if opts.MaxText <= 0 {
		opts.MaxText = DefaultMaxText
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	w := &writer{buf: &buf, doc: doc, opts: opts, ids: make(map[*html.Node]string)}
	w.node(n)
	buf.WriteString("\n")
	buf.WriteString(w.edges.String())
	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf   *bytes.Buffer
	edges bytes.Buffer
	doc   *dom.Document
	opts  Options
	ids   map[*html.Node]string
}

func (w *writer) id(n *html.Node) string {
	if id, ok := w.ids[n]; ok {
		return id
	}
	id := "n" + strconv.Itoa(len(w.ids))
	w.ids[n] = id
	return id
}

// node writes n and its descendants. It returns false when n was skipped.
func (w *writer) node(n *html.Node) bool {
	switch n.Type {
	case html.DocumentNode:
		fmt.Fprintf(w.buf, "  %s [label=%q, shape=folder];\n", w.id(n), "#document")
	case html.ElementNode:
		attrs := []string{fmt.Sprintf("label=%q", w.elementLabel(n))}
		if dom.NamespaceURI(n) == dom.SVGNamespace {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(w.buf, "  %s [%s];\n", w.id(n), strings.Join(attrs, ", "))
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return false
		}
		fmt.Fprintf(w.buf, "  %s [label=%q, shape=note, fillcolor=lightyellow];\n", w.id(n), truncate(text, w.opts.MaxText))
	default:
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if w.node(c) {
			fmt.Fprintf(&w.edges, "  %s -> %s;\n", w.id(n), w.id(c))
		}
	}
	return true
}

func (w *writer) elementLabel(n *html.Node) string {
	var b strings.Builder
	b.WriteString(n.Data)
	if id, ok := dom.Attr(n, "id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := dom.Attr(n, "class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteString("." + c)
		}
	}
	if !w.opts.Detailed {
		return b.String()
	}

	for _, a := range n.Attr {
		if a.Key == "id" || a.Key == "class" {
			continue
		}
		fmt.Fprintf(&b, "\n%s=%s", a.Key, truncate(a.Val, w.opts.MaxText))
	}
	if w.doc != nil {
		if d, ok := w.doc.Datum(n); ok {
			fmt.Fprintf(&b, "\ndatum: %s", truncate(fmt.Sprint(d), w.opts.MaxText))
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
