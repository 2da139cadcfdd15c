package doctree

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/selection"
)

func buildDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(`<body><div id="chart"></div></body>`)
	if err != nil {
		t.Fatal(err)
	}
	s := selection.Select(doc, "#chart").
		Append("svg").
		Append("g").
		SelectAll("rect").
		Data([]any{"x"}).
		Enter().
		Append("rect").
		Attr("class", selection.String("bar baz")).
		Attr("width", selection.Number(50))
	selection.Select(doc, "#chart").Append("p").Text(selection.String("a fairly long caption that needs truncation"))
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestToDOT(t *testing.T) {
	doc := buildDoc(t)
	dot := ToDOT(doc, doc.Body(), Options{})

	for _, want := range []string{
		"digraph G {",
		`label="body"`,
		`label="div#chart"`,
		`label="svg", fillcolor=lightblue`,
		`label="rect.bar.baz", fillcolor=lightblue`,
		`label="p"]`,
		"shape=note",
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "needs truncation") {
		t.Error("long text should be truncated")
	}
	if strings.Contains(dot, "width=50") {
		t.Error("attributes should only appear in detailed mode")
	}
}

func TestToDOTDetailed(t *testing.T) {
	doc := buildDoc(t)
	dot := ToDOT(doc, doc.Body(), Options{Detailed: true, MaxText: 100})

	for _, want := range []string{`width=50`, `datum: x`, "needs truncation"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestToDOTEdgesMatchElements(t *testing.T) {
	doc, _ := dom.ParseString("<body><ul><li>a</li><li>b</li></ul></body>")
	dot := ToDOT(nil, doc.Body(), Options{})
	// body, ul, 2 li, 2 text nodes: five parent-child edges
	if got := strings.Count(dot, "->"); got != 5 {
		t.Errorf("edges = %d, want 5:\n%s", got, dot)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 5, "much…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 62.00 116.00" width="62" height="116"`)) {
		t.Errorf("unexpected header: %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Error("svg without viewBox should be returned unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	doc := buildDoc(t)
	svg, err := RenderSVG(context.Background(), ToDOT(doc, doc.Body(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}
