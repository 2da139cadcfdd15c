package axis

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/scale"
	"github.com/matzehuels/minid3/pkg/selection"
)

func axisRoot(t *testing.T) (*dom.Document, *selection.Selection) {
	t.Helper()
	doc := dom.NewDocument()
	g := selection.Select(doc, "body").Append("svg").Append("g")
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	return doc, g
}

func attr(t *testing.T, n *html.Node, name string) string {
	t.Helper()
	v, ok := dom.Attr(n, name)
	if !ok {
		t.Fatalf("<%s> has no %q attribute", n.Data, name)
	}
	return v
}

func ticks(t *testing.T, root *html.Node) []*html.Node {
	t.Helper()
	nodes, err := dom.QuerySelectorAll(root, "g.tick")
	if err != nil {
		t.Fatal(err)
	}
	return nodes
}

func TestLeftAxis(t *testing.T) {
	doc, g := axisRoot(t)
	y := scale.NewLinear().Domain(0, 20).Range(200, 0)

	out := g.Call(Left(y).Draw)
	if err := out.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	root := g.Node()

	for name, want := range map[string]string{
		"fill":        "none",
		"font-size":   "10",
		"font-family": "sans-serif",
		"text-anchor": "end",
	} {
		if got := attr(t, root, name); got != want {
			t.Errorf("root %s = %q, want %q", name, got, want)
		}
	}

	path, err := dom.QuerySelector(root, "path.domain")
	if err != nil || path == nil {
		t.Fatalf("domain path missing: %v", err)
	}
	if got := attr(t, path, "d"); got != "M-6,200.5 H0.5 V0.5 H-6" {
		t.Errorf("path d = %q", got)
	}
	if got := attr(t, path, "stroke"); got != "currentColor" {
		t.Errorf("path stroke = %q", got)
	}
	if dom.NamespaceURI(path) != dom.SVGNamespace {
		t.Error("path should be in the SVG namespace")
	}

	tks := ticks(t, root)
	if len(tks) != 5 {
		t.Fatalf("ticks = %d, want 5", len(tks))
	}
	wantTransforms := []string{
		"translate(0, 200)", "translate(0, 150)", "translate(0, 100)", "translate(0, 50)", "translate(0, 0)",
	}
	wantLabels := []string{"0", "5", "10", "15", "20"}
	for i, tk := range tks {
		if got := attr(t, tk, "transform"); got != wantTransforms[i] {
			t.Errorf("tick %d transform = %q, want %q", i, got, wantTransforms[i])
		}
		if got := attr(t, tk, "opacity"); got != "1" {
			t.Errorf("tick %d opacity = %q", i, got)
		}
		line, _ := dom.QuerySelector(tk, "line")
		if line == nil || attr(t, line, "x2") != "-6" {
			t.Errorf("tick %d line missing or wrong x2", i)
		}
		text, _ := dom.QuerySelector(tk, "text")
		if text == nil {
			t.Fatalf("tick %d has no label", i)
		}
		if got := dom.TextContent(text); got != wantLabels[i] {
			t.Errorf("tick %d label = %q, want %q", i, got, wantLabels[i])
		}
		if attr(t, text, "x") != "-9" || attr(t, text, "dy") != "0.32em" {
			t.Errorf("tick %d label placement wrong", i)
		}
	}
	_ = doc
}

func TestBottomAxis(t *testing.T) {
	_, g := axisRoot(t)
	x := scale.NewBand().Domain("a", "b", "c").Range(0, 300)

	Bottom(x).Render(g)
	if err := g.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	root := g.Node()

	if got := attr(t, root, "text-anchor"); got != "middle" {
		t.Errorf("text-anchor = %q, want middle", got)
	}
	path, _ := dom.QuerySelector(root, "path.domain")
	if path == nil {
		t.Fatal("domain path missing")
	}
	if got := attr(t, path, "d"); got != "M0.5,6 V0.5 H300.5 V6" {
		t.Errorf("path d = %q", got)
	}

	tks := ticks(t, root)
	want := []struct{ transform, label string }{
		{"translate(50, 0)", "a"},
		{"translate(150, 0)", "b"},
		{"translate(250, 0)", "c"},
	}
	if len(tks) != len(want) {
		t.Fatalf("ticks = %d, want %d", len(tks), len(want))
	}
	for i, tk := range tks {
		if got := attr(t, tk, "transform"); got != want[i].transform {
			t.Errorf("tick %d transform = %q, want %q", i, got, want[i].transform)
		}
		line, _ := dom.QuerySelector(tk, "line")
		if line == nil || attr(t, line, "y2") != "6" {
			t.Errorf("tick %d line missing or wrong y2", i)
		}
		text, _ := dom.QuerySelector(tk, "text")
		if text == nil || dom.TextContent(text) != want[i].label {
			t.Errorf("tick %d label wrong", i)
			continue
		}
		if attr(t, text, "y") != "9" || attr(t, text, "dy") != "0.71em" {
			t.Errorf("tick %d label placement wrong", i)
		}
	}
}

func TestAxisZeroWidthDomain(t *testing.T) {
	_, g := axisRoot(t)
	y := scale.NewLinear().Domain(5, 5).Range(100, 0)

	Left(y).Render(g)
	if !errors.Is(g.Err(), errors.ErrCodeInvalidDomain) {
		t.Errorf("err = %v, want INVALID_DOMAIN", g.Err())
	}
}

func TestAxisTickFormat(t *testing.T) {
	_, g := axisRoot(t)
	y := scale.NewLinear().Domain(0, 5).Range(50, 0)

	Left(y).TickFormat(func(v any) string { return "$" + selection.FormatNumber(v.(float64)) }).Render(g)
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	labels, _ := dom.QuerySelectorAll(g.Node(), "text")
	if len(labels) != 2 || dom.TextContent(labels[1]) != "$5" {
		t.Errorf("unexpected labels: %d", len(labels))
	}
}

func TestAxisOnEmptyRoot(t *testing.T) {
	doc := dom.NewDocument()
	root := selection.Select(doc, "#missing")
	Left(scale.NewLinear().Domain(0, 10)).Render(root)
	if err := root.Err(); err != nil {
		t.Errorf("empty root should be a no-op, got %v", err)
	}
	if n, _ := dom.QuerySelector(doc.Root(), "path"); n != nil {
		t.Error("nothing should be drawn")
	}
}

func TestOrientationString(t *testing.T) {
	if OrientLeft.String() != "left" || OrientBottom.String() != "bottom" {
		t.Error("unexpected orientation names")
	}
}
