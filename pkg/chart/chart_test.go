package chart

import (
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dataset"
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
)

func letters(t *testing.T) []any {
	t.Helper()
	rows, err := dataset.ImportJSON(filepath.Join("testdata", "letters.json"))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	return rows
}

func query(t *testing.T, doc *dom.Document, sel string) []*html.Node {
	t.Helper()
	nodes, err := dom.QuerySelectorAll(doc.Root(), sel)
	if err != nil {
		t.Fatalf("query %q: %v", sel, err)
	}
	return nodes
}

func attr(n *html.Node, name string) string {
	v, _ := dom.Attr(n, name)
	return v
}

func TestHelloTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Template = "hello"
	doc, err := Draw(cfg, nil)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	divs := query(t, doc, "#chart > div")
	if len(divs) != 1 {
		t.Fatalf("divs = %d, want 1", len(divs))
	}
	if got := dom.TextContent(divs[0]); got != "hello world" {
		t.Errorf("text = %q, want %q", got, "hello world")
	}
}

func TestRectangleTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Template = "rectangle"
	doc, err := Draw(cfg, nil)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	rects := query(t, doc, "#chart > svg > g > rect")
	if len(rects) != 1 {
		t.Fatalf("rects = %d, want 1", len(rects))
	}
	rect := rects[0]
	for name, want := range map[string]string{"fill": "blue", "width": "50", "height": "20"} {
		if got := attr(rect, name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if dom.NamespaceURI(rect) != dom.SVGNamespace {
		t.Errorf("rect namespace = %q, want SVG", dom.NamespaceURI(rect))
	}
}

func TestBarTemplate(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "bar.toml"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Draw(cfg, letters(t))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	bars := query(t, doc, "svg rect.bar")
	if len(bars) != 14 {
		t.Fatalf("bars = %d, want 14", len(bars))
	}
	first := bars[0]
	if got := attr(first, "x"); got != "6.382978723404255" {
		t.Errorf("first bar x = %q", got)
	}
	if got := attr(first, "width"); got != "57.4468085106383" {
		t.Errorf("bar width = %q", got)
	}
	if got := attr(first, "fill"); got != DefaultFill {
		t.Errorf("bar fill = %q", got)
	}
	// The tallest bar reaches the top of the plot area.
	if attr(first, "y") != "0" || attr(first, "height") != "450" {
		t.Errorf("first bar y/height = %s/%s, want 0/450", attr(first, "y"), attr(first, "height"))
	}
	if d, ok := doc.Datum(first); !ok || !reflect.DeepEqual(d, map[string]any{"name": "E", "value": 0.12702}) {
		t.Errorf("first bar datum = %v", d)
	}

	if got := len(query(t, doc, "g.x.axis g.tick")); got != 14 {
		t.Errorf("x ticks = %d, want 14", got)
	}
	yTicks := query(t, doc, "g.y.axis g.tick text")
	if len(yTicks) != 7 {
		t.Fatalf("y ticks = %d, want 7", len(yTicks))
	}
	if got := dom.TextContent(yTicks[3]); got != "0.06" {
		t.Errorf("y tick 3 = %q, want 0.06", got)
	}

	titles := query(t, doc, "head title")
	if len(titles) != 1 || dom.TextContent(titles[0]) != cfg.Title {
		t.Error("page title missing")
	}
}

func TestBarTemplateErrors(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := Draw(cfg, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no rows err = %v, want INVALID_INPUT", err)
	}

	rows := []any{map[string]any{"label": "a", "value": 1.0}}
	if _, err := Draw(cfg, rows); !errors.Is(err, errors.ErrCodeKeyNotFound) {
		t.Errorf("missing label field err = %v, want KEY_NOT_FOUND", err)
	}

	zeros := []any{map[string]any{"name": "a", "value": 0.0}}
	if _, err := Draw(cfg, zeros); !errors.Is(err, errors.ErrCodeInvalidDomain) {
		t.Errorf("all-zero values err = %v, want INVALID_DOMAIN", err)
	}
}

func TestMountMissing(t *testing.T) {
	doc, err := NewPage("#chart", "")
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Selector = "#elsewhere"
	if err := (Hello{}).Draw(doc, cfg, nil); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestNewPage(t *testing.T) {
	doc, err := NewPage(".plot", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(query(t, doc, "body > div.plot")); got != 1 {
		t.Errorf("mount elements = %d, want 1", got)
	}

	for _, sel := range []string{"", "#", "div", "#a b", ".a.b"} {
		if _, err := NewPage(sel, ""); !errors.Is(err, errors.ErrCodeInvalidSelector) {
			t.Errorf("NewPage(%q) err = %v, want INVALID_SELECTOR", sel, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	if got := Names(); !reflect.DeepEqual(got, []string{"bar", "hello", "rectangle"}) {
		t.Errorf("Names = %v", got)
	}
	all := All()
	if len(all) != 3 || all[0].Name() != "bar" {
		t.Errorf("All = %v", all)
	}
	if _, err := Lookup("pie"); !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Lookup(pie) err = %v, want INVALID_TEMPLATE", err)
	}
}

func TestTickLabel(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0.02 * 3, "0.06"},
		{10.0, "10"},
		{"E", "E"},
	}
	for _, tt := range tests {
		if got := tickLabel(tt.in); got != tt.want {
			t.Errorf("tickLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
