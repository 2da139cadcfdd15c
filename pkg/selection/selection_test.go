package selection

import (
	"fmt"
	"testing"

	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
)

func mustParse(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func mustQuery(t *testing.T, doc *dom.Document, sel string) *html.Node {
	t.Helper()
	n, err := dom.QuerySelector(doc.Root(), sel)
	if err != nil {
		t.Fatalf("QuerySelector(%q): %v", sel, err)
	}
	if n == nil {
		t.Fatalf("QuerySelector(%q) found nothing", sel)
	}
	return n
}

func countAll(t *testing.T, doc *dom.Document, sel string) int {
	t.Helper()
	nodes, err := dom.QuerySelectorAll(doc.Root(), sel)
	if err != nil {
		t.Fatalf("QuerySelectorAll(%q): %v", sel, err)
	}
	return len(nodes)
}

func TestAppendNamespaces(t *testing.T) {
	tests := []struct {
		name   string
		build  func(s *Selection) *Selection
		query  string
		wantNS string
	}{
		{
			name:   "html element under body",
			build:  func(s *Selection) *Selection { return s.Append("div") },
			query:  "body > div",
			wantNS: dom.XHTMLNamespace,
		},
		{
			name:   "svg element under body",
			build:  func(s *Selection) *Selection { return s.Append("svg") },
			query:  "body > svg",
			wantNS: dom.SVGNamespace,
		},
		{
			name:   "svg child elements two levels down",
			build:  func(s *Selection) *Selection { return s.Append("svg").Append("g").Append("rect") },
			query:  "body > svg > g > rect",
			wantNS: dom.SVGNamespace,
		},
		{
			name:   "group under svg",
			build:  func(s *Selection) *Selection { return s.Append("svg").Append("g") },
			query:  "body > svg > g",
			wantNS: dom.SVGNamespace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.NewDocument()
			s := tt.build(Select(doc, "body"))
			if err := s.Err(); err != nil {
				t.Fatalf("chain error: %v", err)
			}
			n := mustQuery(t, doc, tt.query)
			if got := dom.NamespaceURI(n); got != tt.wantNS {
				t.Errorf("namespace = %q, want %q", got, tt.wantNS)
			}
		})
	}
}

func TestAppendToEnterUsesParentNamespace(t *testing.T) {
	doc := dom.NewDocument()
	svg := Select(doc, "body").Append("svg")
	circles := svg.SelectAll("circle").Data([]any{1, 2}).Enter().Append("circle")
	if err := circles.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	for _, n := range circles.Nodes() {
		if got := dom.NamespaceURI(n); got != dom.SVGNamespace {
			t.Errorf("circle namespace = %q, want svg", got)
		}
		if n.Parent != svg.Node() {
			t.Error("circle should be attached to the svg element")
		}
	}
}

func TestDataCreatesEnterPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		data     []any
	}{
		{"no existing nodes", 0, []any{"a", "b", "c"}},
		{"some existing nodes", 2, []any{"a", "b", "c", "d", "e"}},
		{"exactly enough nodes", 3, []any{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup := "<body>"
			for i := 0; i < tt.existing; i++ {
				markup += "<p></p>"
			}
			doc := mustParse(t, markup+"</body>")

			bound := Select(doc, "body").SelectAll("p").Data(tt.data)
			enter := bound.Enter()
			if err := enter.Err(); err != nil {
				t.Fatalf("chain error: %v", err)
			}

			want := len(tt.data) - tt.existing
			if got := enter.Size(); got != want {
				t.Fatalf("enter size = %d, want %d", got, want)
			}
			for i, slot := range enter.Groups()[0] {
				if i < tt.existing {
					if !slot.IsEmpty() {
						t.Errorf("slot %d should be empty", i)
					}
					continue
				}
				if slot.Enter() == nil {
					t.Fatalf("slot %d should be an enter placeholder", i)
				}
				if slot.Enter().Datum() != tt.data[i] {
					t.Errorf("placeholder %d datum = %v, want %v", i, slot.Enter().Datum(), tt.data[i])
				}
			}

			for i, n := range bound.Nodes() {
				d, ok := doc.Datum(n)
				if !ok || d != tt.data[i] {
					t.Errorf("node %d datum = %v (%v), want %v", i, d, ok, tt.data[i])
				}
			}
		})
	}
}

func TestDataLeavesSurplusNodes(t *testing.T) {
	doc := mustParse(t, "<body><p>1</p><p>2</p><p>3</p></body>")
	bound := Select(doc, "body").SelectAll("p").Data([]any{"x"})

	if got := bound.Enter().Size(); got != 0 {
		t.Errorf("enter size = %d, want 0", got)
	}
	if got := countAll(t, doc, "p"); got != 3 {
		t.Errorf("surplus nodes removed: %d <p> left, want 3", got)
	}
	nodes := bound.Nodes()
	if _, ok := doc.Datum(nodes[2]); ok {
		t.Error("node beyond data length should stay unbound")
	}
}

func TestDataKeepsEmptySlotsEmpty(t *testing.T) {
	doc := dom.NewDocument()
	enter := Select(doc, "#missing").Data([]any{1, 2}).Enter()
	if got := enter.Size(); got != 0 {
		t.Errorf("enter size = %d, want 0", got)
	}

	added := enter.Append("p")
	if err := added.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	if !added.Empty() {
		t.Error("append on empty enter slots should stay empty")
	}
	if got := countAll(t, doc, "p"); got != 0 {
		t.Errorf("p count = %d, want 0", got)
	}
}

func TestDataDoesNotModifyEarlierPlaceholders(t *testing.T) {
	doc := dom.NewDocument()
	enter := Select(doc, "body").SelectAll("p").Data([]any{1}).Enter()

	rebound := enter.Data([]any{99})
	if got := enter.Groups()[0][0].Enter().Datum(); got != 1 {
		t.Errorf("earlier placeholder datum = %v, want 1", got)
	}
	slot := rebound.Groups()[0][0]
	if slot.Enter() == nil || slot.Enter().Datum() != 99 {
		t.Fatalf("rebound slot = %+v, want placeholder with datum 99", slot)
	}
	if slot.Enter().Parent() != enter.Groups()[0][0].Enter().Parent() {
		t.Error("rebound placeholder should keep its parent")
	}

	rebound.Append("p")
	p := mustQuery(t, doc, "body > p")
	if d, _ := doc.Datum(p); d != 99 {
		t.Errorf("appended datum = %v, want 99", d)
	}
}

func TestEnterWithoutData(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body")
	enter := s.Enter()
	if enter.Node() != s.Node() {
		t.Error("Enter without Data should return the current groups")
	}
	enter.Append("div")
	if got := countAll(t, doc, "body > div"); got != 1 {
		t.Errorf("div count = %d, want 1", got)
	}
}

func TestAttrValues(t *testing.T) {
	tests := []struct {
		name  string
		datum any
		value Value
		want  string
	}{
		{"string", nil, String("blue"), "blue"},
		{"integer number", nil, Number(50), "50"},
		{"fractional number", nil, Number(0.5), "0.5"},
		{"function of datum", "a", Func(func(d any) string { return "item-" + d.(string) }), "item-a"},
		{"number function", 7.0, NumberFunc(func(d any) float64 { return d.(float64) * 2 }), "14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.NewDocument()
			s := Select(doc, "body").Append("div")
			if tt.datum != nil {
				doc.SetDatum(s.Node(), tt.datum)
			}
			s = s.Attr("data-v", tt.value)
			if err := s.Err(); err != nil {
				t.Fatalf("chain error: %v", err)
			}
			got, ok := dom.Attr(s.Node(), "data-v")
			if !ok || got != tt.want {
				t.Errorf("attr = %q (%v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestTextAppendsTextNode(t *testing.T) {
	doc := mustParse(t, `<body><div id="chart"></div></body>`)
	Select(doc, "#chart").Append("div").Text(String("hello world"))

	div := mustQuery(t, doc, "#chart > div")
	if got := dom.TextContent(div); got != "hello world" {
		t.Errorf("text = %q, want %q", got, "hello world")
	}
	if div.FirstChild == nil || div.FirstChild.Type != html.TextNode {
		t.Error("expected a text node child")
	}
}

func TestTextFromDatum(t *testing.T) {
	doc := dom.NewDocument()
	items := Select(doc, "body").
		SelectAll("li").
		Data([]any{"a", "b", "c"}).
		Enter().
		Append("li").
		Text(Func(func(d any) string { return fmt.Sprint(d) }))
	if err := items.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	var got string
	for _, n := range items.Nodes() {
		got += dom.TextContent(n)
	}
	if got != "abc" {
		t.Errorf("text = %q, want %q", got, "abc")
	}
}

func TestSelectPropagatesDatum(t *testing.T) {
	doc := mustParse(t, "<body><section><span></span></section></body>")
	sec := Select(doc, "section")
	doc.SetDatum(sec.Node(), "payload")

	span := sec.Select("span")
	d, ok := doc.Datum(span.Node())
	if !ok || d != "payload" {
		t.Errorf("span datum = %v (%v), want payload", d, ok)
	}
}

func TestSelectMissingIsEmpty(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "#missing").Append("div").Attr("class", String("x")).Text(String("y"))
	if err := s.Err(); err != nil {
		t.Fatalf("empty slots should not fail: %v", err)
	}
	if !s.Empty() {
		t.Error("selection should be empty")
	}
	if got := countAll(t, doc, "div"); got != 0 {
		t.Errorf("div count = %d, want 0", got)
	}
}

func TestSelectAllRegroups(t *testing.T) {
	doc := mustParse(t, `<body><ul><li></li><li></li></ul><ul><li></li></ul><ul></ul></body>`)
	lists := SelectAll(doc, "ul")
	items := lists.SelectAll("li")

	if got := len(items.Groups()); got != 3 {
		t.Fatalf("groups = %d, want 3", got)
	}
	if len(items.Parents()) != len(items.Groups()) {
		t.Fatal("groups and parents must have equal length")
	}
	for i, p := range items.Parents() {
		if p != lists.Nodes()[i] {
			t.Errorf("parent %d is not the originating <ul>", i)
		}
	}
	sizes := []int{2, 1, 0}
	for i, g := range items.Groups() {
		if len(g) != sizes[i] {
			t.Errorf("group %d size = %d, want %d", i, len(g), sizes[i])
		}
	}
}

func TestSelectAllDoesNotInheritDatum(t *testing.T) {
	doc := mustParse(t, "<body><ul><li></li></ul></body>")
	ul := Select(doc, "ul")
	doc.SetDatum(ul.Node(), "list")
	li := ul.SelectAll("li")
	if _, ok := doc.Datum(li.Node()); ok {
		t.Error("selectAll results should not inherit the parent's datum")
	}
}

func TestAttrOnPlaceholderFails(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body").SelectAll("p").Data([]any{1}).Enter().Attr("class", String("x"))
	if !errors.Is(s.Err(), errors.ErrCodeUnmaterialized) {
		t.Errorf("err = %v, want UNMATERIALIZED", s.Err())
	}
}

func TestPlaceholderNamespaceFails(t *testing.T) {
	doc := dom.NewDocument()
	enter := Select(doc, "body").SelectAll("p").Data([]any{1}).Enter()
	slot := enter.Groups()[0][0]
	if _, err := slot.NamespaceURI(); !errors.Is(err, errors.ErrCodeUnmaterialized) {
		t.Errorf("err = %v, want UNMATERIALIZED", err)
	}
}

func TestInvalidSelectorIsSticky(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body").SelectAll("[[[")
	if !errors.Is(s.Err(), errors.ErrCodeInvalidSelector) {
		t.Fatalf("err = %v, want INVALID_SELECTOR", s.Err())
	}
	s.Append("div")
	if got := countAll(t, doc, "div"); got != 0 {
		t.Errorf("operations after a failure should be no-ops, found %d div", got)
	}
}

func TestFailingValueStopsChain(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body").Append("div").Attr("x", FuncE(func(any) (string, error) {
		return "", fmt.Errorf("boom")
	}))
	if s.Err() == nil {
		t.Fatal("expected error from failing value")
	}
	if _, ok := dom.Attr(s.Node(), "x"); ok {
		t.Error("attribute should not be set after failure")
	}
}

func TestInvalidTagName(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body").Append("not a tag")
	if !errors.Is(s.Err(), errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", s.Err())
	}
}

func TestCall(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body")
	var gotArgs []any
	out := s.Call(func(sel *Selection, args ...any) {
		gotArgs = args
		sel.Append("p")
	}, "x", 2)

	if out != s {
		t.Error("Call should return the receiver")
	}
	if len(gotArgs) != 2 || gotArgs[0] != "x" || gotArgs[1] != 2 {
		t.Errorf("args = %v, want [x 2]", gotArgs)
	}
	if got := countAll(t, doc, "body > p"); got != 1 {
		t.Errorf("p count = %d, want 1", got)
	}
}

func TestCallSurfacesErrors(t *testing.T) {
	doc := dom.NewDocument()
	s := Select(doc, "body").Call(func(sel *Selection, _ ...any) {
		sel.SelectAll(":::")
	})
	if s.Err() == nil {
		t.Error("errors raised inside Call should be visible on the receiver")
	}
}

func TestStyle(t *testing.T) {
	doc := mustParse(t, `<body><div style="color: red"></div></body>`)
	s := Select(doc, "div").Style("fill", String("blue")).Style("color", String("green"))
	if err := s.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	got, _ := dom.Attr(s.Node(), "style")
	if got != "color: green; fill: blue;" {
		t.Errorf("style = %q", got)
	}
}

func TestBindTyped(t *testing.T) {
	type row struct{ Name string }
	doc := dom.NewDocument()
	s := Bind(Select(doc, "body").SelectAll("p"), []row{{"a"}, {"b"}}).
		Enter().
		Append("p").
		Text(Func(func(d any) string { return d.(row).Name }))
	if err := s.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	if got := len(s.Values()); got != 2 {
		t.Errorf("values = %d, want 2", got)
	}
}

func TestBarRowsEndToEnd(t *testing.T) {
	doc := dom.NewDocument()
	rows := make([]any, 14)
	for i := range rows {
		rows[i] = map[string]any{"name": fmt.Sprintf("r%d", i), "value": float64(i)}
	}

	bars := Select(doc, "body").
		Append("svg").
		Append("g").
		SelectAll(".bar").
		Data(rows).
		Enter().
		Append("rect").
		Attr("class", String("bar"))
	if err := bars.Err(); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	if got := countAll(t, doc, "svg rect.bar"); got != 14 {
		t.Errorf("rect.bar count = %d, want 14", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{150, "150"},
		{-6, "-6"},
		{0.5, "0.5"},
		{400.5, "400.5"},
		{57.4468085106383, "57.4468085106383"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
