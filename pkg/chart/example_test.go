package chart_test

import (
	"fmt"

	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/dom"
)

func ExampleDraw() {
	cfg := chart.DefaultConfig()
	rows := []any{
		map[string]any{"name": "a", "value": 10.0},
		map[string]any{"name": "b", "value": 5.0},
		map[string]any{"name": "c", "value": 2.5},
	}

	doc, err := chart.Draw(cfg, rows)
	if err != nil {
		fmt.Println(err)
		return
	}

	bars, _ := dom.QuerySelectorAll(doc.Root(), "rect.bar")
	for _, b := range bars {
		d, _ := doc.Datum(b)
		x, _ := dom.Attr(b, "x")
		y, _ := dom.Attr(b, "y")
		h, _ := dom.Attr(b, "height")
		fmt.Println(d.(map[string]any)["name"], x, y, h)
	}
	// Output:
	// a 29.032258064516128 0 450
	// b 319.35483870967744 225 225
	// c 609.6774193548387 337.5 112.5
}

func ExampleDraw_hello() {
	cfg := chart.DefaultConfig()
	cfg.Template = "hello"

	doc, err := chart.Draw(cfg, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	div, _ := dom.QuerySelector(doc.Root(), "#chart > div")
	fmt.Println(dom.TextContent(div))
	// Output: hello world
}
