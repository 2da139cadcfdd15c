package selection_test

import (
	"fmt"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/selection"
)

func Example() {
	doc, _ := dom.ParseString(`<div id="chart"></div>`)

	selection.Select(doc, "#chart").
		Append("div").
		Text(selection.String("hello world"))

	div, _ := dom.QuerySelector(doc.Root(), "#chart > div")
	fmt.Println(dom.TextContent(div))
	// Output: hello world
}

func ExampleSelection_Data() {
	doc := dom.NewDocument()

	bars := selection.Select(doc, "body").
		Append("svg").
		SelectAll("rect").
		Data([]any{4.0, 8.0, 15.0}).
		Enter().
		Append("rect").
		Attr("width", selection.NumberFunc(func(d any) float64 { return d.(float64) * 10 }))
	if err := bars.Err(); err != nil {
		fmt.Println(err)
		return
	}

	for _, n := range bars.Nodes() {
		w, _ := dom.Attr(n, "width")
		fmt.Println(n.Data, w, dom.NamespaceURI(n))
	}
	// Output:
	// rect 40 http://www.w3.org/2000/svg
	// rect 80 http://www.w3.org/2000/svg
	// rect 150 http://www.w3.org/2000/svg
}
