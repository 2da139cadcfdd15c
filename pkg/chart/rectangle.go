package chart

import (
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/selection"
)

// Rectangle draws a single blue 50x20 rectangle in svg > g > rect.
type Rectangle struct{}

func (Rectangle) Name() string        { return "rectangle" }
func (Rectangle) Description() string { return "Draw a blue 50x20 rectangle" }
func (Rectangle) NeedsData() bool     { return false }

func (Rectangle) Draw(doc *dom.Document, cfg Config, _ []any) error {
	root, err := mount(doc, cfg.Selector)
	if err != nil {
		return err
	}
	return root.
		Append("svg").
		Attr("width", selection.Number(cfg.Width)).
		Attr("height", selection.Number(cfg.Height)).
		Append("g").
		Append("rect").
		Attr("fill", selection.String("blue")).
		Attr("width", selection.Number(50)).
		Attr("height", selection.Number(20)).
		Err()
}
