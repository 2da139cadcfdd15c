package chart

import (
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/selection"
)

// Hello appends a <div> holding Config.Text.
type Hello struct{}

func (Hello) Name() string        { return "hello" }
func (Hello) Description() string { return "Insert a line of text into the page" }
func (Hello) NeedsData() bool     { return false }

func (Hello) Draw(doc *dom.Document, cfg Config, _ []any) error {
	root, err := mount(doc, cfg.Selector)
	if err != nil {
		return err
	}
	return root.Append("div").Text(selection.String(cfg.Text)).Err()
}
