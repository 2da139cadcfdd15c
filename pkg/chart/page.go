package chart

import (
	"strings"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/selection"
)

// NewPage returns an empty HTML page whose body holds a single <div> that
// selector matches. Only "#id" and ".class" selectors are supported.
// A non-empty title is written to <head><title>.
func NewPage(selector, title string) (*dom.Document, error) {
	var attr, val string
	switch {
	case strings.HasPrefix(selector, "#") && len(selector) > 1:
		attr, val = "id", selector[1:]
	case strings.HasPrefix(selector, ".") && len(selector) > 1:
		attr, val = "class", selector[1:]
	default:
		return nil, errors.New(errors.ErrCodeInvalidSelector, "mount selector %q must be #id or .class", selector)
	}
	if strings.ContainsAny(val, " >+~[]:.#,") {
		return nil, errors.New(errors.ErrCodeInvalidSelector, "mount selector %q must be a single id or class", selector)
	}

	doc := dom.NewDocument()
	if title != "" {
		selection.Select(doc, "head").Append("title").Text(selection.String(title))
	}
	div := selection.Select(doc, "body").
		Append("div").
		Attr(attr, selection.String(val))
	if err := div.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
