package dom

import (
	"sync"

	"github.com/ericchiang/css"
	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/errors"
)

// selectors memoises parsed selectors; css.Selector is read-only once parsed.
var selectors sync.Map // map[string]*css.Selector

func compile(sel string) (*css.Selector, error) {
	if s, ok := selectors.Load(sel); ok {
		return s.(*css.Selector), nil
	}
	s, err := css.Parse(sel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSelector, err, "parse selector %q", sel)
	}
	selectors.Store(sel, s)
	return s, nil
}

// QuerySelectorAll returns the descendants of n matching sel, in document order.
// n itself is never part of the result.
func QuerySelectorAll(n *html.Node, sel string) ([]*html.Node, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	matched := make(map[*html.Node]bool)
	for _, m := range s.Select(n) {
		matched[m] = true
	}
	delete(matched, n)
	if len(matched) == 0 {
		return nil, nil
	}

	out := make([]*html.Node, 0, len(matched))
	walk(n, func(c *html.Node) bool {
		if matched[c] {
			out = append(out, c)
		}
		return len(out) < len(matched)
	})
	return out, nil
}

// QuerySelector returns the first descendant of n matching sel, or nil.
func QuerySelector(n *html.Node, sel string) (*html.Node, error) {
	all, err := QuerySelectorAll(n, sel)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// walk visits the descendants of n in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}
