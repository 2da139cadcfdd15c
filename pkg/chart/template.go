package chart

import (
	"sort"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/selection"
)

// Template draws one kind of chart into a page.
type Template interface {
	// Name is the registry key, also used in Config.Template.
	Name() string
	// Description is a one-line summary for listings.
	Description() string
	// NeedsData reports whether Draw requires dataset rows.
	NeedsData() bool
	// Draw renders cfg and rows under the element matching cfg.Selector.
	Draw(doc *dom.Document, cfg Config, rows []any) error
}

var registry = map[string]Template{}

func register(t Template) { registry[t.Name()] = t }

func init() {
	register(Hello{})
	register(Rectangle{})
	register(Bar{})
}

// Lookup returns the template registered under name.
func Lookup(name string) (Template, error) {
	t, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "unknown template %q (available: %v)", name, Names())
	}
	return t, nil
}

// Names returns the registered template names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns the registered templates sorted by name.
func All() []Template {
	names := Names()
	out := make([]Template, len(names))
	for i, n := range names {
		out[i] = registry[n]
	}
	return out
}

// Draw builds a page for cfg and runs its template against rows.
func Draw(cfg Config, rows []any) (*dom.Document, error) {
	t, err := Lookup(cfg.Template)
	if err != nil {
		return nil, err
	}
	if t.NeedsData() && rows == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "template %q needs a dataset", t.Name())
	}
	doc, err := NewPage(cfg.Selector, cfg.Title)
	if err != nil {
		return nil, err
	}
	if err := t.Draw(doc, cfg, rows); err != nil {
		return nil, err
	}
	return doc, nil
}

// mount selects the element matching selector, failing when there is none.
func mount(doc *dom.Document, selector string) (*selection.Selection, error) {
	s := selection.Select(doc, selector)
	if err := s.Err(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, errors.New(errors.ErrCodeNotFound, "no element matches %q", selector)
	}
	return s, nil
}
