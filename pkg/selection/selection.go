package selection

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
)

// SelectorFunc picks the node that replaces slot s in a SelectFunc result.
// d is the slot's bound datum (nil if none), i its index in group.
// Returning a nil node leaves the result slot empty.
type SelectorFunc func(s Slot, d any, i int, group []Slot) (*html.Node, error)

// chain is shared by every selection derived from one root and records the
// first error raised anywhere in it.
type chain struct {
	err error
}

func (c *chain) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Selection is an immutable list of slot groups with one parent per group.
// Invariant: len(groups) == len(parents).
type Selection struct {
	doc     *dom.Document
	groups  [][]Slot
	parents []*html.Node
	enter   [][]Slot
	chain   *chain
}

// Select starts a chain with the first element in doc matching selector.
// The group's parent is the document element. No match gives one empty slot.
func Select(doc *dom.Document, selector string) *Selection {
	s := &Selection{
		doc:     doc,
		groups:  [][]Slot{{{}}},
		parents: []*html.Node{doc.DocumentElement()},
		chain:   &chain{},
	}
	n, err := dom.QuerySelector(doc.Root(), selector)
	if err != nil {
		s.chain.fail(err)
		return s
	}
	s.groups[0][0] = NodeSlot(n)
	return s
}

// SelectNode starts a chain with the single node n.
func SelectNode(doc *dom.Document, n *html.Node) *Selection {
	return &Selection{
		doc:     doc,
		groups:  [][]Slot{{NodeSlot(n)}},
		parents: []*html.Node{doc.DocumentElement()},
		chain:   &chain{},
	}
}

// SelectAll starts a chain with every element in doc matching selector,
// as one group whose parent is the document element.
func SelectAll(doc *dom.Document, selector string) *Selection {
	s := &Selection{
		doc:     doc,
		groups:  [][]Slot{nil},
		parents: []*html.Node{doc.DocumentElement()},
		chain:   &chain{},
	}
	nodes, err := dom.QuerySelectorAll(doc.Root(), selector)
	if err != nil {
		s.chain.fail(err)
		return s
	}
	s.groups[0] = slots(nodes)
	return s
}

func slots(nodes []*html.Node) []Slot {
	out := make([]Slot, len(nodes))
	for i, n := range nodes {
		out[i] = NodeSlot(n)
	}
	return out
}

// derive returns a selection sharing the receiver's document and chain.
func (s *Selection) derive(groups [][]Slot, parents []*html.Node) *Selection {
	return &Selection{doc: s.doc, groups: groups, parents: parents, chain: s.chain}
}

// Err returns the first error raised anywhere in the chain.
func (s *Selection) Err() error { return s.chain.err }

// Document returns the document the selection operates on.
func (s *Selection) Document() *dom.Document { return s.doc }

// Select replaces every non-empty slot with its first descendant matching
// selector. Bound data propagate to the selected nodes. Group structure and
// parents are preserved.
func (s *Selection) Select(selector string) *Selection {
	return s.SelectFunc(func(slot Slot, _ any, _ int, _ []Slot) (*html.Node, error) {
		if slot.node == nil {
			return nil, errors.New(errors.ErrCodeUnmaterialized, "select %q on enter placeholder", selector)
		}
		return dom.QuerySelector(slot.node, selector)
	})
}

// SelectFunc replaces every non-empty slot with the node fn returns for it.
// When the slot carries a bound datum it is bound to the returned node too.
func (s *Selection) SelectFunc(fn SelectorFunc) *Selection {
	if s.chain.err != nil {
		return s.derive(s.groups, s.parents)
	}

	subgroups := make([][]Slot, len(s.groups))
	for gi, group := range s.groups {
		sub := make([]Slot, len(group))
		for i, slot := range group {
			if slot.IsEmpty() {
				continue
			}
			d, bound := slot.datum(s.doc)
			n, err := fn(slot, d, i, group)
			if err != nil {
				s.chain.fail(err)
				return s.derive(s.groups, s.parents)
			}
			if n == nil {
				continue
			}
			if bound {
				s.doc.SetDatum(n, d)
			}
			sub[i] = NodeSlot(n)
		}
		subgroups[gi] = sub
	}
	return s.derive(subgroups, s.parents)
}

// SelectAll returns one group per non-empty node of the receiver, holding
// that node's descendants matching selector; the node becomes the group's
// parent. The new nodes do not inherit bound data.
func (s *Selection) SelectAll(selector string) *Selection {
	if s.chain.err != nil {
		return s.derive(s.groups, s.parents)
	}

	var (
		subgroups [][]Slot
		parents   []*html.Node
	)
	for _, group := range s.groups {
		for _, slot := range group {
			if slot.IsEmpty() {
				continue
			}
			if slot.node == nil {
				s.chain.fail(errors.New(errors.ErrCodeUnmaterialized, "selectAll %q on enter placeholder", selector))
				return s.derive(s.groups, s.parents)
			}
			nodes, err := dom.QuerySelectorAll(slot.node, selector)
			if err != nil {
				s.chain.fail(err)
				return s.derive(s.groups, s.parents)
			}
			subgroups = append(subgroups, slots(nodes))
			parents = append(parents, slot.node)
		}
	}
	return s.derive(subgroups, parents)
}

// Data binds values to the slots of every group by index. Slot j of a group
// receives values[j]; indices at or beyond len(group) become enter
// placeholders owned by the group's parent. Empty slots stay empty, and
// nodes beyond len(values) are left untouched. Placeholders already in a
// group are replaced by new ones, so the receiver is not modified. The
// returned selection remembers the new placeholders for Enter.
func (s *Selection) Data(values []any) *Selection {
	if s.chain.err != nil {
		return s.derive(s.groups, s.parents)
	}

	groups := make([][]Slot, len(s.groups))
	enter := make([][]Slot, len(s.groups))
	for gi, group := range s.groups {
		groups[gi] = append([]Slot(nil), group...)
		enter[gi] = make([]Slot, len(values))
		for j, v := range values {
			switch {
			case j < len(group) && group[j].node != nil:
				s.doc.SetDatum(group[j].node, v)
			case j < len(group) && group[j].enter != nil:
				e := group[j].enter
				groups[gi][j] = EnterSlot(&EnterNode{doc: e.doc, parent: e.parent, datum: v})
			case j < len(group):
				continue
			default:
				enter[gi][j] = EnterSlot(&EnterNode{doc: s.doc, parent: s.parents[gi], datum: v})
			}
		}
	}
	out := s.derive(groups, s.parents)
	out.enter = enter
	return out
}

// Bind is Data for a typed slice.
func Bind[T any](s *Selection, values []T) *Selection {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return s.Data(vs)
}

// Enter returns the placeholders computed by the most recent Data call.
// Without a prior Data call it returns the current groups unchanged.
func (s *Selection) Enter() *Selection {
	if s.enter == nil {
		return s.derive(s.groups, s.parents)
	}
	return s.derive(s.enter, s.parents)
}

// Append creates a tag element for every non-empty slot and attaches it to
// the slot's node, or to the owning parent for enter placeholders. The new
// element is created in the SVG namespace when tag is "svg" or the
// attaching parent is an SVG element, and in the XHTML namespace otherwise.
// Bound data propagate to the new elements.
func (s *Selection) Append(tag string) *Selection {
	if s.chain.err != nil {
		return s.derive(s.groups, s.parents)
	}
	if err := errors.ValidateTagName(tag); err != nil {
		s.chain.fail(err)
		return s.derive(s.groups, s.parents)
	}

	return s.SelectFunc(func(slot Slot, _ any, _ int, _ []Slot) (*html.Node, error) {
		c := slot.container(s.doc)
		parent := c.ParentNode()
		if parent == nil {
			return nil, errors.New(errors.ErrCodeInternal, "append %q: slot has no parent", tag)
		}
		ns := dom.XHTMLNamespace
		if tag == "svg" || dom.NamespaceURI(parent) == dom.SVGNamespace {
			ns = dom.SVGNamespace
		}
		return c.AppendChild(s.doc.CreateElementNS(ns, tag)), nil
	})
}

// Each calls fn for every node with its bound datum and index in its group.
// Empty slots are skipped; a placeholder slot stops the chain.
func (s *Selection) Each(fn func(n *html.Node, d any, i int) error) *Selection {
	if s.chain.err != nil {
		return s.derive(s.groups, s.parents)
	}

	for _, group := range s.groups {
		for i, slot := range group {
			if slot.IsEmpty() {
				continue
			}
			if slot.node == nil {
				s.chain.fail(errors.New(errors.ErrCodeUnmaterialized, "enter placeholder at index %d has no node; append one first", i))
				return s.derive(s.groups, s.parents)
			}
			d, _ := s.doc.Datum(slot.node)
			if err := fn(slot.node, d, i); err != nil {
				s.chain.fail(err)
				return s.derive(s.groups, s.parents)
			}
		}
	}
	return s.derive(s.groups, s.parents)
}

// Attr sets attribute name on every node to v resolved against its datum.
func (s *Selection) Attr(name string, v Value) *Selection {
	if err := errors.ValidateAttrName(name); err != nil && s.chain.err == nil {
		s.chain.fail(err)
	}
	return s.Each(func(n *html.Node, d any, _ int) error {
		val, err := v.Resolve(d)
		if err != nil {
			return valueError(err, "attr %q", name)
		}
		dom.SetAttr(n, name, val)
		return nil
	})
}

// valueError keeps coded errors from value callbacks as they are and wraps
// anything else as INVALID_INPUT.
func valueError(err error, format string, args ...any) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, format, args...)
}

// Text appends a text node holding v resolved against the datum to every node.
func (s *Selection) Text(v Value) *Selection {
	return s.Each(func(n *html.Node, d any, _ int) error {
		content, err := v.Resolve(d)
		if err != nil {
			return valueError(err, "text")
		}
		s.doc.AppendChild(n, s.doc.CreateTextNode(content))
		return nil
	})
}

// Style sets inline CSS property name on every node to v resolved against its datum.
func (s *Selection) Style(name string, v Value) *Selection {
	return s.Each(func(n *html.Node, d any, _ int) error {
		val, err := v.Resolve(d)
		if err != nil {
			return valueError(err, "style %q", name)
		}
		return dom.SetStyle(n, name, val)
	})
}

// Call invokes fn with the selection and args, and returns the selection.
// Errors raised inside fn on derived selections surface through Err.
func (s *Selection) Call(fn func(s *Selection, args ...any), args ...any) *Selection {
	fn(s, args...)
	return s
}

// Groups returns a copy of the slot groups.
func (s *Selection) Groups() [][]Slot {
	out := make([][]Slot, len(s.groups))
	for i, g := range s.groups {
		out[i] = append([]Slot(nil), g...)
	}
	return out
}

// Parents returns a copy of the group parents.
func (s *Selection) Parents() []*html.Node {
	return append([]*html.Node(nil), s.parents...)
}

// Nodes returns the real nodes of all groups in order.
func (s *Selection) Nodes() []*html.Node {
	var out []*html.Node
	for _, g := range s.groups {
		for _, slot := range g {
			if slot.node != nil {
				out = append(out, slot.node)
			}
		}
	}
	return out
}

// Node returns the first real node, or nil.
func (s *Selection) Node() *html.Node {
	for _, g := range s.groups {
		for _, slot := range g {
			if slot.node != nil {
				return slot.node
			}
		}
	}
	return nil
}

// Values returns the bound datum of every non-empty slot in order; unbound
// nodes contribute nil.
func (s *Selection) Values() []any {
	var out []any
	for _, g := range s.groups {
		for _, slot := range g {
			if slot.IsEmpty() {
				continue
			}
			d, _ := slot.datum(s.doc)
			out = append(out, d)
		}
	}
	return out
}

// Size returns the number of non-empty slots, placeholders included.
func (s *Selection) Size() int {
	n := 0
	for _, g := range s.groups {
		for _, slot := range g {
			if !slot.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Empty reports whether the selection has no non-empty slot.
func (s *Selection) Empty() bool { return s.Size() == 0 }
