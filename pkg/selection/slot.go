package selection

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
)

// Container is the capability shared by real nodes and enter placeholders:
// attaching a new child and naming the node that will own it.
type Container interface {
	AppendChild(child *html.Node) *html.Node
	ParentNode() *html.Node
}

// EnterNode is a placeholder for a datum that has no document node yet.
// Appending to it attaches the child to the owning parent instead.
type EnterNode struct {
	doc    *dom.Document
	parent *html.Node
	datum  any
}

// Parent returns the node that will own anything appended to the placeholder.
func (e *EnterNode) Parent() *html.Node { return e.parent }

// Datum returns the value the placeholder stands for.
func (e *EnterNode) Datum() any { return e.datum }

// AppendChild attaches child under the placeholder's parent.
func (e *EnterNode) AppendChild(child *html.Node) *html.Node {
	return e.doc.AppendChild(e.parent, child)
}

// ParentNode returns the owning parent.
func (e *EnterNode) ParentNode() *html.Node { return e.parent }

// NamespaceURI always fails: a placeholder has no element of its own.
func (e *EnterNode) NamespaceURI() (string, error) {
	return "", errors.New(errors.ErrCodeUnmaterialized, "enter placeholder has no namespace; append a node first")
}

// element adapts a real node to Container.
type element struct {
	doc  *dom.Document
	node *html.Node
}

func (e element) AppendChild(child *html.Node) *html.Node { return e.doc.AppendChild(e.node, child) }
func (e element) ParentNode() *html.Node                  { return e.node }

// Slot is one position in a selection group. The zero Slot is empty.
type Slot struct {
	node  *html.Node
	enter *EnterNode
}

// NodeSlot returns a slot holding n. A nil n yields an empty slot.
func NodeSlot(n *html.Node) Slot { return Slot{node: n} }

// EnterSlot returns a slot holding placeholder e.
func EnterSlot(e *EnterNode) Slot { return Slot{enter: e} }

// IsEmpty reports whether the slot holds neither a node nor a placeholder.
func (s Slot) IsEmpty() bool { return s.node == nil && s.enter == nil }

// Node returns the real node, or nil for empty and placeholder slots.
func (s Slot) Node() *html.Node { return s.node }

// Enter returns the placeholder, or nil.
func (s Slot) Enter() *EnterNode { return s.enter }

// NamespaceURI returns the namespace of the slot's node. Placeholders and
// empty slots have none and report UNMATERIALIZED.
func (s Slot) NamespaceURI() (string, error) {
	switch {
	case s.node != nil:
		return dom.NamespaceURI(s.node), nil
	case s.enter != nil:
		return s.enter.NamespaceURI()
	default:
		return "", errors.New(errors.ErrCodeUnmaterialized, "empty slot has no namespace")
	}
}

// container returns the Container view of a non-empty slot.
func (s Slot) container(doc *dom.Document) Container {
	if s.enter != nil {
		return s.enter
	}
	return element{doc: doc, node: s.node}
}

// datum returns the value bound to the slot and whether one is bound.
func (s Slot) datum(doc *dom.Document) (any, bool) {
	if s.enter != nil {
		return s.enter.datum, true
	}
	if s.node != nil {
		return doc.Datum(s.node)
	}
	return nil, false
}
