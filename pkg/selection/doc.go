// Package selection implements chainable, data-bound selections over a
// [dom.Document].
//
// # Overview
//
// A [Selection] is an ordered list of groups. Each group is an ordered list
// of [Slot] values and has one parent node. A slot is empty, holds a real
// document node, or holds an [EnterNode] placeholder standing for a datum
// that has no node yet. Every operation returns a new Selection; the only
// shared mutable state is the document itself.
//
// # Data binding
//
// [Selection.Data] binds values to nodes by index. Values beyond the end of
// a group become enter placeholders owned by the group's parent, retrieved
// with [Selection.Enter] and materialized with [Selection.Append]:
//
//	doc := dom.NewDocument()
//	bars := selection.Select(doc, "body").
//	    Append("svg").
//	    SelectAll("rect").
//	    Data([]any{4, 8, 15}).
//	    Enter().
//	    Append("rect").
//	    Attr("class", selection.String("bar")).
//	    Attr("width", selection.NumberFunc(func(d any) float64 { return float64(d.(int)) * 10 }))
//	if err := bars.Err(); err != nil {
//	    return err
//	}
//
// Binding is positional only. Surplus nodes are left in place and there is
// no exit selection.
//
// # Errors
//
// Chains never panic. The first failure (an invalid selector, a failing
// value callback, or an attribute write against a placeholder that was never
// appended) is recorded on the chain; every later operation on any
// selection derived from the same root is a no-op and [Selection.Err]
// reports the error. Empty slots are skipped silently.
package selection
