// Package axis draws left and bottom chart axes with selections.
//
// An [Axis] issues a fixed sequence of selection operations against an axis
// root (usually a <g> element): presentation attributes on the root, a
// "domain" path for the ruled line, and one <g class="tick"> per tick point
// holding a tick line and a label.
//
//	y := scale.NewLinear().Domain(0, 100).Range(300, 0)
//	g.Call(axis.Left(y).Draw)
package axis

import (
	"fmt"
	"math"

	"github.com/matzehuels/minid3/pkg/scale"
	"github.com/matzehuels/minid3/pkg/selection"
)

const (
	// TickLength is the length of tick lines and of the domain path's end caps.
	TickLength = 6
	// TickLineWidth offsets the domain path by half a pixel for crisp lines.
	TickLineWidth = 0.5
)

// Orientation selects which side of the plot an axis is drawn on.
type Orientation int

const (
	OrientLeft Orientation = iota
	OrientBottom
)

func (o Orientation) String() string {
	switch o {
	case OrientLeft:
		return "left"
	case OrientBottom:
		return "bottom"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Axis renders a scale along one orientation.
type Axis struct {
	scale  scale.Scale
	orient Orientation
	format func(v any) string
}

// Left returns a vertical axis with ticks and labels left of the line.
func Left(s scale.Scale) *Axis {
	return &Axis{scale: s, orient: OrientLeft, format: formatTick}
}

// Bottom returns a horizontal axis with ticks and labels below the line.
// Ticks are centred on their band when the scale has a bandwidth.
func Bottom(s scale.Scale) *Axis {
	return &Axis{scale: s, orient: OrientBottom, format: formatTick}
}

// TickFormat replaces the label formatter.
func (a *Axis) TickFormat(fn func(v any) string) *Axis {
	if fn == nil {
		fn = formatTick
	}
	a.format = fn
	return a
}

// Orientation returns the axis orientation.
func (a *Axis) Orientation() Orientation { return a.orient }

// Draw renders the axis into root. It has the signature expected by
// [selection.Selection.Call].
func (a *Axis) Draw(root *selection.Selection, _ ...any) {
	a.Render(root)
}

// Render draws the axis into root and returns root. Failures, such as a
// tick the scale cannot position, are recorded on the chain.
func (a *Axis) Render(root *selection.Selection) *selection.Selection {
	lo, hi := a.scale.Extent()

	var (
		anchor, path string
		transform    func(d any) (string, error)
		lineAttr     string
		labelAttr    string
		labelOffset  float64
		dy           string
	)
	switch a.orient {
	case OrientBottom:
		anchor = "middle"
		path = fmt.Sprintf("M%s,%s V%s H%s V%s",
			num(TickLineWidth), num(TickLength),
			num(TickLineWidth), num(hi-lo+TickLineWidth), num(TickLength))
		transform = func(d any) (string, error) {
			x, err := a.scale.Position(d)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("translate(%s, 0)", num(x+a.scale.Bandwidth()/2)), nil
		}
		lineAttr, labelAttr, labelOffset, dy = "y2", "y", 9, "0.71em"
	default:
		anchor = "end"
		path = fmt.Sprintf("M-%s,%s H%s V%s H-%s",
			num(TickLength), num(math.Abs(hi-lo)+TickLineWidth),
			num(TickLineWidth), num(TickLineWidth), num(TickLength))
		transform = func(d any) (string, error) {
			y, err := a.scale.Position(d)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("translate(0, %s)", num(y)), nil
		}
		lineAttr, labelAttr, labelOffset, dy = "x2", "x", -9, "0.32em"
	}

	tickLine := float64(TickLength)
	if a.orient == OrientLeft {
		tickLine = -tickLine
	}

	root.
		Attr("fill", selection.String("none")).
		Attr("font-size", selection.String("10")).
		Attr("font-family", selection.String("sans-serif")).
		Attr("text-anchor", selection.String(anchor))
	root.
		Append("path").
		Attr("class", selection.String("domain")).
		Attr("stroke", selection.String("currentColor")).
		Attr("d", selection.String(path))

	ticks := root.
		SelectAll(".tick").
		Data(a.scale.Ticks()).
		Enter().
		Append("g").
		Attr("class", selection.String("tick")).
		Attr("opacity", selection.String("1")).
		Attr("transform", selection.FuncE(transform))

	ticks.
		Append("line").
		Attr("stroke", selection.String("currentColor")).
		Attr(lineAttr, selection.Number(tickLine))
	ticks.
		Append("text").
		Attr("fill", selection.String("currentColor")).
		Attr(labelAttr, selection.Number(labelOffset)).
		Attr("dy", selection.String(dy)).
		Text(selection.Func(a.format))

	return root
}

func num(f float64) string { return selection.FormatNumber(f) }

func formatTick(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return selection.FormatNumber(x)
	}
	return fmt.Sprint(v)
}
