package chart

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/minid3/pkg/axis"
	"github.com/matzehuels/minid3/pkg/dataset"
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/scale"
	"github.com/matzehuels/minid3/pkg/selection"
)

// Bar draws a vertical bar chart: one rect.bar per row, labelled on a band
// x axis and measured on a linear y axis starting at zero.
type Bar struct{}

func (Bar) Name() string        { return "bar" }
func (Bar) Description() string { return "Vertical bar chart of label/value rows" }
func (Bar) NeedsData() bool     { return true }

func (Bar) Draw(doc *dom.Document, cfg Config, rows []any) error {
	root, err := mount(doc, cfg.Selector)
	if err != nil {
		return err
	}

	labels, err := dataset.Labels(rows, cfg.LabelField)
	if err != nil {
		return err
	}
	yMax := cfg.YMax
	if yMax == 0 {
		if yMax, err = dataset.Max(rows, cfg.ValueField); err != nil {
			return err
		}
	}

	width, height := cfg.InnerWidth(), cfg.InnerHeight()
	x := scale.NewBand().Domain(labels...).Range(0, width).Padding(cfg.Padding)
	y := scale.NewLinear().Domain(0, yMax).Range(height, 0)
	if cfg.YTickStep > 0 {
		y.TickStep(cfg.YTickStep)
	}

	g := root.
		Append("svg").
		Attr("width", selection.Number(cfg.Width)).
		Attr("height", selection.Number(cfg.Height)).
		Append("g").
		Attr("transform", selection.String(translate(cfg.Margin.Left, cfg.Margin.Top)))

	g.Append("g").
		Attr("class", selection.String("x axis")).
		Attr("transform", selection.String(translate(0, height))).
		Call(axis.Bottom(x).Draw)
	g.Append("g").
		Attr("class", selection.String("y axis")).
		Call(axis.Left(y).TickFormat(tickLabel).Draw)

	bars := g.SelectAll(".bar").
		Data(rows).
		Enter().
		Append("rect").
		Attr("class", selection.String("bar")).
		Attr("fill", selection.String(cfg.Fill)).
		Attr("x", selection.FuncE(func(d any) (string, error) {
			l, err := dataset.Label(d, cfg.LabelField)
			if err != nil {
				return "", err
			}
			pos, err := x.Position(l)
			return selection.FormatNumber(pos), err
		})).
		Attr("y", selection.FuncE(func(d any) (string, error) {
			v, err := dataset.Number(d, cfg.ValueField)
			if err != nil {
				return "", err
			}
			pos, err := y.Scale(v)
			return selection.FormatNumber(pos), err
		})).
		Attr("width", selection.Number(x.Bandwidth())).
		Attr("height", selection.FuncE(func(d any) (string, error) {
			v, err := dataset.Number(d, cfg.ValueField)
			if err != nil {
				return "", err
			}
			pos, err := y.Scale(v)
			return selection.FormatNumber(height - pos), err
		}))
	return bars.Err()
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", selection.FormatNumber(x), selection.FormatNumber(y))
}

// tickLabel rounds away accumulated step error, so 3*0.02 prints as 0.06.
func tickLabel(v any) string {
	if f, ok := v.(float64); ok {
		r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 10, 64), 64)
		return selection.FormatNumber(r)
	}
	return fmt.Sprint(v)
}
