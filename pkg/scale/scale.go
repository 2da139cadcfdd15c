// Package scale maps data values to pixel positions.
//
// [Band] maps an ordered list of category keys to evenly spaced bands;
// [Linear] interpolates a numeric domain interval onto a pixel range. Both
// are mutable: setters recompute derived quantities eagerly so that readers
// such as axis renderers always see a consistent state.
//
// Both implement [Scale], the view consumed by package axis.
package scale

// Scale is the read-only view of a scale used by axis renderers.
type Scale interface {
	// Extent returns the configured pixel range as (low, high).
	Extent() (float64, float64)
	// Position maps a tick value to its pixel offset.
	Position(v any) (float64, error)
	// Ticks returns the values to draw ticks for, in order.
	Ticks() []any
	// Bandwidth returns the band width, or 0 for continuous scales.
	Bandwidth() float64
}

// Range is a pixel interval. Low may be greater than High for inverted axes.
type Range struct {
	Low  float64
	High float64
}

// Len returns the signed length High - Low.
func (r Range) Len() float64 {
	return r.High - r.Low
}

func clamp01(p float64) float64 {
	switch {
	case p != p, p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
