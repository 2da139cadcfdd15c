package scale

import (
	"math"

	"github.com/matzehuels/minid3/pkg/errors"
)

// DefaultTickStep is the spacing of Linear tick points unless TickStep is set.
const DefaultTickStep = 5

// maxTicks bounds TickPoints; wider domains get a coarser step.
const maxTicks = 10000

// Linear maps a numeric domain interval onto a pixel range by linear
// interpolation.
type Linear struct {
	domain Range
	rng    Range
	step   float64
}

// NewLinear returns a linear scale with domain and range [0, 1].
func NewLinear() *Linear {
	return &Linear{
		domain: Range{Low: 0, High: 1},
		rng:    Range{Low: 0, High: 1},
		step:   DefaultTickStep,
	}
}

// Domain sets the input interval.
func (l *Linear) Domain(lo, hi float64) *Linear {
	l.domain = Range{Low: lo, High: hi}
	return l
}

// Range sets the output interval.
func (l *Linear) Range(lo, hi float64) *Linear {
	l.rng = Range{Low: lo, High: hi}
	return l
}

// TickStep sets the spacing of TickPoints. Non-positive values restore the default.
func (l *Linear) TickStep(step float64) *Linear {
	if !(step > 0) || math.IsInf(step, 1) {
		step = DefaultTickStep
	}
	l.step = step
	return l
}

// Scale maps x from the domain onto the range. A zero-width domain is an
// INVALID_DOMAIN error.
func (l *Linear) Scale(x float64) (float64, error) {
	if l.domain.Len() == 0 {
		return 0, errors.New(errors.ErrCodeInvalidDomain, "linear scale: zero-width domain [%v, %v]", l.domain.Low, l.domain.High)
	}
	return l.rng.Low + l.rng.Len()*(x-l.domain.Low)/l.domain.Len(), nil
}

// Invert maps y from the range back onto the domain.
func (l *Linear) Invert(y float64) (float64, error) {
	if l.rng.Len() == 0 {
		return 0, errors.New(errors.ErrCodeInvalidDomain, "linear scale: zero-width range [%v, %v]", l.rng.Low, l.rng.High)
	}
	return l.domain.Low + l.domain.Len()*(y-l.rng.Low)/l.rng.Len(), nil
}

// TickPoints returns lo, lo+step, ... up to and including the largest point
// not exceeding hi. A descending domain yields no points. When the step would
// produce more than maxTicks points it is widened to the smallest multiple of
// itself that fits, so the points still span the whole domain.
func (l *Linear) TickPoints() []float64 {
	lo, hi := l.domain.Low, l.domain.High
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi < lo {
		return nil
	}
	step := l.step
	count := math.Floor((hi-lo)/step) + 1
	if count > maxTicks {
		step *= math.Ceil(count / maxTicks)
		count = math.Min(math.Floor((hi-lo)/step)+1, maxTicks)
	}
	out := make([]float64, int(count))
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Extent returns the pixel range.
func (l *Linear) Extent() (float64, float64) { return l.rng.Low, l.rng.High }

// Bandwidth is always 0 for a continuous scale.
func (l *Linear) Bandwidth() float64 { return 0 }

// Ticks returns TickPoints as tick values.
func (l *Linear) Ticks() []any {
	pts := l.TickPoints()
	out := make([]any, len(pts))
	for i, p := range pts {
		out[i] = p
	}
	return out
}

// Position maps a numeric tick value.
func (l *Linear) Position(v any) (float64, error) {
	x, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return l.Scale(x)
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "linear scale: non-numeric value %v (%T)", v, v)
}
