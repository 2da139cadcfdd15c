package scale

import (
	"fmt"
	"math"

	"github.com/matzehuels/minid3/pkg/errors"
)

// Band maps category keys to the start offset of evenly spaced bands.
//
// With n keys over range [lo, hi]:
//
//	step      = (hi - lo) / max(1, n - paddingInner + 2*paddingOuter)
//	bandwidth = step * (1 - paddingInner)
//	scale(k)  = lo + paddingOuter*step + index(k)*step
type Band struct {
	keys         []string
	index        map[string]int
	rng          Range
	paddingInner float64
	paddingOuter float64

	step      float64
	bandwidth float64
	offsets   map[string]float64
}

// NewBand returns a band scale with an empty domain, range [0, 1] and no padding.
func NewBand() *Band {
	b := &Band{rng: Range{Low: 0, High: 1}}
	b.rescale()
	return b
}

// Domain sets the ordered category keys. Duplicate keys keep their first index.
func (b *Band) Domain(keys ...string) *Band {
	b.keys = b.keys[:0]
	b.index = make(map[string]int, len(keys))
	for _, k := range keys {
		if _, dup := b.index[k]; dup {
			continue
		}
		b.index[k] = len(b.keys)
		b.keys = append(b.keys, k)
	}
	b.rescale()
	return b
}

// Range sets the pixel interval.
func (b *Band) Range(lo, hi float64) *Band {
	b.rng = Range{Low: lo, High: hi}
	b.rescale()
	return b
}

// Padding sets inner and outer padding to p, clamped to [0, 1].
func (b *Band) Padding(p float64) *Band {
	b.paddingInner = clamp01(p)
	b.paddingOuter = clamp01(p)
	b.rescale()
	return b
}

// PaddingInner sets the fraction of a step left blank between bands.
func (b *Band) PaddingInner(p float64) *Band {
	b.paddingInner = clamp01(p)
	b.rescale()
	return b
}

// PaddingOuter sets the blank space before the first and after the last
// band, in steps.
func (b *Band) PaddingOuter(p float64) *Band {
	b.paddingOuter = clamp01(p)
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.keys))
	b.step = b.rng.Len() / math.Max(1, n-b.paddingInner+2*b.paddingOuter)
	b.bandwidth = b.step * (1 - b.paddingInner)

	b.offsets = make(map[string]float64, len(b.keys))
	start := b.rng.Low + b.paddingOuter*b.step
	for i, k := range b.keys {
		b.offsets[k] = start + float64(i)*b.step
	}
}

// Scale returns the start offset of key's band. The boolean is false for
// keys outside the domain.
func (b *Band) Scale(key string) (float64, bool) {
	v, ok := b.offsets[key]
	return v, ok
}

// Bandwidth returns the width of one band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Keys returns a copy of the domain.
func (b *Band) Keys() []string {
	return append([]string(nil), b.keys...)
}

// TickPoints returns the domain keys in order.
func (b *Band) TickPoints() []string { return b.Keys() }

// Extent returns the pixel range.
func (b *Band) Extent() (float64, float64) { return b.rng.Low, b.rng.High }

// Ticks returns the domain keys as tick values.
func (b *Band) Ticks() []any {
	out := make([]any, len(b.keys))
	for i, k := range b.keys {
		out[i] = k
	}
	return out
}

// Position returns the band offset of v, which is matched by its string form.
func (b *Band) Position(v any) (float64, error) {
	key, ok := v.(string)
	if !ok {
		key = fmt.Sprint(v)
	}
	pos, ok := b.Scale(key)
	if !ok {
		return 0, errors.New(errors.ErrCodeKeyNotFound, "band scale: unknown key %q", key)
	}
	return pos, nil
}
