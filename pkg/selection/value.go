package selection

import (
	"math"
	"strconv"
)

type valueKind uint8

const (
	constantValue valueKind = iota
	funcValue
)

// Value is the argument of Attr, Text and Style: either a constant string or
// a function of the bound datum.
type Value struct {
	kind valueKind
	str  string
	fn   func(d any) (string, error)
}

// String returns a constant value.
func String(s string) Value {
	return Value{kind: constantValue, str: s}
}

// Number returns a constant value holding f formatted with FormatNumber.
func Number(f float64) Value {
	return String(FormatNumber(f))
}

// Func returns a value computed from the bound datum.
func Func(fn func(d any) string) Value {
	return FuncE(func(d any) (string, error) { return fn(d), nil })
}

// NumberFunc returns a value computed from the bound datum and formatted
// with FormatNumber.
func NumberFunc(fn func(d any) float64) Value {
	return FuncE(func(d any) (string, error) { return FormatNumber(fn(d)), nil })
}

// FuncE returns a value computed from the bound datum that may fail.
// A failure stops the chain.
func FuncE(fn func(d any) (string, error)) Value {
	return Value{kind: funcValue, fn: fn}
}

// IsConstant reports whether v ignores the datum.
func (v Value) IsConstant() bool { return v.kind == constantValue }

// Resolve computes the string for datum d.
func (v Value) Resolve(d any) (string, error) {
	if v.kind == constantValue {
		return v.str, nil
	}
	return v.fn(d)
}

// FormatNumber formats f as the shortest decimal that round-trips,
// without exponent for ordinary magnitudes: 150, 0.5, 57.4468085106383.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
