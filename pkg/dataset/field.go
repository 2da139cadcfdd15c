package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/minid3/pkg/errors"
)

// Field returns field name of an object row.
func Field(row any, name string) (any, bool) {
	m, ok := row.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[name]
	return v, ok
}

// Number returns field name of row as a float64. Numeric strings are parsed.
func Number(row any, name string) (float64, error) {
	v, ok := Field(row, name)
	if !ok {
		return 0, errors.New(errors.ErrCodeKeyNotFound, "row has no field %q", name)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "field %q", name)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "field %q", name)
		}
		return f, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "field %q is %T, not a number", name, v)
}

// Label returns field name of row as a string. Numbers are formatted
// without a trailing ".0".
func Label(row any, name string) (string, error) {
	v, ok := Field(row, name)
	if !ok {
		return "", errors.New(errors.ErrCodeKeyNotFound, "row has no field %q", name)
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case nil:
		return "", errors.New(errors.ErrCodeInvalidInput, "field %q is null", name)
	}
	return fmt.Sprint(v), nil
}

// Labels returns Label(row, name) for every row, in order.
func Labels(rows []any, name string) ([]string, error) {
	out := make([]string, len(rows))
	for i, r := range rows {
		l, err := Label(r, name)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = l
	}
	return out, nil
}

// Max returns the largest Number(row, name) over rows, or 0 for no rows.
func Max(rows []any, name string) (float64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	hi := math.Inf(-1)
	for i, r := range rows {
		v, err := Number(r, name)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		hi = math.Max(hi, v)
	}
	return hi, nil
}
