package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/minid3/pkg/errors"
)

// ReadJSON decodes a JSON array from r.
//
// Anything other than a single top-level array is an INVALID_INPUT error.
func ReadJSON(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)

	var rows []any
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if rows == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset must be a JSON array")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has trailing data after the array")
	}
	return rows, nil
}

// ParseJSON decodes a JSON array held in memory.
func ParseJSON(data []byte) ([]any, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a dataset from the JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) ([]any, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open dataset %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
