package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes rows as an indented JSON array.
// The output can be re-read with [ReadJSON].
func WriteJSON(rows []any, w io.Writer) error {
	if rows == nil {
		rows = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes rows to a JSON file at path.
func ExportJSON(rows []any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(rows, f)
}
