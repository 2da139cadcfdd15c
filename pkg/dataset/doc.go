// Package dataset loads the JSON rows that charts bind to selections.
//
// # Format
//
// A dataset is a JSON array. Rows are usually objects, but any JSON value is
// accepted and bound as-is:
//
//	[
//	  {"name": "E", "value": 0.12702},
//	  {"name": "T", "value": 0.09056}
//	]
//
// Numbers decode as float64 and objects as map[string]any.
//
// # Loading
//
// [ReadJSON] decodes from any io.Reader and [ImportJSON] from a file.
// [Loader.Load] accepts either a file path or an http(s) URL; remote fetches
// are retried on transient failures and cached:
//
//	loader := &dataset.Loader{Cache: c, Keyer: cache.NewDefaultKeyer()}
//	rows, err := loader.Load(ctx, "https://example.com/letters.json")
//
// Load failures are not recovered; they reach the caller with a
// FILE_NOT_FOUND, NOT_FOUND or NETWORK_ERROR code.
//
// # Field access
//
// [Field], [Number] and [Label] read named fields of object rows. [Labels]
// and [Max] read a field across all rows, which is what band and linear
// scale domains need.
package dataset
