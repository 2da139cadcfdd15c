// Package pkg provides the libraries behind minid3, a small data-driven
// document engine for drawing SVG charts.
//
// # Overview
//
// minid3 binds arrays of data to document nodes and draws charts by
// appending and styling elements for each datum. The pkg directory is
// organized into three areas:
//
//  1. Document model: [dom], [selection]
//  2. Charting: [scale], [axis], [dataset], [chart]
//  3. Orchestration and output: [pipeline], [render], [cache]
//
// # Architecture
//
// The typical data flow:
//
//	TOML chart config + JSON dataset
//	         ↓
//	    [dataset] (load and cache rows)
//	         ↓
//	    [chart] (template draws into a [dom.Document] via [selection])
//	         ↓
//	    [pipeline] (export HTML/SVG/PNG/PDF/DOT, cache artifacts)
//
// # Quick Start
//
// Draw a bar chart directly:
//
//	import (
//	    "github.com/matzehuels/minid3/pkg/chart"
//	    "github.com/matzehuels/minid3/pkg/dataset"
//	)
//
//	rows, _ := dataset.ParseJSON(data)
//	cfg := chart.DefaultConfig()
//	doc, err := chart.Draw(cfg, rows)
//	if err != nil {
//	    return err
//	}
//	err = doc.Render(os.Stdout)
//
// Or use the selection API by hand:
//
//	doc, _ := chart.NewPage("#chart", "")
//	selection.Select(doc, "#chart").
//	    Append("svg").
//	    Append("rect").
//	    Attr("width", selection.Number(50))
//
// # Main Packages
//
// [dom] wraps an HTML document with CSS selector queries, SVG namespace
// tracking and inline style handling.
//
// [selection] is the chainable selection API: select, append, attributes,
// styles, text and data joins with enter placeholders. Errors are sticky
// across a chain.
//
// [scale] provides band (ordinal) and linear (continuous) scales.
//
// [axis] draws left and bottom axes for a scale into a selection.
//
// [dataset] reads JSON rows from files or URLs.
//
// [chart] holds the chart config and the template registry (bar, hello,
// rectangle).
//
// [pipeline] runs load, draw and export with caching.
//
// [render] converts SVG to PNG and PDF; [render/doctree] draws the
// document tree itself with Graphviz.
//
// [cache] stores datasets, artifacts and chart records in files or Redis.
//
// ## Supporting Packages
//
// [errors] defines coded errors shared by every layer. [httputil] fetches
// remote datasets with retries. [observability] exposes pipeline hooks.
// [buildinfo] reports version information.
package pkg
