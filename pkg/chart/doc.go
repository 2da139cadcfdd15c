// Package chart provides the built-in drawing templates and their TOML
// configuration.
//
// A [Template] draws into a page built by [NewPage] using the selection,
// scale and axis packages. Three templates are registered:
//
//   - hello: appends a <div> holding Config.Text to the mount element
//   - rectangle: appends svg > g > rect, a blue 50x20 rectangle
//   - bar: a vertical bar chart with a band x axis and a linear y axis,
//     one rect.bar per dataset row
//
// # Configuration
//
// Charts are described in TOML:
//
//	template = "bar"
//	title = "Letter frequency"
//	width = 960
//	height = 500
//	padding = 0.1
//	label_field = "name"
//	value_field = "value"
//	data = "letters.json"
//
//	[margin]
//	top = 20
//	right = 20
//	bottom = 30
//	left = 40
//
// Keys that are left out keep the values of [DefaultConfig].
package chart
