package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/matzehuels/minid3/pkg/errors"
)

// declarations parses the inline style attribute of n.
func declarations(n *html.Node) ([]*css.Declaration, error) {
	style, ok := Attr(n, "style")
	if !ok || strings.TrimSpace(style) == "" {
		return nil, nil
	}
	// douceur is strict about the trailing semicolon; inline styles are not.
	if !strings.HasSuffix(strings.TrimSpace(style), ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse style %q", style)
	}
	return decls, nil
}

// Style returns the inline value of CSS property prop on n.
func Style(n *html.Node, prop string) (string, bool, error) {
	decls, err := declarations(n)
	if err != nil {
		return "", false, err
	}
	for _, d := range decls {
		if d.Property == prop {
			return d.Value, true, nil
		}
	}
	return "", false, nil
}

// SetStyle sets CSS property prop to value in the inline style of n,
// keeping the other declarations in their original order.
func SetStyle(n *html.Node, prop, value string) error {
	decls, err := declarations(n)
	if err != nil {
		return err
	}

	found := false
	for _, d := range decls {
		if d.Property == prop {
			d.Value = value
			d.Important = false
			found = true
		}
	}
	if !found {
		decls = append(decls, &css.Declaration{Property: prop, Value: value})
	}

	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
		if d.Important {
			parts[i] += " !important"
		}
	}
	SetAttr(n, "style", strings.Join(parts, "; ")+";")
	return nil
}
