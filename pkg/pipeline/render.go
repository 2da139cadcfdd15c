package pipeline

import (
	"bytes"
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/render"
	"github.com/matzehuels/minid3/pkg/render/doctree"
)

// Export serializes doc in every format of opts.Formats. Formats are
// produced concurrently; the first failure cancels the rest.
func Export(ctx context.Context, doc *dom.Document, opts Options) (map[string][]byte, error) {
	var svg []byte
	if needsSVG(opts.Formats) {
		var err error
		if svg, err = ChartSVG(doc, opts.Config.Selector); err != nil {
			return nil, err
		}
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := exportFormat(ctx, doc, svg, format, opts)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "export %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func exportFormat(ctx context.Context, doc *dom.Document, svg []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := doc.Render(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(ctx, svg, opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	case FormatDOT:
		dot := doctree.ToDOT(doc, doc.Body(), doctree.Options{Detailed: opts.Detailed})
		return []byte(dot), nil
	}
	return nil, ValidateFormat(format)
}

func needsSVG(formats []string) bool {
	for _, f := range formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			return true
		}
	}
	return false
}

// ChartSVG returns the first <svg> under the mount element as a standalone
// SVG document.
func ChartSVG(doc *dom.Document, selector string) ([]byte, error) {
	n, err := dom.QuerySelector(doc.Root(), selector+" svg")
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "chart under %q has no <svg> to export", selector)
	}
	return dom.OuterSVG(n)
}
