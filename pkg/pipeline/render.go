package pipeline

import (
	"context"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/quest"
	"github.com/matzehuels/questcanvas/pkg/render/nodelink"
)

// pngScale is the rasterization factor for PNG output.
const pngScale = 2.0

// Render generates output artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, g quest.Graph, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatYAML:
			data = r.Generate(ctx, g)
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
			if dot == "" {
				dot = nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
			}
			data, err = renderDOT(ctx, dot, format)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, errors.Annotate(err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderDOT(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, pngScale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return []byte(dot), nil
}
