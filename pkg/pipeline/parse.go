package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/questcanvas/pkg/codec"
	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/observability"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// LoadFile reads a document from disk.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}

// Parse decodes a document and builds its graph.
//
// Unlike [codec.Parse], which degrades malformed input to an empty graph,
// Parse reports an INVALID_DOCUMENT error so callers can tell an empty
// document from a broken one.
func (r *Runner) Parse(ctx context.Context, text []byte, opts Options) (quest.Graph, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return quest.Graph{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source)
	start := time.Now()

	doc, err := codec.Decode(text)
	if err != nil {
		hooks.OnParseComplete(ctx, opts.Source, 0, time.Since(start), err)
		return quest.Graph{}, errors.Annotate(err, "parse %s", opts.Source)
	}
	g := codec.ParseDocument(doc, opts.CodecOptions())

	hooks.OnParseComplete(ctx, opts.Source, g.NodeCount(), time.Since(start), nil)
	return g, nil
}

// Generate writes a graph as a canonical document.
func (r *Runner) Generate(ctx context.Context, g quest.Graph) []byte {
	start := time.Now()
	out := codec.Generate(g)
	observability.Pipeline().OnGenerateComplete(ctx, len(out), time.Since(start))
	return out
}
