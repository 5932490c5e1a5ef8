// Package pipeline runs quest documents through parse, layout, generate and
// render with layout caching.
//
// The CLI and the HTTP API both go through a [Runner], so a document is
// treated the same way no matter where it enters.
//
// # Stages
//
//  1. Parse: decode the YAML document strictly and build the graph
//  2. Layout: compute ranks, rows and positions (cached by graph structure)
//  3. Generate: write the graph back as a canonical document
//  4. Render: produce DOT, SVG, PNG, PDF or graph JSON artifacts
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, text, pipeline.Options{
//	    Source:   "quests/guard.yml",
//	    Relayout: true,
//	    Formats:  []string{pipeline.FormatYAML, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("guard.yml", res.Artifacts[pipeline.FormatYAML], 0644)
//
// Stages can also be run on their own:
//
//	g, err := runner.Parse(ctx, text, opts)
//	g, l, err := runner.Layout(ctx, g, opts)
//	doc := runner.Generate(ctx, g)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/codec"
	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// DefaultSource names documents that were not read from a file.
const DefaultSource = "<stdin>"

// Format constants for output artifacts.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatYAML: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// formatList is ValidFormats in display order.
var formatList = []string{FormatYAML, FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source names the document for logs and hooks.
	Source string `json:"source,omitempty"`

	// Layout constants. Zero fields fall back to the layout defaults.
	Layout layout.Config `json:"layout,omitzero"`

	// LayoutUnpositioned places nodes without a canvas when others have one.
	LayoutUnpositioned bool `json:"layout_unpositioned,omitempty"`

	// Relayout discards stored canvas positions and applies computed ones.
	Relayout bool `json:"relayout,omitempty"`

	// Refresh bypasses the layout cache for reads. Results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Formats lists the artifacts Execute produces.
	Formats []string `json:"formats,omitempty"`

	// Detailed adds line and option counts to rendered node labels.
	Detailed bool `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph, with computed positions when Relayout is set.
	Graph quest.Graph

	// GraphHash identifies the graph structure the layout was computed for.
	GraphHash string

	// Layout holds the ranks, rows and crossing count of the layout pass.
	Layout graph.Layout

	// Findings are the advisory lint results for Graph.
	Findings []quest.Finding

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	Crossings    int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatList, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout rejects layout constants that cannot produce a drawing.
func ValidateLayout(cfg layout.Config) error {
	switch {
	case cfg.NodeWidth < 0, cfg.RankGap < 0, cfg.NodeGap < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout sizes must not be negative")
	case cfg.MaxDepth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_depth must not be negative")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatYAML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CodecOptions returns the options handed to the document parser.
func (o *Options) CodecOptions() codec.Options {
	return codec.Options{
		Layout:             o.Layout,
		LayoutUnpositioned: o.LayoutUnpositioned,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Layout.WithDefaults()
	return cache.LayoutKeyOpts{
		NodeWidth:      c.NodeWidth,
		RankGap:        c.RankGap,
		LeftMargin:     c.LeftMargin,
		AnchorY:        c.AnchorY,
		NodeGap:        c.NodeGap,
		MaxDepth:       c.MaxDepth,
		UnplacedWeight: c.UnplacedWeight,
		HeaderHeight:   c.HeaderHeight,
		LineHeight:     c.LineHeight,
		OptionHeight:   c.OptionHeight,
		BranchHeight:   c.BranchHeight,
		Padding:        c.Padding,
	}
}

// String summarizes the options for debug logs.
func (o *Options) String() string {
	return fmt.Sprintf("source=%s relayout=%t formats=%v", o.Source, o.Relayout, o.Formats)
}
