package layout

// Default layout constants. Pixel sizes are an implementation choice; only the
// monotonic growth of node heights with content is relied on.
const (
	DefaultNodeWidth      = 300.0
	DefaultRankGap        = 120.0
	DefaultLeftMargin     = 50.0
	DefaultAnchorY        = 300.0
	DefaultNodeGap        = 40.0
	DefaultMaxDepth       = 50
	DefaultUnplacedWeight = 9999.0
	DefaultHeaderHeight   = 56.0
	DefaultLineHeight     = 22.0
	DefaultOptionHeight   = 30.0
	DefaultBranchHeight   = 30.0
	DefaultPadding        = 16.0
)

// Config holds the constants of the layout engine. Zero fields fall back to
// the defaults, so a partially filled Config (for example one decoded from a
// config file) is always usable.
type Config struct {
	// NodeWidth is the rendered width of every node.
	NodeWidth float64 `toml:"node_width" json:"node_width,omitempty"`
	// RankGap is the horizontal space between two columns.
	RankGap float64 `toml:"rank_gap" json:"rank_gap,omitempty"`
	// LeftMargin offsets column 0 from the canvas origin.
	LeftMargin float64 `toml:"left_margin" json:"left_margin,omitempty"`
	// AnchorY is the vertical line every column is centered on.
	AnchorY float64 `toml:"anchor_y" json:"anchor_y,omitempty"`
	// NodeGap is the vertical space between stacked nodes of one column.
	NodeGap float64 `toml:"node_gap" json:"node_gap,omitempty"`
	// MaxDepth bounds rank propagation so cyclic graphs terminate.
	MaxDepth int `toml:"max_depth" json:"max_depth,omitempty"`
	// UnplacedWeight is the barycenter of a node with no predecessor in the
	// previous column. It sorts such nodes last.
	UnplacedWeight float64 `toml:"unplaced_weight" json:"unplaced_weight,omitempty"`

	HeaderHeight float64 `toml:"header_height" json:"header_height,omitempty"`
	LineHeight   float64 `toml:"line_height" json:"line_height,omitempty"`
	OptionHeight float64 `toml:"option_height" json:"option_height,omitempty"`
	BranchHeight float64 `toml:"branch_height" json:"branch_height,omitempty"`
	Padding      float64 `toml:"padding" json:"padding,omitempty"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      DefaultNodeWidth,
		RankGap:        DefaultRankGap,
		LeftMargin:     DefaultLeftMargin,
		AnchorY:        DefaultAnchorY,
		NodeGap:        DefaultNodeGap,
		MaxDepth:       DefaultMaxDepth,
		UnplacedWeight: DefaultUnplacedWeight,
		HeaderHeight:   DefaultHeaderHeight,
		LineHeight:     DefaultLineHeight,
		OptionHeight:   DefaultOptionHeight,
		BranchHeight:   DefaultBranchHeight,
		Padding:        DefaultPadding,
	}
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	setFloat(&c.NodeWidth, d.NodeWidth)
	setFloat(&c.RankGap, d.RankGap)
	setFloat(&c.LeftMargin, d.LeftMargin)
	setFloat(&c.AnchorY, d.AnchorY)
	setFloat(&c.NodeGap, d.NodeGap)
	setFloat(&c.UnplacedWeight, d.UnplacedWeight)
	setFloat(&c.HeaderHeight, d.HeaderHeight)
	setFloat(&c.LineHeight, d.LineHeight)
	setFloat(&c.OptionHeight, d.OptionHeight)
	setFloat(&c.BranchHeight, d.BranchHeight)
	setFloat(&c.Padding, d.Padding)
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	return c
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}
