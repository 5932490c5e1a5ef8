package cache

// Keyer builds cache keys for pipeline results.
type Keyer interface {
	// LayoutKey identifies computed positions for a graph structure.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// IndexKey identifies a duplicate-ID report over a set of documents.
	IndexKey(sourcesHash string, exclude string) string
}

// LayoutKeyOpts lists every layout input besides the graph itself.
type LayoutKeyOpts struct {
	NodeWidth      float64 `json:"node_width"`
	RankGap        float64 `json:"rank_gap"`
	LeftMargin     float64 `json:"left_margin"`
	AnchorY        float64 `json:"anchor_y"`
	NodeGap        float64 `json:"node_gap"`
	MaxDepth       int     `json:"max_depth"`
	UnplacedWeight float64 `json:"unplaced_weight"`
	HeaderHeight   float64 `json:"header_height"`
	LineHeight     float64 `json:"line_height"`
	OptionHeight   float64 `json:"option_height"`
	BranchHeight   float64 `json:"branch_height"`
	Padding        float64 `json:"padding"`
}

// DefaultKeyer produces keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// IndexKey implements Keyer.
func (DefaultKeyer) IndexKey(sourcesHash string, exclude string) string {
	return hashKey("index", sourcesHash, exclude)
}
