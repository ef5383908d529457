package emit

// Default layout values.
const (
	DefaultPad         = "0.5"
	DefaultNodeSep     = "1"
	DefaultRankSep     = "2"
	DefaultSplines     = "spline"
	DefaultAlignWeight = 10
	DefaultLeafFill    = "gray95"
)

// Options tunes the generated layout hints. Zero fields take their default.
type Options struct {
	Pad         string // graph pad, in inches
	NodeSep     string // minimum space between nodes of a rank
	RankSep     string // minimum space between ranks
	Splines     string // edge routing: spline, ortho, polyline...
	AlignWeight int    // weight of the invisible port alignment edges
	LeafFill    string // fill color of leaf boxes
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Pad:         DefaultPad,
		NodeSep:     DefaultNodeSep,
		RankSep:     DefaultRankSep,
		Splines:     DefaultSplines,
		AlignWeight: DefaultAlignWeight,
		LeafFill:    DefaultLeafFill,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Pad == "" {
		o.Pad = d.Pad
	}
	if o.NodeSep == "" {
		o.NodeSep = d.NodeSep
	}
	if o.RankSep == "" {
		o.RankSep = d.RankSep
	}
	if o.Splines == "" {
		o.Splines = d.Splines
	}
	if o.AlignWeight <= 0 {
		o.AlignWeight = d.AlignWeight
	}
	if o.LeafFill == "" {
		o.LeafFill = d.LeafFill
	}
	return o
}
