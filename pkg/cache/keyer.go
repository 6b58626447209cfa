package cache

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey identifies the level assignment of a trace.
	LayoutKey(traceHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a trace.
	ArtifactKey(traceHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs that influence level assignment.
type LayoutKeyOpts struct {
	Strategy string `json:"strategy"`
}

// ArtifactKeyOpts holds the inputs that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Strategy  string  `json:"strategy"`
	Format    string  `json:"format"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Bounded   bool    `json:"bounded"`
	Width     int     `json:"width"`
	RowHeight int     `json:"row_height"`
	RowGap    int     `json:"row_gap"`
	MinWidth  int     `json:"min_width"`
	Theme     string  `json:"theme"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(traceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", traceHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>". The format stays readable
// so entries can be inspected by type.
func (DefaultKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, traceHash, opts)
}
