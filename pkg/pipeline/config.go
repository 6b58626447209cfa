package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flametower/pkg/errors"
)

// LoadConfig reads options from a TOML file:
//
//	strategy = "single-pass"
//	width = 1600
//	row_height = 18
//	theme = "dark"
//	formats = ["svg", "json"]
//
// Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if os.IsNotExist(err) {
		return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

// Merge returns o with every field that is unset in o taken from base.
// Flags override config values this way.
func (o Options) Merge(base Options) Options {
	if o.Strategy == "" {
		o.Strategy = base.Strategy
	}
	if o.From == nil {
		o.From = base.From
	}
	if o.To == nil {
		o.To = base.To
	}
	if o.Width == 0 {
		o.Width = base.Width
	}
	if o.RowHeight == 0 {
		o.RowHeight = base.RowHeight
	}
	if o.RowGap == nil {
		o.RowGap = base.RowGap
	}
	if o.MinWidth == 0 {
		o.MinWidth = base.MinWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = base.Formats
	}
	if o.Theme == "" {
		o.Theme = base.Theme
	}
	o.Interactive = o.Interactive || base.Interactive
	if o.Connectors == nil {
		o.Connectors = base.Connectors
	}
	o.VisibleOnly = o.VisibleOnly || base.VisibleOnly
	o.Detailed = o.Detailed || base.Detailed
	if o.Scale == 0 {
		o.Scale = base.Scale
	}
	if o.Title == "" {
		o.Title = base.Title
	}
	return o
}
