package sink

import (
	"encoding/json"

	"github.com/matzehuels/flametower/pkg/render/flame"
	"github.com/matzehuels/flametower/pkg/viewport"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme       flame.Theme
	visibleOnly bool
	strategy    string
}

// WithJSONTheme selects the theme used to resolve colors.
func WithJSONTheme(t flame.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = t } }

// WithJSONVisibleOnly drops items outside the canvas. Connectors touching a
// dropped item are dropped too.
func WithJSONVisibleOnly() JSONOption { return func(r *jsonRenderer) { r.visibleOnly = true } }

// WithJSONStrategy records the level assignment strategy in the output.
func WithJSONStrategy(name string) JSONOption { return func(r *jsonRenderer) { r.strategy = name } }

type jsonOutput struct {
	From       float64         `json:"from"`
	To         float64         `json:"to"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	RowHeight  int             `json:"row_height"`
	Theme      string          `json:"theme"`
	Strategy   string          `json:"strategy,omitempty"`
	Items      []jsonItem      `json:"items"`
	Connectors []jsonConnector `json:"connectors"`
}

type jsonItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Parent      string  `json:"parent,omitempty"`
	Start       float64 `json:"start"`
	Duration    float64 `json:"duration"`
	Level       int     `json:"level"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Color       string  `json:"color"`
	Error       bool    `json:"error,omitempty"`
	Tooltip     string  `json:"tooltip,omitempty"`
	CutOffLeft  bool    `json:"cut_off_left,omitempty"`
	CutOffRight bool    `json:"cut_off_right,omitempty"`
	Visible     bool    `json:"visible"`
}

type jsonConnector struct {
	Parent   int    `json:"parent"`
	Child    int    `json:"child"`
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
}

// RenderJSON exports the container as pretty-printed JSON. Items keep the
// container's pre-order; connectors reference items by index into "items".
func RenderJSON[T any](c viewport.RenderContainer[T], p flame.Presenter[T], opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{theme: flame.ThemeLight}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		From:       c.From,
		To:         c.To,
		Width:      c.Width,
		Height:     c.Height,
		RowHeight:  c.RowHeight,
		Theme:      string(r.theme),
		Strategy:   r.strategy,
		Items:      make([]jsonItem, 0, len(c.Items)),
		Connectors: make([]jsonConnector, 0, len(c.Connectors)),
	}

	index := make(map[*viewport.RenderItem[T]]int, len(c.Items))
	for _, it := range c.Items {
		if r.visibleOnly && !it.Visible {
			continue
		}
		index[it] = len(out.Items)
		out.Items = append(out.Items, toJSONItem(it, p, r.theme))
	}

	for _, pc := range c.Connectors {
		pi, okP := index[pc.Parent]
		ci, okC := index[pc.Child]
		if !okP || !okC {
			continue
		}
		out.Connectors = append(out.Connectors, jsonConnector{
			Parent:   pi,
			Child:    ci,
			ParentID: out.Items[pi].ID,
			ChildID:  out.Items[ci].ID,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONItem[T any](it *viewport.RenderItem[T], p flame.Presenter[T], theme flame.Theme) jsonItem {
	n := it.Node
	e := n.Op.Entity
	item := jsonItem{
		ID:          p.ID(e),
		Name:        p.Name(e),
		Start:       n.Op.Start,
		Duration:    n.Op.Duration,
		Level:       n.Level,
		X:           it.X,
		Y:           it.Y,
		Width:       it.Width,
		Color:       fill(p, e, theme),
		Error:       p.IsError(e),
		Tooltip:     p.Tooltip(e),
		CutOffLeft:  it.CutOffLeft,
		CutOffRight: it.CutOffRight,
		Visible:     it.Visible,
	}
	if parent := n.Parent(); parent != nil {
		item.Parent = p.ID(parent.Op.Entity)
	}
	return item
}
