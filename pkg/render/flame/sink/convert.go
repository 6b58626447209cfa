package sink

import (
	"github.com/matzehuels/flametower/pkg/render"
	"github.com/matzehuels/flametower/pkg/render/flame"
	"github.com/matzehuels/flametower/pkg/viewport"
)

// RenderPNG renders the container as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
func RenderPNG[T any](c viewport.RenderContainer[T], p flame.Presenter[T], scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(c, p, opts...), scale)
}

// RenderPDF renders the container as PDF via SVG conversion.
func RenderPDF[T any](c viewport.RenderContainer[T], p flame.Presenter[T], opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(c, p, opts...))
}
