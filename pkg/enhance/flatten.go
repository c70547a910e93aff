package enhance

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Flatten composites img onto a white background. JPEG has no alpha channel,
// so transparent pixels would otherwise come out black.
func Flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
