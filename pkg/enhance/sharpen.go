package enhance

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/dixieflatline76/Polish/pkg/umask"
)

// UnsharpMask sharpens img with a Gaussian unsharp mask.
//
// Radius is the blur sigma in pixels, Percent/100 the amount of the
// difference added back, and Threshold (0-255) the smallest difference that
// is sharpened at all.
func UnsharpMask(img image.Image, p umask.Params) *image.NRGBA {
	g := gift.New(gift.UnsharpMask(
		float32(p.Radius),
		float32(p.Percent/100),
		float32(p.Threshold/255),
	))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
