package enhance

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Each enhancer blends the image with a "degenerate" version of itself:
//
//	out = degenerate + factor*(src - degenerate)
//
// so factor 1 returns the original, 0 returns the degenerate image, and
// values above 1 push away from it. Alpha is left untouched.

// Contrast adjusts contrast against a flat grey at the image's mean luminance.
func Contrast(img image.Image, factor float64) *image.NRGBA {
	src := imaging.Clone(img)
	mean := meanLuminance(src)
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: blend(mean, c.R, factor),
			G: blend(mean, c.G, factor),
			B: blend(mean, c.B, factor),
			A: c.A,
		}
	})
}

// Color adjusts saturation against the greyscale version of each pixel.
func Color(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		l := luminance(c.R, c.G, c.B)
		return color.NRGBA{
			R: blend(l, c.R, factor),
			G: blend(l, c.G, factor),
			B: blend(l, c.B, factor),
			A: c.A,
		}
	})
}

// Brightness scales every channel towards or away from black.
func Brightness(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: blend(0, c.R, factor),
			G: blend(0, c.G, factor),
			B: blend(0, c.B, factor),
			A: c.A,
		}
	})
}

// luminance is the ITU-R 601-2 luma in 16.16 fixed point.
func luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// meanLuminance returns the rounded mean luma of img, 0 for an empty image.
func meanLuminance(img *image.NRGBA) uint8 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0
	}
	var sum uint64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			sum += uint64(luminance(row[i], row[i+1], row[i+2]))
		}
	}
	return uint8(float64(sum)/float64(w*h) + 0.5)
}

func blend(degenerate, src uint8, factor float64) uint8 {
	v := float64(degenerate) + factor*(float64(src)-float64(degenerate))
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
