package batch

import (
	"image"

	"github.com/disintegration/imaging"

	// imaging registers JPEG, PNG, GIF, BMP and TIFF; WebP comes from x/image.
	_ "golang.org/x/image/webp"
)

// decodeFile opens and decodes an image, applying its EXIF orientation.
func decodeFile(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}
