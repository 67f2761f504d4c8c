package symbology

import (
	"image"

	"github.com/disintegration/imaging"
)

// ScaleLinear resizes a linear (1D) symbol bitmap to the given pixel size
// using a Lanczos filter. Linear scanners tolerate smoothed bar edges far
// better than merged or split 2D modules, so antialiasing is acceptable
// here and preferable for print quality.
func ScaleLinear(b *Bitmap, widthPx, heightPx int) image.Image {
	return imaging.Resize(b.img, widthPx, heightPx, imaging.Lanczos)
}

// ScaleMatrix resizes a Data Matrix bitmap to a square of the given side
// length using nearest-neighbor resampling. Module boundaries must stay
// sharp: a 2D decoder samples the module grid and antialiased edges merge
// adjacent modules at small print sizes.
func ScaleMatrix(b *Bitmap, sidePx int) image.Image {
	return imaging.Resize(b.img, sidePx, sidePx, imaging.NearestNeighbor)
}
