package thumbnail

import (
	"image"

	"github.com/disintegration/imaging"
)

// Imager is the resize collaborator used to build thumbnails.
type Imager interface {
	// ResizeProportional scales img to width, keeping the aspect ratio.
	ResizeProportional(img image.Image, width int) image.Image

	// FitCrop scales and crops img to exactly width x height around its center.
	FitCrop(img image.Image, width, height int) image.Image
}

// LanczosImager implements Imager with Lanczos resampling.
type LanczosImager struct{}

// ResizeProportional scales img to width with a proportional height.
func (LanczosImager) ResizeProportional(img image.Image, width int) image.Image {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// FitCrop fills a width x height box anchored at the center.
func (LanczosImager) FitCrop(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

// Compile-time interface check.
var _ Imager = LanczosImager{}
