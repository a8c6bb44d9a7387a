// Package render holds the viewer's cached composite, the interpolation
// policy, the resize debouncer and the overlay geometry drawn on top.
package render

import (
	viewimage "image-view/internal/image"
	"image-view/pkg/geometry"
)

// DefaultQualityThreshold is the region size below which scaling is cheap
// enough to stay nearest-neighbour.
const DefaultQualityThreshold = 512

// Policy picks the interpolation for a rebuild.
type Policy struct {
	// Threshold in source pixels; zero means DefaultQualityThreshold.
	Threshold int
}

// For returns QualityFast while a resize is in progress or when the source
// region is smaller than the threshold on both axes, QualityHigh otherwise.
func (p Policy) For(resizing bool, region geometry.Size) viewimage.Quality {
	if resizing {
		return viewimage.QualityFast
	}
	t := p.Threshold
	if t <= 0 {
		t = DefaultQualityThreshold
	}
	if region.Width < t && region.Height < t {
		return viewimage.QualityFast
	}
	return viewimage.QualityHigh
}
