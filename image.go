// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"

	"golang.org/x/image/draw"
)

// SetSourceImage fills the buffer from the given image, rescaling it
// with nearest-neighbor interpolation to cover the full buffer
// resolution, and marks the buffer for upload. The image aspect ratio
// is not preserved here; size the buffer to match if that matters.
func (pb *PixelBuffer) SetSourceImage(img image.Image) {
	dst := pb.AsRGBA()
	draw.NearestNeighbor.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	pb.dirty = true
}

// AsRGBA returns the buffer as an image.RGBA sharing the same pixel
// bytes, for drawing into it with image packages. The buffer is not
// marked for upload: call Frame (discarding the result) or
// SetSourceImage for that, or draw before a Frame call.
func (pb *PixelBuffer) AsRGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    pb.pix,
		Stride: 4 * pb.size.X,
		Rect:   pb.Bounds(),
	}
}
