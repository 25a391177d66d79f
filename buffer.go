// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import "image"

// PixelBuffer is the CPU side of the frame: a tightly packed RGBA8
// byte slice at a fixed logical resolution, row-major with row 0 at
// the top and no padding between rows, so its length is always
// width * height * 4. It tracks whether its contents or size changed
// since the last GPU upload.
type PixelBuffer struct {
	size image.Point
	pix  []byte

	// dirty is set when Frame is handed out or the buffer is resized,
	// and cleared only after a successful GPU upload.
	dirty bool

	// sizeChanged is set by Resize and cleared once the GPU texture
	// has been recreated at the new size.
	sizeChanged bool
}

// NewPixelBuffer returns a zero-filled buffer at the given logical
// resolution. Returns [ErrInvalidSize] if either dimension is < 1.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	pb := &PixelBuffer{
		size:  image.Point{width, height},
		pix:   make([]byte, width*height*4),
		dirty: true,
	}
	return pb, nil
}

// Frame returns the pixel bytes for direct mutation, and marks the
// buffer as needing an upload on the next render. The slice remains
// valid until the next Resize. Pixel (x, y) starts at
// (y*Width() + x) * 4, in R, G, B, A byte order.
func (pb *PixelBuffer) Frame() []byte {
	pb.dirty = true
	return pb.pix
}

// Width returns the buffer width in pixels.
func (pb *PixelBuffer) Width() int { return pb.size.X }

// Height returns the buffer height in pixels.
func (pb *PixelBuffer) Height() int { return pb.size.Y }

// Size returns the buffer resolution in pixels.
func (pb *PixelBuffer) Size() image.Point { return pb.size }

// Bounds returns the buffer extent as an image.Rectangle at origin.
func (pb *PixelBuffer) Bounds() image.Rectangle {
	return image.Rectangle{Max: pb.size}
}

// Resize reallocates the buffer at a new logical resolution. The new
// contents are zero-filled; previous contents are not preserved, even
// when resizing back to an earlier size. Resizing to the current size
// is a no-op that keeps the contents. Returns [ErrInvalidSize] and
// leaves the buffer unchanged if either dimension is < 1.
func (pb *PixelBuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if width == pb.size.X && height == pb.size.Y {
		return nil
	}
	pb.size = image.Point{width, height}
	pb.pix = make([]byte, width*height*4)
	pb.dirty = true
	pb.sizeChanged = true
	return nil
}
