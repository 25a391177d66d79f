// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size and WebGPU format of a texture or
// rendering target.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format is the WebGPU texture format.
	// RGBA8UnormSrgb is the default.
	Format wgpu.TextureFormat
}

// NewTextureFormat returns a new TextureFormat with the default format
// and given size.
func NewTextureFormat(width, height int) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8UnormSrgb
}

// String returns a human-readable version of the format.
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %d", tf.Size, tf.Format)
}

// SetSize sets the width and height.
func (tf *TextureFormat) SetSize(width, height int) {
	tf.Size = image.Point{X: width, Y: height}
}

// Size32 returns the size as uint32 values.
func (tf *TextureFormat) Size32() (width, height uint32) {
	return uint32(tf.Size.X), uint32(tf.Size.Y)
}

// Extent3D returns the size as a single-layer wgpu.Extent3D.
func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Aspect returns the aspect ratio X / Y.
func (tf *TextureFormat) Aspect() float32 {
	if tf.Size.Y > 0 {
		return float32(tf.Size.X) / float32(tf.Size.Y)
	}
	return 1
}

// Bounds returns the rectangle defining this texture: 0,0,w,h.
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// Stride returns the number of bytes per row in host memory.
// All formats used here are 4 bytes per pixel.
func (tf *TextureFormat) Stride() int {
	return 4 * tf.Size.X
}

//////////////////////////////////////////////////////////////////////

// TextureBufferDims are the dimensions required to copy texture data
// between host memory and the GPU, where each row must be padded to
// wgpu.CopyBytesPerRowAlignment.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size)
	return td
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4
	td.UnpaddedRowSize = td.Width * bytesPerPixel
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of the data.
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of the data.
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the unpadded and padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
