// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameTexture is the GPU mirror of a [PixelBuffer]: a sampled 2D
// texture at the buffer resolution, updated from the buffer bytes
// before rendering and recreated when the buffer is resized.
type FrameTexture struct {
	// Format has the size and format of the texture.
	// The format is always RGBA8UnormSrgb, matching the buffer bytes.
	Format TextureFormat

	device  *Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	dims    TextureBufferDims

	// padded is scratch space reused across row-padded uploads.
	padded []byte
}

// NewFrameTexture returns a new FrameTexture at the given size on the
// given device, which is not owned.
func NewFrameTexture(dev *Device, size image.Point) (*FrameTexture, error) {
	fx := &FrameTexture{device: dev}
	fx.Format = TextureFormat{Size: size, Format: wgpu.TextureFormatRGBA8UnormSrgb}
	if err := fx.config(); err != nil {
		return nil, err
	}
	return fx, nil
}

func (fx *FrameTexture) config() error {
	fx.release()
	tex, err := fx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "pixels.FrameTexture",
		Size:          fx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        fx.Format.Format,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return errors.Log(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return errors.Log(err)
	}
	fx.texture = tex
	fx.view = view
	fx.dims.Set(fx.Format.Size)
	fx.padded = nil
	return nil
}

// View returns the sampled view of the texture. The view changes when
// the texture is resized, invalidating bind groups built on it.
func (fx *FrameTexture) View() *wgpu.TextureView { return fx.view }

// SetSize recreates the texture at the given size. The previous
// contents are discarded; a full upload must follow before rendering.
func (fx *FrameTexture) SetSize(size image.Point) error {
	if size == fx.Format.Size && fx.texture != nil {
		return nil
	}
	fx.Format.Size = size
	return fx.config()
}

// Update uploads the RGBA pixel bytes to the texture. Each row is
// padded to wgpu.CopyBytesPerRowAlignment through a reused scratch
// slice when the tightly packed row size is not already aligned.
// len(pix) must be exactly 4 * width * height.
func (fx *FrameTexture) Update(pix []byte) error {
	if fx.texture == nil {
		return ErrReleased
	}
	if uint64(len(pix)) != fx.dims.UnpaddedSize() {
		return errors.Log(errors.New("pixels: Update: pixel data does not match texture size"))
	}
	data := pix
	bytesPerRow := uint32(fx.dims.UnpaddedRowSize)
	if !fx.dims.HasNoPadding() {
		fx.padded = padRows(fx.padded, pix, &fx.dims)
		data = fx.padded
		bytesPerRow = uint32(fx.dims.PaddedRowSize)
	}
	size := fx.Format.Extent3D()
	fx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  fx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: uint32(fx.dims.Height),
		},
		&size)
	return nil
}

// Release releases the texture and view.
func (fx *FrameTexture) Release() {
	fx.release()
	fx.padded = nil
}

func (fx *FrameTexture) release() {
	if fx.texture == nil {
		return
	}
	fx.view.Release()
	fx.view = nil
	fx.texture.Release()
	fx.texture = nil
}

// padRows copies the tightly packed rows of src into dst with each row
// padded to td.PaddedRowSize, reallocating dst only when too small.
func padRows(dst, src []byte, td *TextureBufferDims) []byte {
	n := int(td.PaddedSize())
	if cap(dst) < n {
		dst = make([]byte, n)
	} else {
		dst = dst[:n]
	}
	urs := int(td.UnpaddedRowSize)
	prs := int(td.PaddedRowSize)
	for y := range int(td.Height) {
		copy(dst[y*prs:y*prs+urs], src[y*urs:(y+1)*urs])
	}
	return dst
}
