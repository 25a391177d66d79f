// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed rendering target,
// functioning like a Surface. It does not own its device, which can be
// shared across targets and must be released by the caller, typically
// from [NoDisplayGPU].
type RenderTexture struct {
	// GPU is the adapter. Not owned.
	GPU *GPU

	format TextureFormat
	device *Device
	frame  *wgpu.Texture
	view   *wgpu.TextureView
}

// NewRenderTexture returns a new offscreen rendering target of the
// given size, for headless rendering and testing. opts can be nil for
// defaults; only [Options.Format] applies here.
func NewRenderTexture(gp *GPU, dev *Device, size image.Point, opts *Options) (*RenderTexture, error) {
	if opts == nil {
		opts = NewOptions()
	}
	format := opts.Format
	if format == wgpu.TextureFormatUndefined {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	rt := &RenderTexture{GPU: gp, device: dev}
	rt.format = TextureFormat{Size: size, Format: format}
	if err := rt.configFrame(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTexture) configFrame() error {
	rt.releaseFrame()
	tex, err := rt.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "pixels.RenderTexture",
		Size:          rt.format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        rt.format.Format,
		Usage: wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return errors.Log(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return errors.Log(err)
	}
	rt.frame = tex
	rt.view = view
	return nil
}

func (rt *RenderTexture) releaseFrame() {
	if rt.frame == nil {
		return
	}
	rt.view.Release()
	rt.view = nil
	rt.frame.Release()
	rt.frame = nil
}

// Device returns the device rendering to this target. Not owned.
func (rt *RenderTexture) Device() *Device { return rt.device }

// Format returns the current size and texture format of the target.
func (rt *RenderTexture) Format() *TextureFormat { return &rt.format }

// AcquireNextTexture returns the view of the offscreen frame texture.
func (rt *RenderTexture) AcquireNextTexture() (*wgpu.TextureView, error) {
	if rt.frame == nil {
		return nil, ErrReleased
	}
	return rt.view, nil
}

// Present is a no-op for an offscreen target.
func (rt *RenderTexture) Present() {}

// DiscardFrame is a no-op for an offscreen target: the frame texture
// is persistent, not acquired per frame.
func (rt *RenderTexture) DiscardFrame() {}

// SetSize sets the size of the frame texture, recreating it.
// Zero or negative dimensions and the current size are ignored.
func (rt *RenderTexture) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == rt.format.Size {
		return
	}
	rt.format.Size = size
	errors.Log(rt.configFrame())
}

// Release releases the frame texture. The device is not owned and is
// not released.
func (rt *RenderTexture) Release() {
	rt.releaseFrame()
}

// ReadGoImage reads the rendered frame back into an image.RGBA,
// waiting for all submitted rendering to complete. Rows are copied
// through a padded readback buffer per wgpu.CopyBytesPerRowAlignment.
func (rt *RenderTexture) ReadGoImage() (*image.RGBA, error) {
	if rt.frame == nil {
		return nil, ErrReleased
	}
	dims := NewTextureBufferDims(rt.format.Size)
	buf, err := rt.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "pixels.readback",
		Size:  dims.PaddedSize(),
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	defer buf.Release()

	cmd, err := rt.device.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	cmd.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  rt.frame,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(dims.PaddedRowSize),
				RowsPerImage: uint32(dims.Height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(dims.Width),
			Height:             uint32(dims.Height),
			DepthOrArrayLayers: 1,
		})
	cmdBuf, err := cmd.Finish(nil)
	if err != nil {
		cmd.Release()
		return nil, errors.Log(err)
	}
	rt.device.Queue.Submit(cmdBuf)
	cmdBuf.Release()
	cmd.Release()

	var mapErr error
	err = buf.MapAsync(wgpu.MapModeRead, 0, dims.PaddedSize(),
		func(status wgpu.BufferMapAsyncStatus) {
			if status != wgpu.BufferMapAsyncStatusSuccess {
				mapErr = errors.New("pixels: readback BufferMapAsync was not successful")
			}
		})
	if err != nil {
		return nil, errors.Log(err)
	}
	rt.device.Device.Poll(true, nil)
	if mapErr != nil {
		return nil, errors.Log(mapErr)
	}
	defer buf.Unmap()

	data := buf.GetMappedRange(0, uint(dims.PaddedSize()))
	img := image.NewRGBA(rt.format.Bounds())
	for y := range int(dims.Height) {
		src := data[uint64(y)*dims.PaddedRowSize:]
		dst := img.Pix[y*img.Stride:]
		copy(dst[:dims.UnpaddedRowSize], src[:dims.UnpaddedRowSize])
	}
	return img, nil
}
