// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"

	"cogentcore.org/core/base/errors"
)

// Pixels ties a [PixelBuffer] to a rendering target: it uploads the
// buffer to a GPU texture when its contents have changed and draws it
// scaled onto the target, preserving the buffer aspect ratio with
// letterbox or pillarbox bars as needed. The buffer keeps its logical
// resolution as the target is resized.
type Pixels struct {
	buf    *PixelBuffer
	target Renderer
	tex    *FrameTexture
	sc     *scaler

	released bool
}

// New returns a new Pixels with a zero-filled buffer of the given
// logical resolution, presenting on the given target. opts can be nil
// for defaults; [Options.ClearColor], [Options.Filter] and
// [Options.PostShader] apply here, while [Options.VSync] and
// [Options.Format] apply when the target itself is created.
// The target is not owned: release it after the Pixels, followed by
// the GPU.
func New(width, height int, target Renderer, opts *Options) (*Pixels, error) {
	if opts == nil {
		opts = NewOptions()
	}
	buf, err := NewPixelBuffer(width, height)
	if err != nil {
		return nil, err
	}
	dev := target.Device()
	tex, err := NewFrameTexture(dev, buf.Size())
	if err != nil {
		return nil, err
	}
	sc, err := newScaler(dev, target.Format().Format, opts)
	if err != nil {
		tex.Release()
		return nil, err
	}
	sc.setFrameView(tex.View())
	px := &Pixels{buf: buf, target: target, tex: tex, sc: sc}
	if opts.PostShader != "" {
		st, err := NewShaderStage(dev, opts.PostShader, target.Format().Format)
		if err != nil {
			px.Release()
			return nil, err
		}
		sc.addStage(st)
	}
	return px, nil
}

// Frame returns the buffer pixel bytes for direct mutation, marking
// the buffer for upload on the next Render. See [PixelBuffer.Frame].
func (px *Pixels) Frame() []byte { return px.buf.Frame() }

// Buffer returns the pixel buffer.
func (px *Pixels) Buffer() *PixelBuffer { return px.buf }

// Target returns the rendering target frames are presented on.
func (px *Pixels) Target() Renderer { return px.target }

// AddStage appends a post-processing stage to the render chain;
// see [RenderStage] and [NewShaderStage].
func (px *Pixels) AddStage(st RenderStage) { px.sc.addStage(st) }

// ResizeSurface sets the target size in raw physical pixels, typically
// from a window resize callback. Zero or negative dimensions, as
// reported while a window is minimized, are silently ignored. The
// scaling geometry is recomputed on the next Render.
func (px *Pixels) ResizeSurface(width, height int) {
	px.target.SetSize(image.Point{width, height})
}

// ResizeBuffer changes the logical resolution of the pixel buffer,
// zero-filled; previous contents are discarded. The CPU buffer changes
// immediately; the GPU texture is recreated on the next Render.
// Returns [ErrInvalidSize] for zero or negative dimensions.
func (px *Pixels) ResizeBuffer(width, height int) error {
	return px.buf.Resize(width, height)
}

// Render uploads the buffer to the GPU if it has changed and draws it
// scaled onto the target: acquire, upload, encode, submit, present.
// If the upload cannot be performed the buffer stays marked dirty, so
// a later Render retries it. Acquire failures are retried once by the
// target after reconfiguring; persistent failure wraps
// [ErrSurfaceLost].
func (px *Pixels) Render() error {
	if px.released {
		return ErrReleased
	}
	view, err := px.target.AcquireNextTexture()
	if err != nil {
		return err
	}
	// from here on, an error must discard the acquired frame so the
	// target does not hold it across render cycles
	if px.buf.sizeChanged {
		if err := px.tex.SetSize(px.buf.Size()); err != nil {
			px.target.DiscardFrame()
			return err
		}
		px.sc.setFrameView(px.tex.View())
		px.buf.sizeChanged = false
	}
	if px.buf.dirty {
		if err := px.tex.Update(px.buf.pix); err != nil {
			px.target.DiscardFrame()
			return err
		}
		px.buf.dirty = false
	}
	dev := px.target.Device()
	cmd, err := dev.Device.CreateCommandEncoder(nil)
	if err != nil {
		px.target.DiscardFrame()
		return errors.Log(err)
	}
	err = px.sc.render(cmd, view, px.target.Format().Size, px.buf.Size())
	if err != nil {
		cmd.Release()
		px.target.DiscardFrame()
		return err
	}
	cmdBuf, err := cmd.Finish(nil)
	if err != nil {
		cmd.Release()
		px.target.DiscardFrame()
		return errors.Log(err)
	}
	dev.Queue.Submit(cmdBuf)
	cmdBuf.Release()
	cmd.Release()
	px.target.Present()
	return nil
}

// geometry returns the current scaling geometry, reflecting any
// pending buffer or target resizes.
func (px *Pixels) geometry() viewGeometry {
	return computeGeometry(px.target.Format().Size, px.buf.Size())
}

// WindowToPixel maps a target (window) position in raw physical pixels
// to the buffer pixel under it. ok is false when the position falls in
// the letterbox or pillarbox bars or outside the target.
func (px *Pixels) WindowToPixel(x, y float64) (bx, by int, ok bool) {
	vg := px.geometry()
	return vg.windowToPixel(x, y)
}

// PixelToWindow maps a buffer pixel to the target (window) position at
// the center of the pixel's on-screen footprint. It is the inverse of
// WindowToPixel: mapping the result back always returns the same
// pixel.
func (px *Pixels) PixelToWindow(bx, by int) (x, y float64) {
	vg := px.geometry()
	return vg.pixelToWindow(bx, by)
}

// ClampPixel maps a target (window) position to the nearest buffer
// pixel, clamping positions in the bars or outside the target to the
// nearest edge pixel. Useful for dragging gestures that leave the
// scaled region.
func (px *Pixels) ClampPixel(x, y float64) (bx, by int) {
	vg := px.geometry()
	return vg.clampPixel(x, y)
}

// ClipBounds returns the target-space rectangle covered by the scaled
// buffer, for positioning overlays; the rest of the target is bars.
func (px *Pixels) ClipBounds() image.Rectangle {
	vg := px.geometry()
	return vg.clipBounds()
}

// Release releases the GPU resources owned by this Pixels: the frame
// texture, scaling pipeline, and any stages. The target and GPU are
// released separately by their creator, after this.
func (px *Pixels) Release() {
	if px.released {
		return
	}
	px.released = true
	px.sc.release()
	px.tex.Release()
}
