// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"
	"log"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is a rendering target that frames are presented to:
// either a window-backed [Surface] or an offscreen [RenderTexture].
type Renderer interface {
	// Device returns the device used for rendering to this target.
	Device() *Device

	// Format returns the current size and texture format of the target.
	Format() *TextureFormat

	// AcquireNextTexture returns the texture view to render the next
	// frame into. It must be released by calling Present.
	AcquireNextTexture() (*wgpu.TextureView, error)

	// Present presents the texture acquired by AcquireNextTexture.
	Present()

	// DiscardFrame releases the texture acquired by AcquireNextTexture
	// without presenting it, abandoning the frame after an error.
	DiscardFrame()

	// SetSize sets the target size in raw physical pixels.
	// Zero or negative dimensions are silently ignored, as such sizes
	// are routinely reported while a window is minimized.
	SetSize(size image.Point)

	// Release releases the GPU resources of the target.
	Release()
}

// Surface is a window-backed rendering target. It owns the logical
// device and queue used for all rendering to the window, and releases
// them in Release.
type Surface struct {
	// GPU is the adapter the device was created from. Not owned.
	GPU *GPU

	surface *wgpu.Surface
	device  *Device
	format  TextureFormat
	config  wgpu.SurfaceConfiguration

	// texture and view acquired for the current frame,
	// released in Present.
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView
}

// NewSurface returns a new Surface on the given window surface, at the
// given initial size in raw physical pixels. A new device is created
// for it, owned by the Surface. opts can be nil for defaults;
// see [Options.Format] and [Options.VSync] for the surface
// configuration it controls.
func NewSurface(gp *GPU, wsurf *wgpu.Surface, width, height int, opts *Options) (*Surface, error) {
	if opts == nil {
		opts = NewOptions()
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, err
	}
	sf := &Surface{GPU: gp, surface: wsurf, device: dev}
	caps := wsurf.GetCapabilities(gp.GPU)
	format := opts.Format
	if format == wgpu.TextureFormatUndefined {
		format = caps.Formats[0]
	}
	sf.format = TextureFormat{Size: image.Point{width, height}, Format: format}
	sf.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: supportedPresentMode(opts.presentMode(), caps.PresentModes),
		AlphaMode:   caps.AlphaModes[0],
	}
	sf.surface.Configure(sf.GPU.GPU, sf.device.Device, &sf.config)
	if Debug {
		log.Printf("pixels.Surface: %s  present mode: %d\n", sf.format.String(), sf.config.PresentMode)
	}
	return sf, nil
}

// supportedPresentMode returns want if the surface supports it,
// otherwise Fifo, which is always supported.
func supportedPresentMode(want wgpu.PresentMode, have []wgpu.PresentMode) wgpu.PresentMode {
	for _, pm := range have {
		if pm == want {
			return want
		}
	}
	return wgpu.PresentModeFifo
}

// Device returns the device owned by this surface.
func (sf *Surface) Device() *Device { return sf.device }

// Format returns the current size and texture format of the surface.
func (sf *Surface) Format() *TextureFormat { return &sf.format }

// SetSize sets the size of the surface in raw physical pixels and
// reconfigures it immediately. It must not be called while a frame is
// in flight (between AcquireNextTexture and Present). Zero or negative
// dimensions, as reported while a window is minimized, are silently
// ignored, as is the current size.
func (sf *Surface) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == sf.format.Size {
		return
	}
	sf.format.Size = size
	sf.config.Width = uint32(size.X)
	sf.config.Height = uint32(size.Y)
	sf.reconfigure()
}

// AcquireNextTexture returns the texture view to render the next frame
// into. If the surface has become lost or outdated, it is reconfigured
// at its current size and the acquire retried once; if that also fails,
// the error wraps [ErrSurfaceLost]. The view is valid until Present.
func (sf *Surface) AcquireNextTexture() (*wgpu.TextureView, error) {
	if sf.device == nil {
		return nil, ErrReleased
	}
	// release any frame left pending by an aborted render cycle
	sf.DiscardFrame()
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		// lost or outdated: reconfigure and retry once
		sf.reconfigure()
		tex, err = sf.surface.GetCurrentTexture()
		if err != nil {
			return nil, errors.Log(errors.Join(ErrSurfaceLost, err))
		}
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, errors.Log(err)
	}
	sf.curTexture = tex
	sf.curView = view
	return view, nil
}

func (sf *Surface) reconfigure() {
	sf.device.WaitDone()
	sf.surface.Configure(sf.GPU.GPU, sf.device.Device, &sf.config)
}

// Present presents the current frame to the window and releases the
// acquired texture.
func (sf *Surface) Present() {
	if sf.curTexture == nil {
		return
	}
	sf.surface.Present()
	sf.DiscardFrame()
}

// DiscardFrame releases the texture acquired by AcquireNextTexture
// without presenting it, abandoning the frame after an error. It does
// nothing when no frame is pending.
func (sf *Surface) DiscardFrame() {
	if sf.curTexture == nil {
		return
	}
	sf.curView.Release()
	sf.curView = nil
	sf.curTexture.Release()
	sf.curTexture = nil
}

// Release releases the surface and its device. The surface must not
// be used after this.
func (sf *Surface) Release() {
	if sf.device == nil {
		return
	}
	sf.DiscardFrame()
	sf.surface.Release()
	sf.surface = nil
	sf.device.Release()
	sf.device = nil
}
