// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image/color"

	"cogentcore.org/core/colors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Filters selects how the pixel buffer is sampled when scaled up or
// down to the rendering target.
type Filters int32

const (
	// FilterNearest uses nearest-neighbor sampling, keeping pixel
	// edges crisp. This is the default.
	FilterNearest Filters = iota

	// FilterLinear uses bilinear sampling, blending adjacent pixels.
	FilterLinear
)

// Mode returns the wgpu filter mode for this filter.
func (fl Filters) Mode() wgpu.FilterMode {
	if fl == FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

// Options configures a [Pixels] and its rendering target.
// The zero value is not usable; use [NewOptions] or call Defaults.
type Options struct {
	// VSync synchronizes presentation with the display refresh
	// (Fifo present mode). When false frames are presented
	// immediately, possibly with tearing. Default is on.
	VSync bool

	// Format overrides the texture format of the rendering target.
	// The zero value selects the target's preferred format.
	Format wgpu.TextureFormat

	// ClearColor fills the target, including the letterbox or
	// pillarbox bars, before the scaled buffer is drawn.
	// Default is black.
	ClearColor color.Color

	// Filter is the sampling filter used for scaling.
	Filter Filters

	// PostShader is optional WGSL source for a post-processing stage
	// applied to the scaled output; see [NewShaderStage] for the
	// required entry points and bindings. Additional stages can be
	// appended with [Pixels.AddStage].
	PostShader string
}

// NewOptions returns Options with default values set.
func NewOptions() *Options {
	op := &Options{}
	op.Defaults()
	return op
}

func (op *Options) Defaults() {
	op.VSync = true
	op.ClearColor = colors.Black
	op.Filter = FilterNearest
}

// presentMode returns the wgpu present mode from the VSync setting.
func (op *Options) presentMode() wgpu.PresentMode {
	if op.VSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

// clearValue returns ClearColor as a wgpu.Color, defaulting to opaque
// black when unset.
func (op *Options) clearValue() wgpu.Color {
	cc := op.ClearColor
	if cc == nil {
		cc = colors.Black
	}
	r, g, b, a := colors.ToFloat32(cc)
	return wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}
