// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image/color"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaults(t *testing.T) {
	op := NewOptions()
	assert.True(t, op.VSync)
	assert.Equal(t, FilterNearest, op.Filter)
	assert.Equal(t, wgpu.TextureFormat(0), op.Format)
	assert.Equal(t, wgpu.PresentModeFifo, op.presentMode())
	assert.Equal(t, wgpu.Color{R: 0, G: 0, B: 0, A: 1}, op.clearValue())

	op.VSync = false
	assert.Equal(t, wgpu.PresentModeImmediate, op.presentMode())
}

func TestOptionsClearValue(t *testing.T) {
	op := &Options{ClearColor: color.RGBA{R: 255, A: 255}}
	cv := op.clearValue()
	assert.InDelta(t, 1.0, cv.R, 1e-6)
	assert.InDelta(t, 0.0, cv.G, 1e-6)
	assert.InDelta(t, 1.0, cv.A, 1e-6)

	// nil clear color falls back to opaque black
	op = &Options{}
	assert.Equal(t, wgpu.Color{A: 1}, op.clearValue())
}

func TestFiltersMode(t *testing.T) {
	assert.Equal(t, wgpu.FilterModeNearest, FilterNearest.Mode())
	assert.Equal(t, wgpu.FilterModeLinear, FilterLinear.Mode())
}
