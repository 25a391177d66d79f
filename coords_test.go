// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryMatchingAspect(t *testing.T) {
	// 800x600 and 320x240 are both 4:3: no bars, full coverage
	vg := computeGeometry(image.Point{800, 600}, image.Point{320, 240})
	assert.Equal(t, float32(2.5), vg.scale)
	assert.Equal(t, image.Rect(0, 0, 800, 600), vg.clipBounds())

	px, py, ok := vg.windowToPixel(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, px)
	assert.Equal(t, 0, py)

	px, py, ok = vg.windowToPixel(799, 599)
	assert.True(t, ok)
	assert.Equal(t, 319, px)
	assert.Equal(t, 239, py)
}

func TestGeometryPillarbox(t *testing.T) {
	// 800x400 is wider than 4:3: height-limited, centered pillarbox
	vg := computeGeometry(image.Point{800, 400}, image.Point{320, 240})
	assert.InDelta(t, 400.0/240.0, float64(vg.scale), 1e-5)
	assert.InDelta(t, 400.0*320.0/240.0, float64(vg.clip.Size().X), 1e-3)
	assert.InDelta(t, 400.0, float64(vg.clip.Size().Y), 1e-3)
	assert.InDelta(t, (800.0-400.0*320.0/240.0)/2, float64(vg.clip.Min.X), 1e-3)
	assert.InDelta(t, 0.0, float64(vg.clip.Min.Y), 1e-3)

	// click just inside the left bar maps to nothing
	_, _, ok := vg.windowToPixel(133, 10)
	assert.False(t, ok)

	// center maps into the buffer
	px, py, ok := vg.windowToPixel(400, 200)
	assert.True(t, ok)
	assert.Equal(t, 160, px)
	assert.Equal(t, 120, py)
}

func TestGeometryBoundaryPrecision(t *testing.T) {
	// the 400/240 scale factor is not exactly representable in floating
	// point; the mapping must not round a window position sitting
	// exactly on a pixel-column boundary into the neighboring column
	vg := computeGeometry(image.Point{800, 400}, image.Point{320, 240})

	// x=400 is the exact left edge of column 160, y=200 of row 120
	px, py, ok := vg.windowToPixel(400, 200)
	assert.True(t, ok)
	assert.Equal(t, 160, px)
	assert.Equal(t, 120, py)

	// pixel centers across the full width land on their own column
	minX := (800.0 - 320.0*400.0/240.0) / 2
	scale := 400.0 / 240.0
	for p := 0; p < 320; p += 7 {
		gx, _, ok := vg.windowToPixel(minX+(float64(p)+0.5)*scale, 200)
		assert.True(t, ok, "column %d", p)
		assert.Equal(t, p, gx, "column %d", p)
	}

	// just past the right bar edge maps to nothing
	_, _, ok = vg.windowToPixel(667, 200)
	assert.False(t, ok)
}

func TestGeometryLetterbox(t *testing.T) {
	// 600x800 is taller than 4:3: width-limited, centered letterbox
	vg := computeGeometry(image.Point{600, 800}, image.Point{320, 240})
	assert.InDelta(t, 600.0/320.0, float64(vg.scale), 1e-5)
	assert.InDelta(t, 600.0, float64(vg.clip.Size().X), 1e-3)
	assert.InDelta(t, 450.0, float64(vg.clip.Size().Y), 1e-3)
	assert.InDelta(t, 175.0, float64(vg.clip.Min.Y), 1e-3)

	_, _, ok := vg.windowToPixel(300, 100) // top bar
	assert.False(t, ok)
	_, _, ok = vg.windowToPixel(300, 700) // bottom bar
	assert.False(t, ok)
	_, _, ok = vg.windowToPixel(300, 400)
	assert.True(t, ok)
}

func TestGeometryContainment(t *testing.T) {
	bufs := []image.Point{{320, 240}, {17, 31}, {1, 1}, {1920, 1080}}
	surfs := []image.Point{{800, 600}, {800, 400}, {97, 101}, {1, 1}, {2560, 1440}}
	for _, buf := range bufs {
		for _, surf := range surfs {
			vg := computeGeometry(surf, buf)
			r := vg.clipBounds()
			assert.True(t, r.In(image.Rectangle{Max: surf}),
				"clip %v exceeds surface %v for buffer %v", r, surf, buf)
			// centered: equal bars on both sides
			assert.InDelta(t, float64(vg.clip.Min.X),
				float64(surf.X)-float64(vg.clip.Max.X), 1e-2)
			assert.InDelta(t, float64(vg.clip.Min.Y),
				float64(surf.Y)-float64(vg.clip.Max.Y), 1e-2)
			// uniform scale preserves the buffer aspect ratio
			sz := vg.clip.Size()
			assert.InDelta(t, float64(buf.X)*float64(vg.scale), float64(sz.X), 0.01)
			assert.InDelta(t, float64(buf.Y)*float64(vg.scale), float64(sz.Y), 0.01)
		}
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	cases := []struct {
		surf, buf image.Point
	}{
		{image.Point{800, 600}, image.Point{320, 240}},
		{image.Point{800, 400}, image.Point{320, 240}},
		{image.Point{101, 97}, image.Point{32, 24}},
		{image.Point{33, 77}, image.Point{32, 24}},
	}
	for _, c := range cases {
		vg := computeGeometry(c.surf, c.buf)
		for py := range c.buf.Y {
			for px := range c.buf.X {
				x, y := vg.pixelToWindow(px, py)
				gx, gy, ok := vg.windowToPixel(x, y)
				assert.True(t, ok, "pixel (%d,%d) of %v on %v maps outside", px, py, c.buf, c.surf)
				assert.Equal(t, px, gx)
				assert.Equal(t, py, gy)
			}
		}
	}
}

func TestClampPixel(t *testing.T) {
	vg := computeGeometry(image.Point{800, 400}, image.Point{320, 240})

	px, py := vg.clampPixel(0, 0) // far left bar
	assert.Equal(t, 0, px)
	assert.Equal(t, 0, py)

	px, py = vg.clampPixel(799, 399) // past the right edge
	assert.Equal(t, 319, px)
	assert.Equal(t, 239, py)

	px, py = vg.clampPixel(-50, 1000) // outside the target entirely
	assert.Equal(t, 0, px)
	assert.Equal(t, 239, py)

	// inside the clip rect it agrees with windowToPixel
	px, py = vg.clampPixel(400, 200)
	gx, gy, ok := vg.windowToPixel(400, 200)
	assert.True(t, ok)
	assert.Equal(t, gx, px)
	assert.Equal(t, gy, py)
}

func TestGeometryDegenerate(t *testing.T) {
	vg := computeGeometry(image.Point{}, image.Point{320, 240})
	_, _, ok := vg.windowToPixel(0, 0)
	assert.False(t, ok)
	px, py := vg.clampPixel(10, 10)
	assert.Equal(t, 0, px)
	assert.Equal(t, 0, py)
}
