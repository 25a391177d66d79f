// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"image"

	"cogentcore.org/core/math32"
)

// viewGeometry is the scaling geometry from buffer pixels to the
// rendering target: the region covered by the scaled buffer and the
// uniform scale factor from buffer pixels to target pixels.
type viewGeometry struct {
	// clip is the target-space rectangle covered by the scaled buffer:
	// the largest rectangle with the buffer's aspect ratio inscribed
	// in the target, centered. The remaining area forms letterbox or
	// pillarbox bars.
	clip math32.Box2

	// scale is the buffer-to-target scale factor, identical on both
	// axes.
	scale float32

	// source and target sizes the geometry was computed from.
	bufSize  image.Point
	surfSize image.Point
}

// computeGeometry returns the scaling geometry for a buffer of size
// buf presented on a target of size surf.
func computeGeometry(surf, buf image.Point) viewGeometry {
	vg := viewGeometry{bufSize: buf, surfSize: surf}
	if buf.X <= 0 || buf.Y <= 0 || surf.X <= 0 || surf.Y <= 0 {
		return vg
	}
	sw, sh := float32(surf.X), float32(surf.Y)
	bw, bh := float32(buf.X), float32(buf.Y)
	vg.scale = math32.Min(sw/bw, sh/bh)
	cw, ch := bw*vg.scale, bh*vg.scale
	x, y := (sw-cw)/2, (sh-ch)/2
	// intersect to keep rounding from pushing the rect past the target
	vg.clip = math32.B2(x, y, x+cw, y+ch).Intersect(math32.B2(0, 0, sw, sh))
	return vg
}

// mapping returns the clip origin and the buffer-per-target ratio
// num/den in float64, derived directly from the integer sizes: the
// float32 clip Box2 is only for rendering, and its rounding error is
// enough to misplace clicks on exact pixel boundaries. Multiplying by
// num before dividing by den keeps boundary quotients exact where the
// sizes allow it. den is 0 when either size is degenerate.
func (vg *viewGeometry) mapping() (minX, minY, num, den float64) {
	bw, bh := vg.bufSize.X, vg.bufSize.Y
	sw, sh := vg.surfSize.X, vg.surfSize.Y
	if bw <= 0 || bh <= 0 || sw <= 0 || sh <= 0 {
		return 0, 0, 0, 0
	}
	if sw*bh >= sh*bw { // height-limited: bars left and right, if any
		num, den = float64(bh), float64(sh)
		minX = (float64(sw) - float64(bw)*den/num) / 2
	} else { // width-limited: bars top and bottom
		num, den = float64(bw), float64(sw)
		minY = (float64(sh) - float64(bh)*den/num) / 2
	}
	return minX, minY, num, den
}

// windowToPixel maps a target (window) position to the buffer pixel
// under it. ok is false when the position falls in the letterbox or
// pillarbox bars (or outside the target entirely); the clip rectangle
// is treated as half-open so its right and bottom edges are outside.
func (vg *viewGeometry) windowToPixel(x, y float64) (px, py int, ok bool) {
	minX, minY, num, den := vg.mapping()
	if den == 0 {
		return 0, 0, false
	}
	fx := (x - minX) * num / den
	fy := (y - minY) * num / den
	if fx < 0 || fy < 0 || fx >= float64(vg.bufSize.X) || fy >= float64(vg.bufSize.Y) {
		return 0, 0, false
	}
	// values are non-negative here, so int conversion floors
	return int(fx), int(fy), true
}

// pixelToWindow maps a buffer pixel to the target (window) position at
// the center of that pixel's on-screen footprint, so that windowToPixel
// of the result always returns the same pixel.
func (vg *viewGeometry) pixelToWindow(px, py int) (x, y float64) {
	minX, minY, num, den := vg.mapping()
	if den == 0 {
		return 0, 0
	}
	x = minX + (float64(px)+0.5)*den/num
	y = minY + (float64(py)+0.5)*den/num
	return x, y
}

// clampPixel maps a target (window) position to the nearest buffer
// pixel, clamping positions in the bars or outside the target to the
// nearest edge pixel.
func (vg *viewGeometry) clampPixel(x, y float64) (px, py int) {
	minX, minY, num, den := vg.mapping()
	if den == 0 {
		return 0, 0
	}
	fx := (x - minX) * num / den
	fy := (y - minY) * num / den
	px = min(max(int(fx), 0), vg.bufSize.X-1)
	py = min(max(int(fy), 0), vg.bufSize.Y-1)
	return px, py
}

// clipBounds returns the clip rectangle in integer target coordinates.
func (vg *viewGeometry) clipBounds() image.Rectangle {
	return vg.clip.ToRect()
}
