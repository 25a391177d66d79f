// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import "cogentcore.org/core/base/errors"

// Debug turns on extra logging of GPU configuration steps.
var Debug = false

var (
	// ErrInvalidSize is returned when a buffer is created or resized
	// with a zero or negative dimension.
	ErrInvalidSize = errors.New("pixels: width and height must be > 0")

	// ErrSurfaceLost is returned by Render when the surface texture
	// could not be acquired even after reconfiguring the surface.
	ErrSurfaceLost = errors.New("pixels: surface lost")

	// ErrNoAdapter is returned when no suitable WebGPU adapter
	// is available on this system.
	ErrNoAdapter = errors.New("pixels: no WebGPU adapter available")

	// ErrReleased is returned when an operation is attempted on an
	// object whose GPU resources have been released.
	ErrReleased = errors.New("pixels: already released")
)
