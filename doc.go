// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pixels presents a CPU-addressable RGBA pixel buffer on a
// GPU surface, scaling it with aspect-ratio preservation (letterbox or
// pillarbox bars) using WebGPU via github.com/cogentcore/webgpu.
//
// The application draws directly into the byte slice returned by
// [Pixels.Frame] and calls [Pixels.Render] to upload and present it.
// The buffer has a fixed logical resolution independent of the window
// size; [Pixels.WindowToPixel] and [Pixels.PixelToWindow] map between
// window coordinates and buffer pixels across the scaled region.
//
// Rendering targets are abstracted by [Renderer]: [Surface] presents to
// a window (see [GLFWCreateWindow] for a desktop helper), while
// [RenderTexture] renders offscreen for headless use and testing.
package pixels
